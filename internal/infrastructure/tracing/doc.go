/*
Package tracing provides lightweight request tracing.

# Overview

Each HTTP request gets a span. Provider gateways open child spans for their
outbound calls, so one trace ID ties a request to the model calls it made.
Finished spans are buffered and logged by a background collector.

# Usage

	tracer := tracing.New("webgen", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "completion.chat")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

- X-Trace-ID: identifier for the entire request flow
- X-Span-ID: identifier for the current operation

Both are ULIDs with a trace_ or span_ prefix.
*/
package tracing
