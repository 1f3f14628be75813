/*
Package resilience provides a circuit breaker for upstream model providers.

# Overview

When the completion provider keeps failing, the breaker fails calls fast
instead of holding request goroutines on a dead upstream. It is opt-in: with
the breaker disabled every call reaches the provider exactly once.

# Usage

	breaker := resilience.New("completion", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	text, err := resilience.Do(breaker, func() (string, error) {
		return gateway.call(ctx, prompt)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open
*/
package resilience
