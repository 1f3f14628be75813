/*
Package monitoring provides Prometheus metrics for the generation service.

# Overview

Every Metrics value owns a private registry, so servers built in tests do
not collide on global registration.

# Features

- HTTP request metrics (latency, throughput, size)
- Provider call metrics (latency, status, error type)
- Pipeline outcomes and per-field fallbacks to existing code
- Tutor reply statuses
- Uptime gauge

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(monitoring.Handler(metrics)))

	timer := monitoring.NewTimer(metrics, "completion")
	// ... call the provider ...
	timer.Stop("success")
*/
package monitoring
