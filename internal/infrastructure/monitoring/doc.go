/*
Package monitoring provides metrics collection for the waos client.

# Overview

This package implements Prometheus-based metrics collection for reactors,
the error-accumulation policy and the API client.

# Features

- Reactor metrics (actions, mutations, effects in flight, effect latency)
- Captured error counts by kind
- API call metrics (latency, status codes)

# Usage

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	timer := monitoring.NewTimer(metrics, "POST", "/auth/signin")
	// ... perform call ...
	timer.Stop("200")
*/
package monitoring
