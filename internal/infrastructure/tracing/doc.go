/*
Package tracing traces API requests made on behalf of screens.

Every API call runs in a span. The trace and span IDs travel to the API in the
X-Trace-ID and X-Span-ID headers, so server logs can be matched with the
client log lines emitted when spans complete.

# Usage

	tracer := tracing.New("waos-client", logger)
	defer tracer.Close()

	span, ctx := tracer.StartSpan(ctx, "GET /users/me")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	tracing.Inject(ctx, req.Header)
	span.SetStatus(resp.StatusCode)

Completed spans are buffered (1000) and logged by a collector goroutine; when
the buffer is full spans are dropped with a warning.
*/
package tracing
