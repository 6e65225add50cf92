// Package api is the client of the waos REST API.
//
// Every call goes through a token bucket limiter and a circuit breaker, runs
// on a resty client over a go-retryablehttp transport and decodes JSON with
// sonic. Calls return exactly one terminal result: the decoded payload, or a
// *failure.ErrorInfo carrying the HTTP status (Code 0 for transport errors).
//
// The session token is a cookie set by /auth/signin and kept in the client's
// cookie jar.
package api
