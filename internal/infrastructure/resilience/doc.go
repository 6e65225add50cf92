/*
Package resilience provides the circuit breaker guarding calls to the waos API.

# Overview

When the API keeps failing, the breaker opens and calls fail fast with
ErrCircuitOpen instead of stacking timeouts behind a spinner. Client errors
such as a 401 are not failures of the service; Settings.IsFailure lets the
caller say which errors count.

# Usage

	breaker := resilience.New("waos-api", resilience.Settings{
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		IsFailure:   isServerError,
	})

	user, err := resilience.Call(breaker, func() (*User, error) {
		return fetchUser(ctx)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           v
	                                         Open
*/
package resilience
