// Package app wires the application: configuration, logging, metrics, the
// API client, preferences, and the screen reactors built on top of them.
//
// Key Components:
//   - Provider: builds collaborators from a Config and constructs screens
//   - Manager: tracks live screens, the focused one, and disposes them
//
// Example Usage:
//
//	p, err := app.New(config.LoadOrDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	r := p.SignIn()
//	r.Dispatch(signin.UpdateEmail{Email: "ada@waos.me"})
package app
