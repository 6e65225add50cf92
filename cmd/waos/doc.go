// Package main is a command line front end to the waos client core.
//
// It builds the same services and screen reactors a graphical client would,
// drives one screen with the actions given on the command line, waits for the
// screen to settle and prints its state.
//
// Configuration:
//   - Environment variables (WAOS_API_URL, WAOS_PREFS_PATH, LOG_LEVEL, ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Render a local markdown file as a waos page
//	./waos -page README.md -style classic > page.html
//
//	# Fetch and render a remote page
//	./waos -url CHANGELOG.md
//
//	# Sign in and print the sign-in screen state
//	./waos -email ada@waos.me -password secret123
//
//	# List tasks with the stored session
//	./waos -tasks
//
// Signals:
//   - SIGINT, SIGTERM: dispose screens and exit
package main
