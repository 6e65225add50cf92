// Package preferences provides the process-wide preferences shared by every
// screen: the login flag, the session cookie expiry and display options.
//
// Two stores are available:
//   - Memory: atomics only, lost on exit
//   - Bolt: bbolt-backed, write-through with an in-memory cache
//
// Both are safe for concurrent use by many reactors.
package preferences
