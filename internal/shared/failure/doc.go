// Package failure holds the error vocabulary shared by every screen reactor:
// the normalized ErrorInfo returned by effects, the DisplayError records shown
// to the user, and the accumulation policy that folds successes and errors
// into an ordered, de-duplicated list.
//
// The list is ordered most-recent-first and keyed by Title. A successful
// effect purges the entry it resolves together with the stale server-side
// entries (schema validation, auth, unknown).
package failure
