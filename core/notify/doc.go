// Package notify provides a one-to-many update signal.
//
// Subscribers register a callback and receive an opaque Token. Registrations can be tied to an
// owner with SubscribeOwner: the notifier keeps only a weak pointer to the owner, so a
// subscription never keeps its owner alive. Once the owner is collected the registration goes
// inert and is pruned on the next Notify pass.
//
// Owner-tied callbacks receive the live owner as their argument and are skipped once it is gone:
//
//	notify.SubscribeOwner(n, view, func(v *View) { v.Render() })
//
// Notify iterates over a snapshot, so callbacks may subscribe or unsubscribe re-entrantly.
package notify
