// Package booking implements the booking lifecycle shared by requesters and
// providers of on-demand services.
//
// A booking moves through a fixed state machine:
//
//	REQUESTED -> ACCEPTED | REJECTED | CANCELLED
//	ACCEPTED  -> COMPLETED | CANCELLED
//
// REJECTED, CANCELLED, and COMPLETED are terminal. An operation applied in
// the wrong state fails with an InvalidTransitionError naming the booking's
// current status.
//
// Transitions are serialized per booking through compare-and-swap updates:
// Storage.Update only writes when the stored status still matches what the
// caller read, so two concurrent transitions on one booking cannot both win.
// The loser observes the fresh status and reports it as an invalid
// transition.
//
// Every transition fans out notifications to the affected parties through a
// Notifier. Notification delivery is best-effort and never rolls back or
// fails a transition; by the time receivers are notified the state change is
// already durable.
package booking
