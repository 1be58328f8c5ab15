// Package notify implements durable, best-effort-delivered notifications for
// booking lifecycle events.
//
// A Notification is always persisted first; once stored it exists regardless
// of what happens downstream. Real-time delivery to connected clients is a
// best-effort bonus performed asynchronously: a delivery failure is logged
// and swallowed, never surfaced to the caller and never retried by this
// package. Clients that miss a live push see the notification on their next
// list query.
//
// Receivers are addressed by the (role, id) pair because requester and
// provider identifiers come from separate namespaces and may collide.
// The live-delivery topic for a receiver follows the same rule:
//
//	notify.Topic(account.RoleProvider, "42") // "provider/42/notifications"
//
// The Dispatcher ties the pieces together: it validates the receiver,
// assigns the id and timestamp, persists through a Storage, and hands the
// notification to a Deliverer off the caller's critical path. It also
// exposes the read side (List, CountUnread, MarkRead, ...) as passthroughs
// to its Storage.
//
// Storage implementations are provided for memory (development and tests),
// PostgreSQL, and MongoDB. Deliverers are provided for in-process broadcast
// and Redis pub/sub; MultiDeliverer fans out to several at once.
package notify
