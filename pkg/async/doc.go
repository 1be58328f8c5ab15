// Package async provides a minimal future abstraction for running a function
// in a background goroutine and collecting its result later.
//
// The notification dispatcher uses it to run best-effort delivery off the
// caller's critical path while tests can still await completion:
//
//	future := async.Async(ctx, payload, deliver)
//	// ... do other work ...
//	if _, err := future.AwaitWithTimeout(3 * time.Second); err != nil {
//		// delivery failed or timed out
//	}
package async
