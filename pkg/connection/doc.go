// Package connection provides the reconnection policy used by the
// subscription engine.
//
// # Reconnection Strategy
//
// When a stream is lost, the engine retries with exponential backoff:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s
//  3. Maximum delay: 30 seconds
//  4. Continue at 30s until successful
//  5. Reset to 1s on any successful transition into Active
//
// # Jitter
//
// To prevent thundering herd when many clients reconnect at once,
// each delay is jittered symmetrically:
//
//	actual_delay = base_delay * (1 ± 0.20)
//
// # Give-Up Bound
//
// Retries are unbounded by default. With MaxAttempts set, the policy
// refuses further attempts once the bound is reached; the engine then
// delivers a single give-up error and moves the subscription to
// Inactive. Credential rejection never retries regardless of bounds.
package connection
