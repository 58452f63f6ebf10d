// Package exchange drives a single prepared HTTP request to a fully
// buffered, classified outcome, and composes that with a one-shot decoder
// to produce a typed value.
//
// Both engines are cooperative: each Step call is non-blocking, does a
// bounded amount of work, and preserves everything gathered so far when
// the transport has nothing new to deliver. An engine instance resolves
// exactly once; stepping it again after a terminal state is a misuse
// reported as [ErrConsumed]. Retrying, timeouts, and scheduling belong to
// the caller driving the steps.
package exchange
