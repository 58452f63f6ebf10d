package rated

import "iter"

// Response wraps a decoded API value with the rate-limit snapshot taken
// from the same network call.
//
// Limit and Payload are deliberately plain exported fields: the payload is
// read and written directly, and the snapshot stays visible at call sites
// instead of hiding behind the value.
type Response[T any] struct {
	// Limit is the snapshot for the call that produced Payload. It is
	// fixed at construction; only the payload ever changes.
	Limit Limit
	// Payload is the decoded response value.
	Payload T
}

// Wrap pairs a payload with a snapshot.
func Wrap[T any](lim Limit, payload T) Response[T] {
	return Response[T]{Limit: lim, Payload: payload}
}

// Map converts a Response[T] into a Response[U] by running the payload
// through fn exactly once. The snapshot is carried over unchanged.
//
// This is a free function rather than a method so it can change the
// payload type.
func Map[T, U any](src Response[T], fn func(T) U) Response[U] {
	return Response[U]{
		Limit:   src.Limit,
		Payload: fn(src.Payload),
	}
}

// Merge collects an ordered sequence of single-value responses into one
// response over a slice, reconciling their snapshots.
//
// The running snapshot starts as [UnknownLimit] and is replaced whenever an
// item's snapshot supersedes it (later reset; or equal reset and smaller
// remaining, which indicates a more recent observation in the same window).
// Every payload is appended in input order regardless of which snapshot is
// kept. An empty sequence yields an unknown snapshot and an empty slice.
func Merge[T any](seq iter.Seq[Response[T]]) Response[[]T] {
	out := Response[[]T]{
		Limit:   UnknownLimit(),
		Payload: []T{},
	}

	for item := range seq {
		if supersedes(item.Limit, out.Limit) {
			out.Limit = item.Limit
		}
		out.Payload = append(out.Payload, item.Payload)
	}

	return out
}
