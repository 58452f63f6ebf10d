package exchange

import (
	"context"
	"net/http"
)

// Event is one piece of response progress delivered by a [Transport].
// Exactly one of the event kinds is populated per delivery: headers
// (Status/Header), a body chunk (Chunk), end of body (End), or a
// transport failure (Err).
type Event struct {
	Status int
	Header http.Header
	Chunk  []byte
	End    bool
	Err    error
}

// Transport delivers response progress without blocking the engine.
//
// Send starts the request; it is called exactly once per exchange. Poll
// returns the next queued event if one is available and must never block.
// Ready is closed-or-signaled when a new event may be available, letting
// a scheduler park between steps. Close abandons the in-flight request
// and releases its resources; bytes already on the wire are not retracted.
type Transport interface {
	Send(ctx context.Context, req *http.Request) error
	Poll() (Event, bool)
	Ready() <-chan struct{}
	Close() error
}
