package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// readChunk is the size of a single body read. Each read becomes one
// pollable event, so this bounds the work a Step does per chunk.
const readChunk = 32 << 10 // 32KB

// NetTransport is the production [Transport], backed by an *http.Client.
// The blocking round trip and body reads run on one internal goroutine
// owned by the transport; results are queued as events for the engine to
// poll, keeping the engine itself lock-free and non-blocking.
type NetTransport struct {
	client *http.Client

	events chan Event
	ready  chan struct{}
	cancel context.CancelFunc
	sent   bool
}

// NewNetTransport returns a transport that performs requests with client.
// A nil client falls back to http.DefaultClient.
func NewNetTransport(client *http.Client) *NetTransport {
	if client == nil {
		client = http.DefaultClient
	}

	return &NetTransport{
		client: client,
		events: make(chan Event, 16),
		ready:  make(chan struct{}, 1),
	}
}

// Send starts the request on the worker goroutine. It may be called once.
func (t *NetTransport) Send(ctx context.Context, req *http.Request) error {
	if t.sent {
		return errors.New("transport already sent a request")
	}
	t.sent = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	go t.run(ctx, req.WithContext(ctx))

	return nil
}

// Poll returns the next queued event without blocking.
func (t *NetTransport) Poll() (Event, bool) {
	select {
	case ev := <-t.events:
		return ev, true
	default:
		return Event{}, false
	}
}

// Ready signals when a new event may be available to poll.
func (t *NetTransport) Ready() <-chan struct{} {
	return t.ready
}

// Close abandons the in-flight request, unblocking the worker and
// releasing the response body. Safe to call at any point, including
// before Send or after the final event.
func (t *NetTransport) Close() error {
	if t.cancel != nil {
		t.cancel()
	}

	return nil
}

func (t *NetTransport) run(ctx context.Context, req *http.Request) {
	defer t.cancel()

	resp, err := t.client.Do(req)
	if err != nil {
		t.emit(ctx, Event{Err: err})
		return
	}
	defer resp.Body.Close()

	if !t.emit(ctx, Event{Status: resp.StatusCode, Header: resp.Header}) {
		return
	}

	buf := make([]byte, readChunk)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !t.emit(ctx, Event{Chunk: chunk}) {
				return
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			t.emit(ctx, Event{End: true})
			return
		case err != nil:
			t.emit(ctx, Event{Err: err})
			return
		}
	}
}

// emit queues an event and nudges Ready. It reports false when the
// transport was abandoned before the event could be delivered.
func (t *NetTransport) emit(ctx context.Context, ev Event) bool {
	select {
	case t.events <- ev:
	case <-ctx.Done():
		return false
	}

	select {
	case t.ready <- struct{}{}:
	default:
	}

	return true
}
