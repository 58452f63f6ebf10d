package exchange

import (
	"bytes"
	"context"
	"net/http"
	"unicode/utf8"
)

// State identifies where a raw exchange is in its lifecycle. States only
// ever move forward; Complete and Failed are terminal.
type State int

const (
	StateUnsent State = iota
	StateSending
	StateHeadersReceived
	StateStreamingBody
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnsent:
		return "unsent"
	case StateSending:
		return "sending"
	case StateHeadersReceived:
		return "headers-received"
	case StateStreamingBody:
		return "streaming-body"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Raw drives one prepared request to a fully buffered body and a
// classified outcome. It owns its buffers, holds no locks, and advances
// only when Step is called; a Step that finds the transport not ready
// returns immediately with everything gathered so far intact.
type Raw struct {
	tr  Transport
	req *http.Request

	state  State
	status int
	header http.Header
	body   bytes.Buffer

	bodyText string
	err      error
}

// New returns an unsent exchange for req over tr. The request is consumed
// on the first Step and cannot be sent twice.
func New(tr Transport, req *http.Request) *Raw {
	return &Raw{
		tr:  tr,
		req: req,
	}
}

// State reports the exchange's current lifecycle position.
func (x *Raw) State() State {
	return x.state
}

// Header returns the response headers, valid once the exchange has moved
// past StateSending.
func (x *Raw) Header() http.Header {
	return x.header
}

// Status returns the HTTP status code, valid once the exchange has moved
// past StateSending.
func (x *Raw) Status() int {
	return x.status
}

// Body returns the full decoded body text, valid once State is
// StateComplete.
func (x *Raw) Body() string {
	return x.bodyText
}

// Err returns the terminal failure, valid once State is StateFailed.
func (x *Raw) Err() error {
	return x.err
}

// Step advances the exchange as far as the transport allows without
// blocking. It returns done=false when the transport had nothing new to
// deliver; call again once the transport signals readiness. Once the
// exchange is terminal, done=true is returned together with the terminal
// error, if any. Stepping a terminal exchange again returns [ErrConsumed].
func (x *Raw) Step(ctx context.Context) (done bool, err error) {
	switch x.state {
	case StateComplete, StateFailed:
		return true, ErrConsumed
	}

	if x.state == StateUnsent {
		req := x.req
		x.req = nil
		x.state = StateSending

		if err := x.tr.Send(ctx, req); err != nil {
			return true, x.fail(&TransportError{Err: err})
		}
	}

	for {
		ev, ok := x.tr.Poll()
		if !ok {
			return false, nil
		}

		if ev.Err != nil {
			return true, x.fail(&TransportError{Err: ev.Err})
		}

		switch x.state {
		case StateSending:
			x.status = ev.Status
			x.header = ev.Header
			x.state = StateHeadersReceived

		case StateHeadersReceived, StateStreamingBody:
			if ev.End {
				return true, x.classify()
			}

			x.body.Write(ev.Chunk)
			x.state = StateStreamingBody
		}
	}
}

// classify runs the terminal decision over the buffered body, in strict
// priority order: UTF-8 validity, rate-limit error payload, generic error
// payload, HTTP status, success.
func (x *Raw) classify() error {
	raw := x.body.Bytes()
	if !utf8.Valid(raw) {
		return x.fail(&DecodeError{Err: ErrInvalidUTF8})
	}
	body := string(raw)

	if apiErr, ok := parseAPIError(body); ok {
		if apiErr.Contains(CodeRateLimited) {
			if reset, ok := resetHeader(x.header); ok {
				return x.fail(&RateLimitError{Reset: reset})
			}
		}

		return x.fail(apiErr)
	}

	if x.status != http.StatusOK {
		return x.fail(&StatusError{Code: x.status})
	}

	x.bodyText = body
	x.state = StateComplete

	return nil
}

func (x *Raw) fail(err error) error {
	x.state = StateFailed
	x.err = err

	return err
}
