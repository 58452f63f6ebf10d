package exchange

import (
	"context"
	"net/http"
)

// DecodeFunc converts a fully buffered body and the response headers into
// a typed value. A decoder is invoked at most once per exchange; failures
// should be returned as (or wrapped in) a [DecodeError].
type DecodeFunc[T any] func(body string, header http.Header) (T, error)

// Typed composes one [Raw] exchange with one decoder to yield a typed
// outcome. The decoder runs synchronously as soon as the raw exchange
// completes, and is consumed by that invocation: resolving the same Typed
// a second time returns [ErrConsumed] instead of re-running it.
type Typed[T any] struct {
	raw    *Raw
	decode DecodeFunc[T]
}

// Compose wraps raw with decode. Both are owned by the returned Typed.
func Compose[T any](raw *Raw, decode DecodeFunc[T]) *Typed[T] {
	return &Typed[T]{
		raw:    raw,
		decode: decode,
	}
}

// Header exposes the response headers of the underlying raw exchange.
func (t *Typed[T]) Header() http.Header {
	return t.raw.Header()
}

// Step advances the underlying raw exchange once. While the transport is
// not ready it reports done=false. When the raw exchange completes, the
// decoder is invoked with the final body and headers and its result is
// returned with done=true; a raw failure is forwarded as-is without
// invoking the decoder.
func (t *Typed[T]) Step(ctx context.Context) (out T, done bool, err error) {
	var zero T

	done, err = t.raw.Step(ctx)
	if err != nil {
		return zero, true, err
	}
	if !done {
		return zero, false, nil
	}

	decode := t.decode
	t.decode = nil
	if decode == nil {
		return zero, true, ErrConsumed
	}

	out, err = decode(t.raw.Body(), t.raw.Header())
	if err != nil {
		return zero, true, err
	}

	return out, true, nil
}
