package wren

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wrenkit/wren/exchange"
	"github.com/wrenkit/wren/rated"
)

// Resolve drives one request through a typed exchange to completion. It
// is the scheduler side of the engine contract: the exchange only runs
// when stepped, and Resolve steps it whenever the transport signals
// readiness, parking in between. Cancelling ctx abandons the exchange and
// releases its transport without a compensating request.
func Resolve[T any](ctx context.Context, c *Client, req *http.Request, decode exchange.DecodeFunc[T]) (T, error) {
	var zero T

	tr := exchange.NewNetTransport(c.c)
	defer tr.Close()

	typed := exchange.Compose(exchange.New(tr, req), decode)

	reqID := uuid.New().String()
	ctx, span := c.tracer.Start(ctx, "wren.resolve", trace.WithAttributes(
		attribute.String("request.id", reqID),
		attribute.String("http.method", req.Method),
		attribute.String("url.path", req.URL.Path),
	))
	defer span.End()

	c.logger.Debug("resolving request", "request_id", reqID, "method", req.Method, "path", req.URL.Path)

	for {
		out, done, err := typed.Step(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Debug("request failed", "request_id", reqID, "error", err)

			return zero, err
		}
		if done {
			c.logger.Debug("request resolved", "request_id", reqID)

			return out, nil
		}

		select {
		case <-ctx.Done():
			err := &exchange.TransportError{Err: ctx.Err()}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return zero, err
		case <-tr.Ready():
		}
	}
}

// JSON returns the standard decoder: unmarshal the body into T and wrap
// it with the rate-limit snapshot read from the response headers.
func JSON[T any]() exchange.DecodeFunc[rated.Response[T]] {
	return func(body string, header http.Header) (rated.Response[T], error) {
		var out T
		if err := json.Unmarshal([]byte(body), &out); err != nil {
			return rated.Response[T]{}, &exchange.DecodeError{Err: err}
		}

		return rated.Wrap(rated.FromHeaders(header), out), nil
	}
}

// ResolveJSON is the common case: resolve req and decode its body as JSON
// into T, rate-limit snapshot attached.
func ResolveJSON[T any](ctx context.Context, c *Client, req *http.Request) (rated.Response[T], error) {
	return Resolve(ctx, c, req, JSON[T]())
}
