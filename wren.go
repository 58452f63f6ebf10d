// Package wren is a client library for a rate-limited HTTP+JSON status
// API. It resolves one prepared request at a time into a typed value
// wrapped with the rate-limit accounting the server reported for that
// call; retrying and scheduling are left to the caller.
package wren

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/wrenkit/wren/throttle"
)

// Client wraps the std-lib *http.Client with the signing, pacing, and
// observability hooks every call shares. It sets a default *http.Client
// and *http.Transport, which can be customized via optional funcs.
type Client struct {
	c       *http.Client
	baseURL string
	logger  *slog.Logger
	tracer  trace.Tracer
	signer  Signer
}

// Build constructs a Client with the given options.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:       http.DefaultClient,
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("no-op tracer"),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.signer != nil {
		client.signer = opts.signer
	}

	if opts.baseURL != "" {
		client.baseURL = opts.baseURL
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
