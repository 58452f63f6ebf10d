package wren_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wrenkit/wren"
	"github.com/wrenkit/wren/exchange"
	"github.com/wrenkit/wren/params"
	"github.com/wrenkit/wren/rated"
)

type account struct {
	ID         uint64 `json:"id"`
	ScreenName string `json:"screen_name"`
}

func testClient(t *testing.T, handler http.HandlerFunc, opts ...wren.Option) *wren.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := wren.Build(append(opts, wren.WithBaseURL(ts.URL))...)
	if err != nil {
		t.Fatalf("building client: %v", err)
	}
	return c
}

func TestResolveJSON_SuccessCarriesSnapshot(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(rated.HeaderLimit, "180")
		w.Header().Set(rated.HeaderRemaining, "179")
		w.Header().Set(rated.HeaderReset, "1500000000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":12,"screen_name":"rustlang"}`))
	})

	req, err := c.Get(t.Context(), wren.EndpointUsersShow, params.List{}.Add("screen_name", "rustlang"))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	resp, err := wren.ResolveJSON[account](t.Context(), c, req)
	if err != nil {
		t.Fatalf("exp success, got %v", err)
	}

	expLimit := rated.Limit{Ceiling: 180, Remaining: 179, Reset: 1500000000}
	if diff := cmp.Diff(expLimit, resp.Limit); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if resp.Payload.ScreenName != "rustlang" {
		t.Errorf("exp decoded payload, got %+v", resp.Payload)
	}
}

func TestResolveJSON_RateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(rated.HeaderReset, "1500000123")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors":[{"code":88,"message":"Rate limit exceeded"}]}`))
	})

	req, err := c.Get(t.Context(), wren.EndpointSearch, params.List{}.Add("q", "wren"))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	_, err = wren.ResolveJSON[account](t.Context(), c, req)

	var rerr *exchange.RateLimitError
	if !errors.As(err, &rerr) {
		t.Fatalf("exp RateLimitError, got %T: %v", err, err)
	}
	if rerr.Reset != 1500000123 {
		t.Errorf("exp reset 1500000123, got %d", rerr.Reset)
	}
}

func TestResolveJSON_StatusError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("over capacity"))
	})

	req, err := c.Get(t.Context(), wren.EndpointUsersShow, params.List{})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	_, err = wren.ResolveJSON[account](t.Context(), c, req)

	var serr *exchange.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("exp StatusError, got %T: %v", err, err)
	}
	if serr.Code != http.StatusServiceUnavailable {
		t.Errorf("exp 503, got %d", serr.Code)
	}
}

func TestResolveJSON_DecodeErrorOnShapeMismatch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`"just a string"`))
	})

	req, err := c.Get(t.Context(), wren.EndpointUsersShow, params.List{})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	_, err = wren.ResolveJSON[account](t.Context(), c, req)

	var derr *exchange.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("exp DecodeError, got %T: %v", err, err)
	}
}

func TestResolve_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	req, err := c.Get(ctx, wren.EndpointUsersShow, params.List{})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	_, err = wren.ResolveJSON[account](ctx, c, req)

	var terr *exchange.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("exp TransportError on cancellation, got %T: %v", err, err)
	}
}

func TestClient_SignerAndUserAgentApplied(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("exp signed request, got Authorization %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "wren-test/1.0" {
			t.Errorf("exp User-Agent wren-test/1.0, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1}`))
	},
		wren.WithUserAgent("wren-test/1.0"),
		wren.WithSigner(wren.SignerFunc(func(req *http.Request) error {
			req.Header.Set("Authorization", "Bearer sekrit")
			return nil
		})),
	)

	req, err := c.Get(t.Context(), wren.EndpointUsersShow, params.List{})
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	if _, err := wren.ResolveJSON[account](t.Context(), c, req); err != nil {
		t.Fatalf("exp success, got %v", err)
	}
}

func TestClient_PostEncodesForm(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		if got := r.PostForm.Get("screen_name"); got != "rustlang" {
			t.Errorf("exp form param screen_name=rustlang, got %q", got)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("exp form content type, got %q", ct)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1,"screen_name":"rustlang"}`))
	})

	req, err := c.Post(t.Context(), wren.EndpointFollow, params.List{}.Add("screen_name", "rustlang"))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	if _, err := wren.ResolveJSON[account](t.Context(), c, req); err != nil {
		t.Fatalf("exp success, got %v", err)
	}
}

func TestBuild_OptionValidation(t *testing.T) {
	testCases := []struct {
		name string
		opt  wren.Option
	}{
		{name: "Nil client", opt: wren.WithClient(nil)},
		{name: "Nil transport", opt: wren.WithTransport(nil)},
		{name: "Negative timeout", opt: wren.WithTimeout(-time.Second)},
		{name: "Zero throttle", opt: wren.WithThrottle(0, 0)},
		{name: "Empty base URL", opt: wren.WithBaseURL("")},
		{name: "Nil signer", opt: wren.WithSigner(nil)},
		{name: "Nil tracer", opt: wren.WithTracer(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := wren.Build(tc.opt); err == nil {
				t.Error("exp Build to fail")
			}
		})
	}
}
