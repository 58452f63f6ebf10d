package exchange

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/wrenkit/wren/rated"
)

type profile struct {
	ID         uint64 `json:"id"`
	ScreenName string `json:"screen_name"`
}

// driveTyped releases everything and steps until done.
func driveTyped[T any](t *testing.T, typed *Typed[T], tr *fakeTransport) (T, error) {
	t.Helper()

	tr.releaseAll()
	for range 20 {
		out, done, err := typed.Step(t.Context())
		if done {
			return out, err
		}
	}
	t.Fatal("typed exchange never resolved")
	var zero T
	return zero, nil
}

func TestTyped_DecodesOnCompletion(t *testing.T) {
	h := http.Header{}
	h.Set(rated.HeaderRemaining, "14")

	tr := newFakeTransport(
		headerEvent(http.StatusOK, h),
		Event{Chunk: []byte(`{"id":12,"screen_name":"rustlang"}`)},
		Event{End: true},
	)

	decodes := 0
	decode := func(body string, header http.Header) (profile, error) {
		decodes++
		if header.Get(rated.HeaderRemaining) != "14" {
			t.Errorf("exp response headers passed to decoder, got %v", header)
		}

		var p profile
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			return profile{}, &DecodeError{Err: err}
		}
		return p, nil
	}

	typed := Compose(New(tr, testRequest(t)), decode)

	out, err := driveTyped(t, typed, tr)
	if err != nil {
		t.Fatalf("exp success, got %v", err)
	}
	if decodes != 1 {
		t.Errorf("exp decoder to run exactly once, ran %d times", decodes)
	}
	if out.ID != 12 || out.ScreenName != "rustlang" {
		t.Errorf("unexpected decoded value: %+v", out)
	}
}

func TestTyped_NotReadyForwarded(t *testing.T) {
	tr := newFakeTransport(
		headerEvent(http.StatusOK, nil),
		Event{Chunk: []byte(`{}`)},
		Event{End: true},
	)

	typed := Compose(New(tr, testRequest(t)), func(string, http.Header) (profile, error) {
		return profile{}, nil
	})

	// Transport has released nothing: typed reports not ready too.
	if _, done, err := typed.Step(t.Context()); done || err != nil {
		t.Fatalf("exp not-ready step, got done=%v err=%v", done, err)
	}
}

func TestTyped_RawFailureSkipsDecoder(t *testing.T) {
	tr := newFakeTransport(Event{Err: errors.New("tls handshake failure")})

	typed := Compose(New(tr, testRequest(t)), func(string, http.Header) (profile, error) {
		t.Fatal("decoder must not run on a raw failure")
		return profile{}, nil
	})

	_, err := driveTyped(t, typed, tr)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("exp TransportError, got %T: %v", err, err)
	}
}

func TestTyped_DecoderErrorForwarded(t *testing.T) {
	tr := newFakeTransport(
		headerEvent(http.StatusOK, nil),
		Event{Chunk: []byte(`not json`)},
		Event{End: true},
	)

	decodeErr := &DecodeError{Err: errors.New("expected an object")}
	typed := Compose(New(tr, testRequest(t)), func(string, http.Header) (profile, error) {
		return profile{}, decodeErr
	})

	if _, err := driveTyped(t, typed, tr); !errors.Is(err, decodeErr) {
		t.Fatalf("exp decoder error forwarded, got %v", err)
	}
}

func TestTyped_SecondResolveIsConsumed(t *testing.T) {
	run := func(t *testing.T, tr *fakeTransport, typed *Typed[profile]) {
		t.Helper()

		for range 3 {
			_, done, err := typed.Step(t.Context())
			if !done || !errors.Is(err, ErrConsumed) {
				t.Fatalf("exp ErrConsumed on re-resolution, got done=%v err=%v", done, err)
			}
		}
	}

	t.Run("After success", func(t *testing.T) {
		tr := newFakeTransport(
			headerEvent(http.StatusOK, nil),
			Event{Chunk: []byte(`{"id":1}`)},
			Event{End: true},
		)
		typed := Compose(New(tr, testRequest(t)), func(string, http.Header) (profile, error) {
			return profile{ID: 1}, nil
		})

		if _, err := driveTyped(t, typed, tr); err != nil {
			t.Fatalf("exp success, got %v", err)
		}
		run(t, tr, typed)
	})

	t.Run("After failure", func(t *testing.T) {
		tr := newFakeTransport(Event{Err: errors.New("boom")})
		typed := Compose(New(tr, testRequest(t)), func(string, http.Header) (profile, error) {
			return profile{}, nil
		})

		if _, err := driveTyped(t, typed, tr); err == nil {
			t.Fatal("exp failure")
		}
		run(t, tr, typed)
	})
}
