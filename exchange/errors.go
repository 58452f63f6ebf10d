package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CodeRateLimited is the API error code reserved for "rate limit exceeded".
const CodeRateLimited = 88

var (
	// ErrConsumed is returned when an engine is stepped again after it
	// already reached a terminal state. It signals caller misuse, not a
	// network condition.
	ErrConsumed = errors.New("exchange already resolved")
	// ErrInvalidUTF8 is wrapped by the [DecodeError] produced when a
	// response body is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("body is not valid UTF-8")
)

// TransportError wraps a connection-level failure (refused, reset, DNS,
// TLS) that prevented a full response from being obtained.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for a non-200 response whose body did not carry
// a structured API error payload.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// DecodeError is returned when the buffered body cannot be converted into
// the expected value, either at the UTF-8 stage or inside a decoder.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrorDetail is one (code, message) entry of a structured API error body.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIError carries the structured error list the API embeds in certain
// response bodies, in the order the server sent it.
type APIError struct {
	Errors []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString("api error:")
	for _, d := range e.Errors {
		fmt.Fprintf(&sb, " [%d] %s", d.Code, d.Message)
	}

	return sb.String()
}

// Contains reports whether any entry carries the given code.
func (e *APIError) Contains(code int) bool {
	for _, d := range e.Errors {
		if d.Code == code {
			return true
		}
	}

	return false
}

// RateLimitError is returned when the API reports the rate-limit error
// code and the response named the instant the window reopens.
type RateLimitError struct {
	// Reset is the UTC Unix timestamp at which the quota window resets.
	Reset int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s",
		time.Unix(int64(e.Reset), 0).UTC().Format(time.RFC3339))
}

// parseAPIError attempts to read body as a structured API error payload.
// It reports false for any body that is not a JSON object with a
// non-empty errors list.
func parseAPIError(body string) (*APIError, bool) {
	var apiErr APIError
	if err := json.Unmarshal([]byte(body), &apiErr); err != nil {
		return nil, false
	}
	if len(apiErr.Errors) == 0 {
		return nil, false
	}

	return &apiErr, true
}
