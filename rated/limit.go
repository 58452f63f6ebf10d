package rated

import (
	"net/http"
	"strconv"
)

// Rate-limit headers reported by the API. All three carry integer values;
// the reset header is a UTC Unix timestamp in seconds.
const (
	HeaderLimit     = "X-Rate-Limit-Limit"
	HeaderRemaining = "X-Rate-Limit-Remaining"
	HeaderReset     = "X-Rate-Limit-Reset"
)

// Unreported marks a field the server did not include in the response.
const Unreported = -1

// Limit is a snapshot of the caller's quota state at response time.
type Limit struct {
	// Ceiling is the rate limit ceiling for the called method.
	Ceiling int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// Reset is the UTC Unix timestamp at which the window resets.
	Reset int
}

// UnknownLimit returns a snapshot with every field set to [Unreported].
func UnknownLimit() Limit {
	return Limit{Ceiling: Unreported, Remaining: Unreported, Reset: Unreported}
}

// FromHeaders reads the rate-limit snapshot out of a response header set.
// A header that is absent or does not parse as an integer degrades to
// [Unreported] rather than failing.
func FromHeaders(h http.Header) Limit {
	return Limit{
		Ceiling:   intHeader(h, HeaderLimit),
		Remaining: intHeader(h, HeaderRemaining),
		Reset:     intHeader(h, HeaderReset),
	}
}

func intHeader(h http.Header, name string) int {
	v, err := strconv.Atoi(h.Get(name))
	if err != nil {
		return Unreported
	}

	return v
}

// supersedes reports whether the snapshot from a later-observed item should
// replace the running snapshot during [Merge]: a strictly later reset always
// wins; on an equal reset, a strictly smaller remaining count wins.
func supersedes(item, running Limit) bool {
	if item.Reset > running.Reset {
		return true
	}

	return item.Reset == running.Reset && item.Remaining < running.Remaining
}
