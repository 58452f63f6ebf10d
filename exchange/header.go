package exchange

import (
	"net/http"
	"strconv"

	"github.com/wrenkit/wren/rated"
)

// resetHeader reads the rate-limit reset header, reporting whether it was
// present and parseable. Classification treats a rate-limit error code
// without this header as a generic API error.
func resetHeader(h http.Header) (int, bool) {
	v, err := strconv.Atoi(h.Get(rated.HeaderReset))
	if err != nil {
		return 0, false
	}

	return v, true
}
