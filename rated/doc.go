// Package rated pairs decoded API values with the rate-limit accounting
// the server reported alongside them, so callers can check quota state
// inline without a second network call.
package rated
