// Package params assembles and validates the query/form parameters for
// API endpoints.
package params

import "net/url"

// List is an ordered-irrelevant set of request parameters. Endpoints
// build one, the client encodes it into the query string or form body.
type List map[string]string

// Add sets a parameter, overwriting any previous value for the key.
func (l List) Add(key, value string) List {
	l[key] = value
	return l
}

// AddIf sets a parameter only when value is non-empty.
func (l List) AddIf(key, value string) List {
	if value != "" {
		l[key] = value
	}
	return l
}

// Clone returns an independent copy of the list.
func (l List) Clone() List {
	out := make(List, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Remove deletes a parameter if present.
func (l List) Remove(key string) List {
	delete(l, key)
	return l
}

// Encode renders the list as URL-encoded form data.
func (l List) Encode() string {
	vals := url.Values{}
	for k, v := range l {
		vals.Set(k, v)
	}
	return vals.Encode()
}
