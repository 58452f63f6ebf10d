package wren

import "net/http"

// Signer authenticates an outgoing request in place, typically by adding
// an Authorization header. Signature construction lives entirely in the
// collaborator; the client only invokes it before send.
type Signer interface {
	Sign(req *http.Request) error
}

// SignerFunc adapts a plain function to the [Signer] interface.
type SignerFunc func(req *http.Request) error

func (f SignerFunc) Sign(req *http.Request) error {
	return f(req)
}
