package wren

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/wrenkit/wren/params"
)

// Get builds a signed GET request for the given endpoint path, encoding
// the parameters into the query string.
func (c *Client) Get(ctx context.Context, endpoint string, p params.List) (*http.Request, error) {
	reqURL := c.baseURL + endpoint
	if len(p) > 0 {
		reqURL += "?" + p.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	return c.sign(req)
}

// Post builds a signed POST request for the given endpoint path, encoding
// the parameters as a form body.
func (c *Client) Post(ctx context.Context, endpoint string, p params.List) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(p.Encode()))
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.sign(req)
}

func (c *Client) sign(req *http.Request) (*http.Request, error) {
	if c.signer == nil {
		return req, nil
	}

	if err := c.signer.Sign(req); err != nil {
		return nil, fmt.Errorf("signing request: %w", err)
	}

	return req, nil
}
