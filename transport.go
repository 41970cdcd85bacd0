// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/http2"
)

// Request is the fully resolved outgoing request handed to a Transport.
// The dispatcher has already bound path parameters, split leftovers into
// Body or Query, and resolved the effective headers and auth handler.
type Request struct {
	// Method is the canonical HTTP method.
	Method Method

	// URL is the absolute URL without the query string.
	URL string

	// Header holds the effective headers resolved from the endpoint and
	// its ancestors plus client-wide headers such as the user agent.
	Header http.Header

	// Body is the structured request body, JSON-encoded by the transport
	// when non-nil. Set only for body-carrying methods.
	Body any

	// Query holds the leftover parameters for non-body methods. The
	// transport appends it to URL.
	Query url.Values

	// Auth is the effective auth handler, applied to the outgoing
	// *http.Request immediately before the transport sends it. Nil means
	// no authentication.
	Auth AuthHandler
}

// Response is the raw transport response. The transport has already read
// the wire; Body holds the full payload.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	// URL is the absolute URL the request was issued against, query
	// string included.
	URL string
}

// OK reports success: any status below 400.
func (r *Response) OK() bool { return r.StatusCode < 400 }

// JSON decodes the body best-effort, falling back to the raw bytes when
// the body is not valid JSON.
func (r *Response) JSON() any {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return r.Body
	}
	return v
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Transport issues a resolved request and blocks until a response or a
// transport failure. Exactly one Issue call occurs per dispatch; the
// library adds no retries, pooling, or timeouts of its own; cancellation
// is the caller's ctx, passed through unmodified.
//
// Implementations must be safe for concurrent use; the tree is immutable
// once started and dispatches from multiple goroutines share one
// Transport.
type Transport interface {
	Issue(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport is the default Transport, backed by an *http.Client. It
// JSON-encodes the body with Content-Type: application/json, applies the
// auth handler immediately before sending, and reads the full response
// body.
type HTTPTransport struct {
	// Client is the underlying HTTP client. Connection pooling, proxies,
	// and timeouts are whatever it is configured with.
	Client *http.Client
}

// NewHTTPTransport returns an HTTPTransport backed by a zero-value
// *http.Client (shared connection pool, no timeout).
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{}}
}

// newH2CTransport returns an HTTPTransport whose client speaks HTTP/2
// cleartext, for backends behind h2c-terminating load balancers.
func newH2CTransport() *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{
		Transport: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		},
	}}
}

// Issue implements Transport.
func (t *HTTPTransport) Issue(ctx context.Context, req *Request) (*Response, error) {
	target := req.URL
	if len(req.Query) > 0 {
		target = target + "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), target, body)
	if err != nil {
		return nil, err
	}
	for name, values := range req.Header {
		httpReq.Header[name] = values
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Auth != nil {
		if err := req.Auth(httpReq); err != nil {
			return nil, fmt.Errorf("auth handler: %w", err)
		}
	}

	httpResp, err := t.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close() //nolint:errcheck // read side already consumed

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       payload,
		URL:        target,
	}, nil
}
