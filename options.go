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
	"log/slog"
	"maps"
)

// Option configures the root client at construction time. All option
// constructors use the "With" prefix.
type Option func(*Client)

// GroupOption configures a nested group at registration time.
type GroupOption func(*Group)

// EndpointOption configures an endpoint at registration time.
type EndpointOption func(*Endpoint)

// WithTransport replaces the default net/http-backed transport. The
// transport must be safe for concurrent use once the tree is started.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTP2 swaps the default transport for one speaking HTTP/2
// cleartext, for backends behind h2c-terminating load balancers. It
// overrides any earlier WithTransport.
func WithHTTP2() Option {
	return func(c *Client) {
		c.transport = newH2CTransport()
	}
}

// WithLogger installs a structured logger. The default logger discards
// everything. Registration and dispatch log at debug level, Start logs
// one info line; auth material is never logged.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	c := client.MustNew("https://api.example.com", client.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder installs an observability recorder whose hooks run around
// every transport call. See LoggingRecorder and TracingRecorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithRequestID stamps a fresh RFC 4122 X-Request-ID header on every
// dispatch.
func WithRequestID() Option {
	return func(c *Client) {
		c.requestID = true
	}
}

// WithUserAgent overrides the default "rivaas-client/<version>" user
// agent. An empty string suppresses the header entirely.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders sets the root group's default header map, inherited by
// every descendant without a nearer one.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.root.headers = cloneHeaders(headers)
	}
}

// WithAuth sets the root group's default auth handler.
func WithAuth(h AuthHandler) Option {
	return func(c *Client) {
		c.root.auth = h
	}
}

// WithHandler sets the root group's default response handler. Without one
// anywhere on an endpoint's ancestor chain, dispatches return the raw
// *Response.
func WithHandler(h ResponseHandler) Option {
	return func(c *Client) {
		c.root.handler = h
	}
}

// WithGroupHeaders sets a nested group's default header map.
func WithGroupHeaders(headers map[string]string) GroupOption {
	return func(g *Group) {
		g.headers = cloneHeaders(headers)
	}
}

// WithGroupAuth sets a nested group's default auth handler.
func WithGroupAuth(h AuthHandler) GroupOption {
	return func(g *Group) {
		g.auth = h
	}
}

// WithGroupHandler sets a nested group's default response handler.
func WithGroupHandler(h ResponseHandler) GroupOption {
	return func(g *Group) {
		g.handler = h
	}
}

// WithRequired declares parameter names that every dispatch of the
// endpoint must supply, checked in declaration order before any network
// call.
func WithRequired(names ...string) EndpointOption {
	return func(e *Endpoint) {
		e.required = append(e.required, names...)
	}
}

// WithEndpointHeaders sets the endpoint's own header map, overriding any
// inherited one entirely.
func WithEndpointHeaders(headers map[string]string) EndpointOption {
	return func(e *Endpoint) {
		e.headers = cloneHeaders(headers)
	}
}

// WithEndpointAuth sets the endpoint's own auth handler, overriding any
// inherited one.
func WithEndpointAuth(h AuthHandler) EndpointOption {
	return func(e *Endpoint) {
		e.auth = h
	}
}

// WithEndpointHandler sets the endpoint's own response handler,
// overriding any inherited one.
func WithEndpointHandler(h ResponseHandler) EndpointOption {
	return func(e *Endpoint) {
		e.handler = h
	}
}

// cloneHeaders copies a header map so later caller mutation cannot reach
// into the tree. A nil map stays nil to keep inheritance fall-through.
func cloneHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	maps.Copy(out, headers)
	return out
}
