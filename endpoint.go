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
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Params carries the named arguments of a dispatch. Path parameters are
// consumed by template binding; required parameters are checked first;
// whatever remains becomes the JSON body (POST/PUT/PATCH) or the query
// string (all other methods). The map passed by the caller is never
// mutated.
type Params map[string]any

// CallFunc is a dispatcher bound to a single method of a single endpoint,
// as returned by Dispatcher.
type CallFunc func(ctx context.Context, params Params) (any, error)

// Endpoint is a leaf of the client tree: a path template bound to one or
// more HTTP methods. The first declared method is the default used by
// Call. Endpoints are created through Group.Register and its shortcuts,
// never directly.
type Endpoint struct {
	parent   *Group
	name     string
	path     string
	tmpl     template
	methods  []Method
	required []string

	// Own overrides; nil falls back to the nearest ancestor.
	headers map[string]string
	auth    AuthHandler
	handler ResponseHandler
}

// Name returns the symbol the endpoint was registered under.
func (e *Endpoint) Name() string { return e.name }

// Path returns the normalized path template.
func (e *Endpoint) Path() string { return e.path }

// Methods returns the declared methods in declaration order. The first
// entry is the default method.
func (e *Endpoint) Methods() []Method {
	out := make([]Method, len(e.methods))
	copy(out, e.methods)
	return out
}

// Required returns the declared required parameter names in declaration
// order.
func (e *Endpoint) Required() []string {
	out := make([]string, len(e.required))
	copy(out, e.required)
	return out
}

// FullPath returns the endpoint's absolute URL template: every ancestor
// prefix from the root down, concatenated in root-to-leaf order, followed
// by the endpoint's own path.
func (e *Endpoint) FullPath() string {
	return e.baseURL() + e.path
}

// baseURL concatenates ancestor prefixes in root-to-leaf order.
func (e *Endpoint) baseURL() string {
	var prefixes []string
	for g := e.parent; g != nil; g = g.parent {
		prefixes = append(prefixes, g.prefix)
	}
	var sb strings.Builder
	for i := len(prefixes) - 1; i >= 0; i-- {
		sb.WriteString(prefixes[i])
	}
	return sb.String()
}

// effectiveHeaders resolves the header map: the endpoint's own when set,
// else the nearest ancestor's non-nil map, else nil. Maps are not merged
// across levels.
func (e *Endpoint) effectiveHeaders() map[string]string {
	if e.headers != nil {
		return e.headers
	}
	for g := e.parent; g != nil; g = g.parent {
		if g.headers != nil {
			return g.headers
		}
	}
	return nil
}

// effectiveAuth resolves the auth handler along the ancestor chain.
func (e *Endpoint) effectiveAuth() AuthHandler {
	if e.auth != nil {
		return e.auth
	}
	for g := e.parent; g != nil; g = g.parent {
		if g.auth != nil {
			return g.auth
		}
	}
	return nil
}

// effectiveHandler resolves the response handler along the ancestor
// chain. Nil means identity: the dispatch returns the raw *Response.
func (e *Endpoint) effectiveHandler() ResponseHandler {
	if e.handler != nil {
		return e.handler
	}
	for g := e.parent; g != nil; g = g.parent {
		if g.handler != nil {
			return g.handler
		}
	}
	return nil
}

// match resolves a case-insensitive method spelling against the declared
// methods.
func (e *Endpoint) match(method Method) (Method, bool) {
	for _, m := range e.methods {
		if m.Is(string(method)) {
			return m, true
		}
	}
	return "", false
}

// Dispatcher is the endpoint's symbolic resolver: name must be a
// case-insensitive spelling of one of the declared methods, and the
// result is a dispatcher bound to it. Other names fail with
// *NotImplementedError.
func (e *Endpoint) Dispatcher(name string) (CallFunc, error) {
	method, ok := e.match(Method(name))
	if !ok {
		return nil, &NotImplementedError{Message: fmt.Sprintf("%s is not a valid method for the %s route", name, e.path)}
	}
	return func(ctx context.Context, params Params) (any, error) {
		return e.Do(ctx, method, params)
	}, nil
}

// Call dispatches with the endpoint's default method, the first declared
// one.
func (e *Endpoint) Call(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, e.methods[0], params)
}

// Do runs the dispatch pipeline for one request:
//
//  1. Reject dispatch on an unstarted tree.
//  2. Validate the method is declared on this endpoint.
//  3. Check required parameters in declaration order.
//  4. Bind path parameters into the template.
//  5. Route leftover parameters to the body or the query string.
//  6. Resolve inherited headers, auth handler, handler, and base URL.
//  7. Issue exactly one transport call.
//  8. Apply the resolved response handler to the raw response.
//
// Steps 1–5 fail deterministically before any network traffic. The
// caller's params map is never mutated.
func (e *Endpoint) Do(ctx context.Context, method Method, params Params) (any, error) {
	c := e.parent.root()
	if c == nil || !c.started.Load() {
		return nil, &UsageError{
			Message: fmt.Sprintf("cannot call %q before the client is started", e.name),
			Err:     ErrNotStarted,
		}
	}

	canonical, ok := e.match(method)
	if !ok {
		return nil, &NotImplementedError{Message: fmt.Sprintf("%s is not a valid method for the %s route", method, e.path)}
	}

	for _, name := range e.required {
		if _, present := params[name]; !present {
			return nil, &ParamValidationError{Param: name}
		}
	}

	working := make(Params, len(params))
	maps.Copy(working, params)
	boundPath, err := e.tmpl.bind(working)
	if err != nil {
		return nil, err
	}

	var body any
	query := url.Values{}
	if canonical.HasBody() {
		if len(working) > 0 {
			body = map[string]any(working)
		}
	} else {
		for key, value := range working {
			query.Set(key, cast.ToString(value))
		}
	}

	target := e.baseURL() + boundPath
	req := &Request{
		Method: canonical,
		URL:    target,
		Header: make(http.Header),
		Body:   body,
		Query:  query,
		Auth:   e.effectiveAuth(),
	}
	for name, value := range e.effectiveHeaders() {
		req.Header.Set(name, value)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.requestID {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	if c.recorder != nil {
		ctx = c.recorder.OnRequestStart(ctx, canonical, target)
	}
	c.logger.Debug("dispatching request", "endpoint", e.name, "method", canonical, "url", target)

	begin := time.Now()
	resp, err := c.transport.Issue(ctx, req)
	if c.recorder != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.recorder.OnRequestEnd(ctx, canonical, target, status, err, time.Since(begin))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.path, err)
	}

	handler := e.effectiveHandler()
	if handler == nil {
		return resp, nil
	}
	return handler(resp)
}

// URL builds the absolute URL a dispatch with the default method would
// issue against, without making a request. The started guard and the
// required and path parameters are validated exactly as in a dispatch;
// leftovers become the query string for non-body methods.
func (e *Endpoint) URL(params Params) (string, error) {
	c := e.parent.root()
	if c == nil || !c.started.Load() {
		return "", &UsageError{
			Message: fmt.Sprintf("cannot build a URL for %q before the client is started", e.name),
			Err:     ErrNotStarted,
		}
	}

	for _, name := range e.required {
		if _, present := params[name]; !present {
			return "", &ParamValidationError{Param: name}
		}
	}

	working := make(Params, len(params))
	maps.Copy(working, params)
	boundPath, err := e.tmpl.bind(working)
	if err != nil {
		return "", err
	}

	target := e.baseURL() + boundPath
	if !e.methods[0].HasBody() && len(working) > 0 {
		query := url.Values{}
		for key, value := range working {
			query.Set(key, cast.ToString(value))
		}
		target = target + "?" + query.Encode()
	}
	return target, nil
}

// GET dispatches with the GET method.
func (e *Endpoint) GET(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, GET, params)
}

// POST dispatches with the POST method.
func (e *Endpoint) POST(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, POST, params)
}

// PUT dispatches with the PUT method.
func (e *Endpoint) PUT(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, PUT, params)
}

// PATCH dispatches with the PATCH method.
func (e *Endpoint) PATCH(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, PATCH, params)
}

// DELETE dispatches with the DELETE method.
func (e *Endpoint) DELETE(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, DELETE, params)
}

// OPTIONS dispatches with the OPTIONS method.
func (e *Endpoint) OPTIONS(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, OPTIONS, params)
}

// HEAD dispatches with the HEAD method.
func (e *Endpoint) HEAD(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, HEAD, params)
}

// CONNECT dispatches with the CONNECT method.
func (e *Endpoint) CONNECT(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, CONNECT, params)
}

// TRACE dispatches with the TRACE method.
func (e *Endpoint) TRACE(ctx context.Context, params Params) (any, error) {
	return e.Do(ctx, TRACE, params)
}
