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
	"net/http"

	"github.com/goccy/go-yaml"
)

// ResponseHandler transforms the raw transport response into the value a
// dispatch returns. When no handler is set anywhere on an endpoint's
// ancestor chain, the dispatch returns the *Response unchanged and never
// inspects the status code.
type ResponseHandler func(*Response) (any, error)

// AuthHandler mutates the outgoing request in place immediately before the
// transport sends it, typically to attach credentials. Returning an error
// aborts the dispatch before any bytes hit the wire.
type AuthHandler func(*http.Request) error

// checkOK polices the response status: 401 and 403 fail with
// *RequestAuthError, any other non-success status with *RequestError.
func checkOK(resp *Response) error {
	if resp.OK() {
		return nil
	}
	reqErr := RequestError{Code: resp.StatusCode, Content: resp.Body, URL: resp.URL}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &RequestAuthError{RequestError: reqErr}
	}
	return &reqErr
}

// CheckOK returns a handler that enforces success checking and passes
// successful responses through unchanged. Install it on the root to make
// every endpoint surface non-2xx/3xx statuses as typed errors.
//
// Example:
//
//	c := client.MustNew("https://api.example.com", client.WithHandler(client.CheckOK()))
func CheckOK() ResponseHandler {
	return func(resp *Response) (any, error) {
		if err := checkOK(resp); err != nil {
			return nil, err
		}
		return resp, nil
	}
}

// DecodeJSON returns a handler that checks success and decodes the JSON
// body into an untyped value (map, slice, or scalar).
func DecodeJSON() ResponseHandler {
	return func(resp *Response) (any, error) {
		if err := checkOK(resp); err != nil {
			return nil, err
		}
		var v any
		if err := resp.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// DecodeYAML returns a handler that checks success and decodes the YAML
// body into an untyped value.
func DecodeYAML() ResponseHandler {
	return func(resp *Response) (any, error) {
		if err := checkOK(resp); err != nil {
			return nil, err
		}
		var v any
		if err := yaml.Unmarshal(resp.Body, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// DecodeInto returns a handler that checks success and decodes the JSON
// body into a fresh *T.
//
// Example:
//
//	type Todo struct {
//	    ID    int    `json:"id"`
//	    Value string `json:"value"`
//	}
//	ep, _ := c.Register("one", "/todos/:id", []client.Method{client.GET},
//	    client.WithEndpointHandler(client.DecodeInto[Todo]()))
func DecodeInto[T any]() ResponseHandler {
	return func(resp *Response) (any, error) {
		if err := checkOK(resp); err != nil {
			return nil, err
		}
		out := new(T)
		if err := resp.Decode(out); err != nil {
			return nil, err
		}
		return out, nil
	}
}
