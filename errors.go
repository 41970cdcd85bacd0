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
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrStarted indicates that a builder operation was attempted on a tree
	// that has already been started.
	ErrStarted = errors.New("client already started")

	// ErrNotStarted indicates that a runtime operation (lookup or dispatch)
	// was attempted before the tree was started.
	ErrNotStarted = errors.New("client not started")

	// ErrBaseURLEmpty indicates that the constructor was given an empty
	// base URL.
	ErrBaseURLEmpty = errors.New("base URL must not be empty")
)

// UsageError reports caller misuse of the builder surface: registration on
// a started tree, a dynamic method lookup with a non-method name, a
// duplicate sibling name, or a runtime lookup before Start.
//
// When the misuse is a mode violation, Err wraps ErrStarted or
// ErrNotStarted so callers can match the mode with errors.Is.
type UsageError struct {
	Message string
	Err     error
}

// Error returns the usage message.
func (e *UsageError) Error() string { return e.Message }

// Unwrap returns the wrapped mode sentinel, if any.
func (e *UsageError) Unwrap() error { return e.Err }

// NotImplementedError reports that a requested method, endpoint, or group
// does not exist in the current mode: an unknown post-start symbol, a
// dispatch method the endpoint does not declare, or an unparseable method
// spelling.
type NotImplementedError struct {
	Message string
}

// Error returns the message.
func (e *NotImplementedError) Error() string { return e.Message }

// ParamValidationError reports a required or path parameter missing at
// call time. Param is the bare name for a required parameter and the
// template token spelling (with the leading colon) for a path parameter.
type ParamValidationError struct {
	Param string
}

// Error names the missing parameter.
func (e *ParamValidationError) Error() string {
	return fmt.Sprintf("required parameter %s is missing", e.Param)
}

// RequestError reports a non-success HTTP status surfaced by a checking
// response handler such as CheckOK. It carries the status code and the raw
// response body; the default identity handler never produces it.
type RequestError struct {
	Code    int
	Content []byte
	URL     string
}

// Error describes the failed request.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.Code)
}

// JSON re-decodes the response body on demand, falling back to the raw
// bytes when the body is not valid JSON.
func (e *RequestError) JSON() any {
	var v any
	if err := json.Unmarshal(e.Content, &v); err != nil {
		return e.Content
	}
	return v
}

// RequestAuthError is the 401/403 specialization of RequestError produced
// by checking handlers when the server rejects the request's credentials.
// It unwraps to its embedded RequestError, so errors.As against
// *RequestError matches auth failures too.
type RequestAuthError struct {
	RequestError
}

// Error returns the fixed authentication-failure message.
func (e *RequestAuthError) Error() string { return "authentication failed" }

// Unwrap exposes the embedded RequestError to errors.Is and errors.As.
func (e *RequestAuthError) Unwrap() error { return &e.RequestError }
