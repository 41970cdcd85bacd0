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
	"fmt"
	"strings"
)

// Method is an HTTP method drawn from the closed canonical set.
// The canonical spelling is uppercase; comparison against arbitrary
// spellings is case-insensitive via Is and ParseMethod.
type Method string

// The nine canonical HTTP methods. These are the only values a Method
// may legally hold after normalization.
const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	PATCH   Method = "PATCH"
	DELETE  Method = "DELETE"
	OPTIONS Method = "OPTIONS"
	HEAD    Method = "HEAD"
	CONNECT Method = "CONNECT"
	TRACE   Method = "TRACE"
)

// canonicalMethods is the closed set, in declaration order.
var canonicalMethods = []Method{GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD, CONNECT, TRACE}

// Methods returns the canonical ordered set of HTTP methods.
// The returned slice is a copy; callers may modify it freely.
func Methods() []Method {
	out := make([]Method, len(canonicalMethods))
	copy(out, canonicalMethods)
	return out
}

// ParseMethod maps any case-insensitive spelling of an HTTP method to its
// canonical tag. Unrecognized spellings fail with *NotImplementedError
// naming the offending value.
//
// Example:
//
//	m, err := client.ParseMethod("get") // GET, nil
//	m, err = client.ParseMethod("YEET") // "", *NotImplementedError
func ParseMethod(s string) (Method, error) {
	upper := strings.ToUpper(s)
	for _, m := range canonicalMethods {
		if string(m) == upper {
			return m, nil
		}
	}
	return "", &NotImplementedError{Message: fmt.Sprintf("method %q is not valid", s)}
}

// NormalizeMethods canonicalizes a slice of methods in order, failing on
// the first entry that is not a recognized spelling. The input slice is
// not modified.
func NormalizeMethods(methods []Method) ([]Method, error) {
	out := make([]Method, 0, len(methods))
	for _, m := range methods {
		canonical, err := ParseMethod(string(m))
		if err != nil {
			return nil, err
		}
		out = append(out, canonical)
	}
	return out, nil
}

// Is reports whether s is a spelling of m, ignoring case. A canonical tag
// and its plain textual spelling compare equal.
func (m Method) Is(s string) bool {
	return strings.EqualFold(string(m), s)
}

// HasBody reports whether the method carries a request body. Leftover
// call parameters become the JSON body for these methods and URL query
// parameters for all others.
func (m Method) HasBody() bool {
	return m == POST || m == PUT || m == PATCH
}

// String returns the canonical spelling.
func (m Method) String() string {
	return string(m)
}
