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
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// segment is one /-separated piece of a path template. A parameter segment
// has param set to the bare name; a static segment has literal set.
type segment struct {
	literal string
	param   string
}

// template is a parsed path template. Parameter segments are a colon
// followed by one or more letters or underscores, e.g. /todos/:id.
type template struct {
	raw      string
	segments []segment
	params   []string
}

// normalizePath guarantees the leading slash the data model requires.
// Registering "x" and "/x" yields the same effective path.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// isParamName reports whether s is a legal parameter identifier
// (one or more letters or underscores).
func isParamName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// parseTemplate splits a normalized path into static and parameter
// segments. Segments that start with a colon but are not legal parameter
// identifiers stay literal.
func parseTemplate(path string) template {
	path = normalizePath(path)
	t := template{raw: path}
	for _, part := range strings.Split(path, "/") {
		if name, ok := strings.CutPrefix(part, ":"); ok && isParamName(name) {
			t.segments = append(t.segments, segment{param: name})
			t.params = append(t.params, name)
			continue
		}
		t.segments = append(t.segments, segment{literal: part})
	}
	return t
}

// bind substitutes parameter values into the template and returns the
// concrete path. Each bound key is deleted from params so the caller's
// leftover set no longer contains consumed values; pass a working copy.
// A missing parameter fails with *ParamValidationError carrying the token
// spelling (":name").
//
// Values are stringified with cast.ToString and percent-escaped.
func (t template) bind(params Params) (string, error) {
	if len(t.params) == 0 {
		return t.raw, nil
	}
	parts := make([]string, 0, len(t.segments))
	for _, seg := range t.segments {
		if seg.param == "" {
			parts = append(parts, seg.literal)
			continue
		}
		v, ok := params[seg.param]
		if !ok {
			return "", &ParamValidationError{Param: ":" + seg.param}
		}
		delete(params, seg.param)
		parts = append(parts, url.PathEscape(cast.ToString(v)))
	}
	return strings.Join(parts, "/"), nil
}
