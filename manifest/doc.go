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

// Package manifest builds rivaas.dev/client trees from declarative YAML
// or TOML documents. A manifest names the base URL, client-wide headers,
// shared endpoint defaults, and the full group/endpoint hierarchy;
// loading validates the document against an embedded JSON Schema before
// any tree is built.
//
// # Manifest Format
//
//	base_url: https://api.example.com
//	user_agent: todo-cli/1.0
//	headers:
//	  X-Env: prod
//	defaults:
//	  headers:
//	    Accept: application/json
//	groups:
//	  todos:
//	    prefix: /todos
//	    standard: todo_id
//	    endpoints:
//	      search:
//	        path: /search
//	        methods: [GET]
//	endpoints:
//	  health:
//	    path: /health
//
// # Quick Start
//
//	m, err := manifest.Load("api.yaml")
//	if err != nil {
//	    return err
//	}
//	c, err := m.Build()
//	if err != nil {
//	    return err
//	}
//	// The tree is still in builder mode: extend it if needed, then
//	// freeze it.
//	if err := c.Start(); err != nil {
//	    return err
//	}
//
// A manifest-level defaults block merges into every endpoint entry:
// empty fields are filled and header maps gain the default keys they are
// missing. Method names are normalized through
// client.ParseMethod, so any case-insensitive spelling is accepted; an
// endpoint without methods dispatches GET.
package manifest
