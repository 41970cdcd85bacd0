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

// Package client builds declarative REST API clients. A caller describes
// an API as a hierarchy of named route groups and endpoints, starts the
// tree to freeze it, and then dispatches requests through the registered
// names.
//
// # Key Features
//
//   - Two-phase lifecycle: a builder phase for registration, then a
//     frozen started phase for lookup and dispatch
//   - Hierarchical groups with ancestor-chain inheritance of base URL
//     fragments, headers, auth handlers, and response handlers
//   - Path templates with :name parameters bound from call-time arguments
//   - Leftover arguments routed to the JSON body (POST/PUT/PATCH) or the
//     query string (all other methods)
//   - Pluggable transport, stock response handlers (CheckOK, DecodeJSON,
//     DecodeYAML, DecodeInto), and auth helpers in the auth subpackage
//   - Declarative YAML/TOML client manifests in the manifest subpackage
//   - Observability via slog logging and OpenTelemetry tracing recorders
//
// # Lifecycle
//
// The tree is mutable only before Start. Starting from any node freezes
// the whole tree at once; afterwards registration fails with UsageError
// and the children map becomes the sole source of truth for symbolic
// resolution. A started tree is immutable, so endpoints may be dispatched
// concurrently from any number of goroutines without locks.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "rivaas.dev/client"
//	)
//
//	func main() {
//	    c := client.MustNew("https://api.example.com")
//	    todos, _ := c.Group("todos", "/todos")
//	    todos.GET("one", "/:id")
//	    todos.POST("create", "/", client.WithRequired("value"))
//	    c.Start()
//
//	    result, err := c.Call(context.Background(), "todos.one", client.Params{"id": 3})
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(result.(*client.Response).StatusCode)
//	}
//
// # Error Taxonomy
//
// Builder misuse fails with UsageError, unknown symbols and methods with
// NotImplementedError, missing parameters with ParamValidationError, all
// strictly before any network traffic. Checking response handlers surface
// non-success statuses as RequestError, or RequestAuthError for 401/403.
// The default handler performs no status checking and returns the raw
// *Response regardless of status.
package client
