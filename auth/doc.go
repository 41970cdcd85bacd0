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

// Package auth provides stock request-authentication handlers for
// rivaas.dev/client. Each constructor returns a client.AuthHandler that
// mutates the outgoing request immediately before the transport sends it.
//
// # Quick Start
//
//	c := client.MustNew("https://api.example.com",
//	    client.WithAuth(auth.Bearer("my-token")),
//	)
//
// Handlers compose with the tree like any other inherited default: set
// one on the root for the whole API, on a group for its subtree, or on a
// single endpoint.
package auth
