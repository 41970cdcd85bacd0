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

package auth

import (
	"net/http"

	"rivaas.dev/client"
)

// None returns a pass-through handler that leaves the request untouched.
// Useful to explicitly override an inherited handler on a public
// endpoint.
func None() client.AuthHandler {
	return func(*http.Request) error { return nil }
}

// Basic returns a handler setting HTTP basic authentication credentials.
func Basic(username, password string) client.AuthHandler {
	return func(r *http.Request) error {
		r.SetBasicAuth(username, password)
		return nil
	}
}

// Bearer returns a handler setting a fixed bearer token.
func Bearer(token string) client.AuthHandler {
	return func(r *http.Request) error {
		r.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// APIKey returns a handler setting key as the named header.
func APIKey(header, key string) client.AuthHandler {
	return func(r *http.Request) error {
		r.Header.Set(header, key)
		return nil
	}
}
