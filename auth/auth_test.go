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
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNone verifies the pass-through handler leaves headers untouched.
func TestNone(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, None()(req))
	assert.Empty(t, req.Header.Get("Authorization"))
}

// TestBasic verifies basic credentials round-trip through the standard
// header.
func TestBasic(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, Basic("user", "pass")(req))

	username, password, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "user", username)
	assert.Equal(t, "pass", password)
}

// TestBearer verifies the bearer header form.
func TestBearer(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, Bearer("tok")(req))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

// TestAPIKey verifies the named-header form.
func TestAPIKey(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, APIKey("X-API-Key", "secret")(req))
	assert.Equal(t, "secret", req.Header.Get("X-API-Key"))
}

// TestJWT verifies the signed token verifies against the same secret and
// carries the caller's claims plus a fresh iat.
func TestJWT(t *testing.T) {
	t.Parallel()

	secret := []byte("signing-secret")
	handler := JWT(secret, jwt.MapClaims{"sub": "svc-a"})

	req := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, handler(req))

	header := req.Header.Get("Authorization")
	require.True(t, len(header) > len("Bearer "))
	raw := header[len("Bearer "):]

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "svc-a", claims["sub"])
	assert.Contains(t, claims, "iat")
}

// TestJWTFreshTokenPerRequest verifies the caller's claim map is not
// mutated between dispatches.
func TestJWTFreshTokenPerRequest(t *testing.T) {
	t.Parallel()

	claims := jwt.MapClaims{"sub": "svc-a"}
	handler := JWT([]byte("secret"), claims)

	first := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, handler(first))
	second := httptest.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, handler(second))

	assert.NotContains(t, claims, "iat", "caller's claims must stay untouched")
}
