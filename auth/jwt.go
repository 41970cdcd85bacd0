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
	"fmt"
	"maps"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rivaas.dev/client"
)

// JWT returns a handler that signs a fresh HS256 token per request and
// sends it as a bearer credential. The claims are copied and stamped
// with an "iat" issued-at on every dispatch, so tokens stay fresh for
// long-lived clients.
func JWT(secret []byte, claims jwt.MapClaims) client.AuthHandler {
	return func(r *http.Request) error {
		stamped := make(jwt.MapClaims, len(claims)+1)
		maps.Copy(stamped, claims)
		stamped["iat"] = time.Now().Unix()

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, stamped).SignedString(secret)
		if err != nil {
			return fmt.Errorf("sign jwt: %w", err)
		}
		r.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}
