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

package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/client"
)

// todoServer is a minimal in-memory todo API backing the end-to-end
// specs.
type todoServer struct {
	mu    sync.Mutex
	next  int
	todos map[int]string
}

func newTodoServer() *todoServer {
	return &todoServer{next: 1, todos: make(map[int]string)}
}

func (s *todoServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/todos/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sesame" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in struct {
			Value string `json:"value"`
		}
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &in)

		s.mu.Lock()
		id := s.next
		s.next++
		s.todos[id] = in.Value
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "value": in.Value})
	})
	mux.HandleFunc("GET /api/todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sesame" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		value, ok := s.todos[id]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "value": value})
	})
	return mux
}

var _ = Describe("Client Integration", func() {
	var (
		server *httptest.Server
		c      *client.Client
	)

	BeforeEach(func() {
		server = httptest.NewServer(newTodoServer().handler())

		c = client.MustNew(server.URL+"/api",
			client.WithHandler(client.DecodeJSON()),
			client.WithAuth(func(r *http.Request) error {
				r.Header.Set("Authorization", "Bearer sesame")
				return nil
			}),
		)
		todos, err := c.Group("todos", "/todos")
		Expect(err).NotTo(HaveOccurred())
		Expect(todos.Standard("id")).To(Succeed())
		Expect(c.Start()).To(Succeed())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Complete request lifecycle", func() {
		It("creates and fetches a todo through the started tree", func() {
			created, err := c.Call(context.Background(), "todos.create",
				client.Params{"value": "write specs"})
			Expect(err).NotTo(HaveOccurred())

			decoded := created.(map[string]any)
			Expect(decoded["value"]).To(Equal("write specs"))
			id := int(decoded["id"].(float64))

			fetched, err := c.Call(context.Background(), "todos.get", client.Params{"id": id})
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.(map[string]any)["value"]).To(Equal("write specs"))
		})

		It("reports missing todos as request errors", func() {
			_, err := c.Call(context.Background(), "todos.get", client.Params{"id": 999})
			var reqErr *client.RequestError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &reqErr)).To(BeTrue())
			Expect(reqErr.Code).To(Equal(http.StatusNotFound))
		})

		It("surfaces rejected credentials as auth errors", func() {
			bare := client.MustNew(server.URL+"/api", client.WithHandler(client.CheckOK()))
			todos, err := bare.Group("todos", "/todos")
			Expect(err).NotTo(HaveOccurred())
			Expect(todos.Standard("id")).To(Succeed())
			Expect(bare.Start()).To(Succeed())

			_, err = bare.Call(context.Background(), "todos.get", client.Params{"id": 1})
			var authErr *client.RequestAuthError
			Expect(errors.As(err, &authErr)).To(BeTrue())
		})
	})

	Describe("Parameter validation", func() {
		It("fails fast on a missing path parameter", func() {
			_, err := c.Call(context.Background(), "todos.get", nil)
			var pve *client.ParamValidationError
			Expect(errors.As(err, &pve)).To(BeTrue())
			Expect(pve.Param).To(Equal(":id"))
		})
	})

	Describe("Concurrent dispatch", func() {
		It("serves many goroutines from one started tree", func() {
			created, err := c.Call(context.Background(), "todos.create",
				client.Params{"value": "shared"})
			Expect(err).NotTo(HaveOccurred())
			id := int(created.(map[string]any)["id"].(float64))

			var wg sync.WaitGroup
			errs := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := c.Call(context.Background(), "todos.get", client.Params{"id": id})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				Expect(err).NotTo(HaveOccurred())
			}
		})
	})
})
