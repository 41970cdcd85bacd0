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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// noopLogger discards everything; WithLogger overrides it.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Client is the root of a client tree. It owns the root Group and
// forwards its whole builder and runtime surface, and additionally holds
// the tree-wide state: the started latch, the transport, the logger, and
// the observability recorder.
//
// Build the tree, call Start exactly once, then dispatch:
//
//	c := client.MustNew("https://api.example.com")
//	todos, _ := c.Group("todos", "/todos")
//	todos.GET("one", "/:id")
//	todos.POST("create", "/", client.WithRequired("value"))
//	c.Start()
//
//	result, err := c.Call(ctx, "todos.one", client.Params{"id": 3})
type Client struct {
	root Group

	started   atomic.Bool
	startOnce sync.Once

	transport Transport
	logger    *slog.Logger
	recorder  Recorder
	requestID bool
	userAgent string
}

// EndpointInfo describes one started route, as reported by Endpoints.
type EndpointInfo struct {
	// Name is the dotted path from the root, e.g. "todos.one".
	Name string

	// Path is the endpoint's own template, e.g. "/:id".
	Path string

	// FullPath is the absolute URL template including every ancestor
	// prefix, e.g. "https://api.example.com/todos/:id".
	FullPath string

	Methods  []Method
	Required []string
}

// New constructs an unstarted client whose root group contributes baseURL
// as the first base-URL fragment. Construction fails on an empty or
// unparseable base URL; options are applied in order.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLEmpty
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}

	c := &Client{
		transport: NewHTTPTransport(),
		logger:    noopLogger,
		userAgent: "rivaas-client/" + Version,
	}
	c.root = Group{
		owner:    c,
		prefix:   baseURL,
		children: make(map[string]Node),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is New that panics on error, for program-literal base URLs.
func MustNew(baseURL string, opts ...Option) *Client {
	c, err := New(baseURL, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns "" at the root.
func (c *Client) Name() string { return c.root.Name() }

// Prefix returns the constructor's base URL.
func (c *Client) Prefix() string { return c.root.Prefix() }

// Started reports whether the tree has been started.
func (c *Client) Started() bool { return c.root.Started() }

// Start freezes the whole tree. See Group.Start.
func (c *Client) Start() error { return c.root.Start() }

// Register creates an endpoint on the root group. See Group.Register.
func (c *Client) Register(name, path string, methods []Method, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.Register(name, path, methods, opts...)
}

// Group creates a child group of the root. See Group.Group.
func (c *Client) Group(name, prefix string, opts ...GroupOption) (*Group, error) {
	return c.root.Group(name, prefix, opts...)
}

// Standard batch-registers the conventional CRUD routes on the root
// group. See Group.Standard.
func (c *Client) Standard(param string, opts ...EndpointOption) error {
	return c.root.Standard(param, opts...)
}

// AddHeader merges a header into the root group's default header map.
func (c *Client) AddHeader(name, value string) error {
	return c.root.AddHeader(name, value)
}

// SetHandler sets the root group's default response handler.
func (c *Client) SetHandler(handler ResponseHandler) error {
	return c.root.SetHandler(handler)
}

// SetAuthHandler sets the root group's default auth handler.
func (c *Client) SetAuthHandler(handler AuthHandler) error {
	return c.root.SetAuthHandler(handler)
}

// Method is the builder-mode symbolic resolver on the root group. See
// Group.Method.
func (c *Client) Method(name string) (RegisterFunc, error) {
	return c.root.Method(name)
}

// Lookup resolves a direct child of the root. See Group.Lookup.
func (c *Client) Lookup(name string) (Node, error) {
	return c.root.Lookup(name)
}

// Child resolves a direct child of the root to a nested group.
func (c *Client) Child(name string) (*Group, error) {
	return c.root.Child(name)
}

// Endpoint resolves a direct child of the root to an endpoint.
func (c *Client) Endpoint(name string) (*Endpoint, error) {
	return c.root.Endpoint(name)
}

// GET registers an endpoint bound to the GET method on the root group.
func (c *Client) GET(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.GET(name, path, opts...)
}

// POST registers an endpoint bound to the POST method on the root group.
func (c *Client) POST(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.POST(name, path, opts...)
}

// PUT registers an endpoint bound to the PUT method on the root group.
func (c *Client) PUT(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.PUT(name, path, opts...)
}

// PATCH registers an endpoint bound to the PATCH method on the root group.
func (c *Client) PATCH(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.PATCH(name, path, opts...)
}

// DELETE registers an endpoint bound to the DELETE method on the root group.
func (c *Client) DELETE(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.DELETE(name, path, opts...)
}

// OPTIONS registers an endpoint bound to the OPTIONS method on the root group.
func (c *Client) OPTIONS(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.OPTIONS(name, path, opts...)
}

// HEAD registers an endpoint bound to the HEAD method on the root group.
func (c *Client) HEAD(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.HEAD(name, path, opts...)
}

// CONNECT registers an endpoint bound to the CONNECT method on the root group.
func (c *Client) CONNECT(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.CONNECT(name, path, opts...)
}

// TRACE registers an endpoint bound to the TRACE method on the root group.
func (c *Client) TRACE(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return c.root.TRACE(name, path, opts...)
}

// EndpointAt traverses the started tree along names, where every entry
// but the last must resolve to a group and the last to an endpoint.
func (c *Client) EndpointAt(names ...string) (*Endpoint, error) {
	if len(names) == 0 {
		return nil, &UsageError{Message: "endpoint path must not be empty"}
	}
	g := &c.root
	for _, name := range names[:len(names)-1] {
		child, err := g.Child(name)
		if err != nil {
			return nil, err
		}
		g = child
	}
	return g.Endpoint(names[len(names)-1])
}

// Call resolves a dotted endpoint path ("todos.one") against the started
// tree and dispatches it with its default method. Resolution failures
// carry the usual mode and lookup errors; the dispatch itself behaves
// exactly like Endpoint.Call.
func (c *Client) Call(ctx context.Context, path string, params Params) (any, error) {
	ep, err := c.EndpointAt(strings.Split(path, ".")...)
	if err != nil {
		return nil, err
	}
	return ep.Call(ctx, params)
}

// Endpoints lists every route of the started tree, sorted by full path
// and then by dotted name. Listing an unstarted tree fails with
// *UsageError wrapping ErrNotStarted.
func (c *Client) Endpoints() ([]EndpointInfo, error) {
	if !c.started.Load() {
		return nil, &UsageError{Message: "cannot list endpoints before the client is started", Err: ErrNotStarted}
	}
	var infos []EndpointInfo
	collectEndpoints(&c.root, "", &infos)
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].FullPath != infos[j].FullPath {
			return infos[i].FullPath < infos[j].FullPath
		}
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// collectEndpoints walks the subtree accumulating route descriptions,
// prefixing child names with the dotted path so far.
func collectEndpoints(g *Group, dotted string, out *[]EndpointInfo) {
	for name, child := range g.children {
		full := name
		if dotted != "" {
			full = dotted + "." + name
		}
		switch node := child.(type) {
		case *Endpoint:
			*out = append(*out, EndpointInfo{
				Name:     full,
				Path:     node.Path(),
				FullPath: node.FullPath(),
				Methods:  node.Methods(),
				Required: node.Required(),
			})
		case *Group:
			collectEndpoints(node, full, out)
		}
	}
}
