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

// Node is a resolved member of a started tree: either a *Group or an
// *Endpoint. Lookup returns it; Child and Endpoint narrow it.
type Node interface {
	// Name returns the symbol the node was registered under.
	Name() string
}

// Group is a namespace unit of the client tree: the root client or a
// nested route group. It holds child groups and endpoints plus the
// defaults they inherit: a base-URL fragment, headers, an auth handler,
// and a response handler.
//
// A Group is dual-mode. Before Start it exposes the builder surface
// (Register, Group, Standard, AddHeader, SetHandler, SetAuthHandler, the
// per-method shortcuts, and the dynamic Method lookup). After Start the
// tree is frozen and only symbolic resolution (Lookup, Child, Endpoint)
// and dispatch remain valid. Builder calls on a started tree fail with
// *UsageError wrapping ErrStarted; runtime calls on an unstarted tree
// fail with *UsageError wrapping ErrNotStarted.
//
// Groups nest arbitrarily deep and contribute their prefix to the
// effective base URL of every endpoint beneath them:
//
//	c := client.MustNew("https://example.com/api")
//	v1, _ := c.Group("v1", "/v1")
//	todos, _ := v1.Group("todos", "/todos")
//	todos.GET("one", "/:id") // dispatches against https://example.com/api/v1/todos/:id
type Group struct {
	parent *Group
	owner  *Client // set only on the root's embedded Group
	name   string
	prefix string

	headers  map[string]string
	auth     AuthHandler
	handler  ResponseHandler
	children map[string]Node
}

// RegisterFunc is a registration shortcut bound to a single HTTP method,
// as returned by the dynamic Method lookup.
type RegisterFunc func(name, path string, opts ...EndpointOption) (*Endpoint, error)

// root walks parent links to the tree's root and returns the owning
// Client. Nil only for a zero-value Group detached from any client.
func (g *Group) root() *Client {
	for g.parent != nil {
		g = g.parent
	}
	return g.owner
}

// buildable guards the builder surface against a started tree.
func (g *Group) buildable() error {
	if g.Started() {
		return &UsageError{Message: "cannot modify a started client", Err: ErrStarted}
	}
	return nil
}

// Name returns the symbol the group was registered under ("" at the root).
func (g *Group) Name() string { return g.name }

// Prefix returns the base-URL fragment this group contributes. At the
// root this is the constructor's base URL.
func (g *Group) Prefix() string { return g.prefix }

// Started reports whether the tree this group belongs to has been
// started. The flag lives solely at the root; every node observes the
// same value the instant Start returns.
func (g *Group) Started() bool {
	c := g.root()
	return c != nil && c.started.Load()
}

// Start freezes the whole tree. It may be called from any node; the root
// is located by walking parent links and its flag is flipped exactly once.
// There is no partially-started tree: starting is all-or-nothing and
// immediately visible everywhere. A second call is a no-op returning nil.
func (g *Group) Start() error {
	c := g.root()
	if c == nil {
		return &UsageError{Message: "group is not attached to a client"}
	}
	c.startOnce.Do(func() {
		c.started.Store(true)
		c.logger.Info("client started", "base_url", c.root.prefix, "endpoints", countEndpoints(&c.root))
	})
	return nil
}

// Register creates a child endpoint under this group, bound to a path
// template and one or more methods. The path gains a leading slash if
// missing. Methods are normalized to their canonical spelling; an
// unrecognized spelling fails with *NotImplementedError. Duplicate
// sibling names, empty names, and empty method lists fail with
// *UsageError, as does any registration once the tree is started.
func (g *Group) Register(name, path string, methods []Method, opts ...EndpointOption) (*Endpoint, error) {
	if err := g.buildable(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &UsageError{Message: "endpoint name must not be empty"}
	}
	if len(methods) == 0 {
		return nil, &UsageError{Message: fmt.Sprintf("endpoint %q must declare at least one method", name)}
	}
	if _, exists := g.children[name]; exists {
		return nil, &UsageError{Message: fmt.Sprintf("name %q is already registered on this group", name)}
	}
	canonical, err := NormalizeMethods(methods)
	if err != nil {
		return nil, err
	}

	path = normalizePath(path)
	ep := &Endpoint{
		parent:  g,
		name:    name,
		path:    path,
		tmpl:    parseTemplate(path),
		methods: canonical,
	}
	for _, opt := range opts {
		opt(ep)
	}
	g.children[name] = ep

	if c := g.root(); c != nil {
		c.logger.Debug("endpoint registered", "name", name, "path", path, "methods", canonical)
	}
	return ep, nil
}

// Group creates and returns a child group contributing prefix to the base
// URL of everything registered beneath it. Same started and duplicate
// guards as Register.
func (g *Group) Group(name, prefix string, opts ...GroupOption) (*Group, error) {
	if err := g.buildable(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &UsageError{Message: "group name must not be empty"}
	}
	if _, exists := g.children[name]; exists {
		return nil, &UsageError{Message: fmt.Sprintf("name %q is already registered on this group", name)}
	}

	child := &Group{
		parent:   g,
		name:     name,
		prefix:   prefix,
		children: make(map[string]Node),
	}
	for _, opt := range opts {
		opt(child)
	}
	g.children[name] = child

	if c := g.root(); c != nil {
		c.logger.Debug("group registered", "name", name, "prefix", prefix)
	}
	return child, nil
}

// Standard batch-registers the conventional CRUD routes on this group:
//
//	all      GET    /
//	create   POST   /
//
// and, when param is non-empty, with path "/:"+param:
//
//	get       GET    /:param
//	overwrite PUT    /:param
//	update    PATCH  /:param
//	delete    DELETE /:param
//
// The options apply to every generated route. The first failing
// registration aborts and returns its error.
func (g *Group) Standard(param string, opts ...EndpointOption) error {
	if _, err := g.Register("all", "/", []Method{GET}, opts...); err != nil {
		return err
	}
	if _, err := g.Register("create", "/", []Method{POST}, opts...); err != nil {
		return err
	}
	if param == "" {
		return nil
	}
	path := "/:" + param
	for _, route := range []struct {
		name   string
		method Method
	}{
		{"get", GET},
		{"overwrite", PUT},
		{"update", PATCH},
		{"delete", DELETE},
	} {
		if _, err := g.Register(route.name, path, []Method{route.method}, opts...); err != nil {
			return err
		}
	}
	return nil
}

// AddHeader merges a header into this group's default header map. An
// endpoint inherits the nearest ancestor map that is non-nil; maps are
// not merged across levels.
func (g *Group) AddHeader(name, value string) error {
	if err := g.buildable(); err != nil {
		return err
	}
	if g.headers == nil {
		g.headers = make(map[string]string)
	}
	g.headers[name] = value
	return nil
}

// SetHandler sets this group's default response handler, inherited by
// descendants without one of their own.
func (g *Group) SetHandler(handler ResponseHandler) error {
	if err := g.buildable(); err != nil {
		return err
	}
	g.handler = handler
	return nil
}

// SetAuthHandler sets this group's default auth handler, inherited by
// descendants without one of their own.
func (g *Group) SetAuthHandler(handler AuthHandler) error {
	if err := g.buildable(); err != nil {
		return err
	}
	g.auth = handler
	return nil
}

// Method is the builder-mode symbolic resolver: name must be a
// case-insensitive spelling of a canonical HTTP method, and the result is
// a registration shortcut bound to that method, equivalent to the typed
// GET/POST/... helpers:
//
//	register, _ := g.Method("get")
//	register("one", "/:id") // same as g.GET("one", "/:id")
//
// Any other name fails with *UsageError enumerating the valid method
// names. On a started tree Method fails with *UsageError wrapping
// ErrStarted, like every other builder operation.
func (g *Group) Method(name string) (RegisterFunc, error) {
	if err := g.buildable(); err != nil {
		return nil, err
	}
	method, err := ParseMethod(name)
	if err != nil {
		quoted := make([]string, len(canonicalMethods))
		for i, m := range canonicalMethods {
			quoted[i] = fmt.Sprintf("%q", string(m))
		}
		return nil, &UsageError{
			Message: fmt.Sprintf("endpoint registrations use the methods %s; %q is not one of them",
				strings.Join(quoted, ", "), name),
		}
	}
	return func(epName, path string, opts ...EndpointOption) (*Endpoint, error) {
		return g.Register(epName, path, []Method{method}, opts...)
	}, nil
}

// Lookup is the started-mode symbolic resolver: name must be a key in
// this group's children map, and the result is the registered *Group or
// *Endpoint. Unknown names fail with *NotImplementedError; looking up
// before Start fails with *UsageError wrapping ErrNotStarted.
//
// The children map is the sole source of truth once started: a child
// registered under a name like "group" or "start" resolves like any
// other symbol, since the builder surface is ordinary methods and cannot
// be shadowed.
func (g *Group) Lookup(name string) (Node, error) {
	if !g.Started() {
		return nil, &UsageError{
			Message: fmt.Sprintf("cannot look up %q before the client is started", name),
			Err:     ErrNotStarted,
		}
	}
	child, ok := g.children[name]
	if !ok {
		return nil, &NotImplementedError{Message: fmt.Sprintf("there is no endpoint or group named %q", name)}
	}
	return child, nil
}

// Child resolves name to a nested group, failing with
// *NotImplementedError when the name resolves to an endpoint instead.
func (g *Group) Child(name string) (*Group, error) {
	node, err := g.Lookup(name)
	if err != nil {
		return nil, err
	}
	child, ok := node.(*Group)
	if !ok {
		return nil, &NotImplementedError{Message: fmt.Sprintf("%q is an endpoint, not a group", name)}
	}
	return child, nil
}

// Endpoint resolves name to an endpoint, failing with
// *NotImplementedError when the name resolves to a nested group instead.
func (g *Group) Endpoint(name string) (*Endpoint, error) {
	node, err := g.Lookup(name)
	if err != nil {
		return nil, err
	}
	ep, ok := node.(*Endpoint)
	if !ok {
		return nil, &NotImplementedError{Message: fmt.Sprintf("%q is a group, not an endpoint", name)}
	}
	return ep, nil
}

// GET registers an endpoint bound to the GET method.
func (g *Group) GET(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{GET}, opts...)
}

// POST registers an endpoint bound to the POST method.
func (g *Group) POST(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{POST}, opts...)
}

// PUT registers an endpoint bound to the PUT method.
func (g *Group) PUT(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{PUT}, opts...)
}

// PATCH registers an endpoint bound to the PATCH method.
func (g *Group) PATCH(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{PATCH}, opts...)
}

// DELETE registers an endpoint bound to the DELETE method.
func (g *Group) DELETE(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{DELETE}, opts...)
}

// OPTIONS registers an endpoint bound to the OPTIONS method.
func (g *Group) OPTIONS(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{OPTIONS}, opts...)
}

// HEAD registers an endpoint bound to the HEAD method.
func (g *Group) HEAD(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{HEAD}, opts...)
}

// CONNECT registers an endpoint bound to the CONNECT method.
func (g *Group) CONNECT(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{CONNECT}, opts...)
}

// TRACE registers an endpoint bound to the TRACE method.
func (g *Group) TRACE(name, path string, opts ...EndpointOption) (*Endpoint, error) {
	return g.Register(name, path, []Method{TRACE}, opts...)
}

// countEndpoints walks the subtree and counts leaf endpoints.
func countEndpoints(g *Group) int {
	n := 0
	for _, child := range g.children {
		switch node := child.(type) {
		case *Endpoint:
			n++
		case *Group:
			n += countEndpoints(node)
		}
	}
	return n
}
