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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterNormalizesPath verifies "x" and "/x" register the same
// effective path.
func TestRegisterNormalizesPath(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	bare, err := c.Register("bare", "x", []Method{GET})
	require.NoError(t, err)
	slashed, err := c.Register("slashed", "/x", []Method{GET})
	require.NoError(t, err)

	assert.Equal(t, "/x", bare.Path())
	assert.Equal(t, "/x", slashed.Path())
}

// TestRegisterNormalizesMethods verifies case-insensitive method
// spellings canonicalize at registration.
func TestRegisterNormalizesMethods(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	ep, err := c.Register("multi", "/multi", []Method{"get", "Post", "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, []Method{GET, POST, DELETE}, ep.Methods())
}

// TestRegisterInvalidMethod verifies an unrecognized method spelling
// fails before the endpoint is created.
func TestRegisterInvalidMethod(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	_, err := c.Register("bad", "/bad", []Method{"FETCH"})

	var nie *NotImplementedError
	require.ErrorAs(t, err, &nie)
	assert.Contains(t, nie.Message, "FETCH")

	require.NoError(t, c.Start())
	_, err = c.Lookup("bad")
	assert.Error(t, err, "failed registration must not leave a child behind")
}

// TestRegisterGuards verifies the empty-name, empty-methods, and
// duplicate-sibling usage errors.
func TestRegisterGuards(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")

	_, err := c.Register("", "/x", []Method{GET})
	var usage *UsageError
	require.ErrorAs(t, err, &usage)

	_, err = c.Register("x", "/x", nil)
	require.ErrorAs(t, err, &usage)

	_, err = c.Register("x", "/x", []Method{GET})
	require.NoError(t, err)
	_, err = c.Register("x", "/other", []Method{POST})
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Message, `"x"`)

	// A group cannot reuse an endpoint's name either.
	_, err = c.Group("x", "/x")
	require.ErrorAs(t, err, &usage)
}

// TestGroupNesting verifies nested groups and their prefixes.
func TestGroupNesting(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com/api")
	v1, err := c.Group("v1", "/v1")
	require.NoError(t, err)
	todos, err := v1.Group("todos", "/todos")
	require.NoError(t, err)

	ep, err := todos.GET("one", "/:id")
	require.NoError(t, err)

	assert.Equal(t, "v1", v1.Name())
	assert.Equal(t, "/v1", v1.Prefix())
	assert.Equal(t, "http://example.com/api/v1/todos/:id", ep.FullPath())
}

// TestMethodDynamicLookup verifies the builder-mode symbolic resolver
// returns a working single-method registrar.
func TestMethodDynamicLookup(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	register, err := c.Method("get")
	require.NoError(t, err)

	ep, err := register("one", "/one")
	require.NoError(t, err)
	assert.Equal(t, []Method{GET}, ep.Methods())
}

// TestMethodDynamicLookupRejectsNonMethods verifies a non-method name
// fails with a usage error enumerating the canonical set.
func TestMethodDynamicLookupRejectsNonMethods(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	_, err := c.Method("fetch")

	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	for _, m := range Methods() {
		assert.Contains(t, usage.Message, string(m))
	}
	assert.Contains(t, usage.Message, `"fetch"`)
}

// TestStartedPropagation verifies start from a nested node freezes the
// whole tree at once.
func TestStartedPropagation(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	v1, err := c.Group("v1", "/v1")
	require.NoError(t, err)
	deep, err := v1.Group("deep", "/deep")
	require.NoError(t, err)

	assert.False(t, c.Started())
	assert.False(t, deep.Started())

	require.NoError(t, deep.Start())

	assert.True(t, c.Started())
	assert.True(t, v1.Started())
	assert.True(t, deep.Started())

	// No further structural mutation anywhere in the tree.
	for _, register := range []func() error{
		func() error { _, err := c.Register("late", "/late", []Method{GET}); return err },
		func() error { _, err := v1.Group("late", "/late"); return err },
		func() error { return deep.Standard("id") },
		func() error { return c.AddHeader("X-Late", "1") },
		func() error { return v1.SetHandler(CheckOK()) },
		func() error { return v1.SetAuthHandler(func(*http.Request) error { return nil }) },
		func() error { _, err := deep.Method("get"); return err },
	} {
		err := register()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStarted)
	}

	// Starting again is a no-op.
	require.NoError(t, c.Start())
}

// TestLookupModes verifies the dual-mode symbolic resolution contract.
func TestLookupModes(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	_, err := c.GET("one", "/one")
	require.NoError(t, err)
	_, err = c.Group("nested", "/nested")
	require.NoError(t, err)

	// Pre-start lookup is a usage error.
	_, err = c.Lookup("one")
	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, c.Start())

	node, err := c.Lookup("one")
	require.NoError(t, err)
	assert.Equal(t, "one", node.Name())

	_, err = c.Lookup("missing")
	var nie *NotImplementedError
	require.ErrorAs(t, err, &nie)
	assert.Contains(t, nie.Message, `"missing"`)

	// Child/Endpoint narrow the node kind.
	_, err = c.Child("nested")
	require.NoError(t, err)
	_, err = c.Endpoint("one")
	require.NoError(t, err)
	_, err = c.Child("one")
	require.ErrorAs(t, err, &nie)
	_, err = c.Endpoint("nested")
	require.ErrorAs(t, err, &nie)
}

// TestBuilderNamedChildrenResolve verifies that children registered under
// builder-operation names resolve through the children map after start.
func TestBuilderNamedChildrenResolve(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	_, err := c.GET("start", "/start")
	require.NoError(t, err)
	_, err = c.GET("register", "/register")
	require.NoError(t, err)
	_, err = c.Group("group", "/group")
	require.NoError(t, err)

	require.NoError(t, c.Start())

	ep, err := c.Endpoint("start")
	require.NoError(t, err)
	assert.Equal(t, "/start", ep.Path())

	_, err = c.Endpoint("register")
	require.NoError(t, err)
	_, err = c.Child("group")
	require.NoError(t, err)
}

// TestStandard verifies the batch CRUD registration with and without a
// path parameter.
func TestStandard(t *testing.T) {
	t.Parallel()

	t.Run("with param", func(t *testing.T) {
		t.Parallel()
		c := MustNew("http://example.com")
		todos, err := c.Group("todos", "/todos")
		require.NoError(t, err)
		require.NoError(t, todos.Standard("todo_id"))
		require.NoError(t, c.Start())

		expect := map[string]struct {
			path   string
			method Method
		}{
			"all":       {"/", GET},
			"create":    {"/", POST},
			"get":       {"/:todo_id", GET},
			"overwrite": {"/:todo_id", PUT},
			"update":    {"/:todo_id", PATCH},
			"delete":    {"/:todo_id", DELETE},
		}
		for name, want := range expect {
			ep, err := todos.Endpoint(name)
			require.NoError(t, err, "route %q", name)
			assert.Equal(t, want.path, ep.Path(), "route %q", name)
			assert.Equal(t, []Method{want.method}, ep.Methods(), "route %q", name)
		}
	})

	t.Run("without param", func(t *testing.T) {
		t.Parallel()
		c := MustNew("http://example.com")
		require.NoError(t, c.Standard(""))
		require.NoError(t, c.Start())

		_, err := c.Endpoint("all")
		require.NoError(t, err)
		_, err = c.Endpoint("create")
		require.NoError(t, err)
		_, err = c.Endpoint("get")
		assert.Error(t, err, "parameterized routes must be omitted")
	})
}

// TestStandardDuplicateAborts verifies the first failing registration
// aborts the batch.
func TestStandardDuplicateAborts(t *testing.T) {
	t.Parallel()

	c := MustNew("http://example.com")
	_, err := c.GET("all", "/taken")
	require.NoError(t, err)

	err = c.Standard("id")
	require.Error(t, err)
	var usage *UsageError
	assert.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Message, `"all"`)
}
