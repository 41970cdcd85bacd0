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

package manifest

import (
	"fmt"

	"dario.cat/mergo"

	"rivaas.dev/client"
)

// Build constructs an unstarted client tree from the manifest. Extra
// options apply after the manifest-derived ones, so callers can wire in
// transport, logging, auth, and observability before starting:
//
//	c, err := m.Build(client.WithAuth(auth.Bearer(token)))
//	if err != nil {
//	    return err
//	}
//	err = c.Start()
func (m *Manifest) Build(opts ...client.Option) (*client.Client, error) {
	base := make([]client.Option, 0, len(opts)+3)
	if m.Headers != nil {
		base = append(base, client.WithHeaders(m.Headers))
	}
	if m.UserAgent != "" {
		base = append(base, client.WithUserAgent(m.UserAgent))
	}
	if m.RequestID {
		base = append(base, client.WithRequestID())
	}
	base = append(base, opts...)

	c, err := client.New(m.BaseURL, base...)
	if err != nil {
		return nil, err
	}
	if err := m.populate(c, m.Groups, m.Endpoints); err != nil {
		return nil, err
	}
	return c, nil
}

// registry is the builder surface shared by the root client and nested
// groups.
type registry interface {
	Register(name, path string, methods []client.Method, opts ...client.EndpointOption) (*client.Endpoint, error)
	Group(name, prefix string, opts ...client.GroupOption) (*client.Group, error)
	Standard(param string, opts ...client.EndpointOption) error
}

// populate registers one level of the hierarchy and recurses into nested
// groups.
func (m *Manifest) populate(g registry, groups map[string]GroupSpec, endpoints map[string]EndpointSpec) error {
	for name, spec := range endpoints {
		if err := m.register(g, name, spec); err != nil {
			return err
		}
	}
	for name, spec := range groups {
		var groupOpts []client.GroupOption
		if spec.Headers != nil {
			groupOpts = append(groupOpts, client.WithGroupHeaders(spec.Headers))
		}
		child, err := g.Group(name, spec.Prefix, groupOpts...)
		if err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		if spec.Standard != "" {
			if err := child.Standard(spec.Standard); err != nil {
				return fmt.Errorf("group %q: %w", name, err)
			}
		}
		if err := m.populate(child, spec.Groups, spec.Endpoints); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
	}
	return nil
}

// register merges the manifest defaults into one endpoint spec and
// registers it. spec is a copy, so the merge never leaks back into the
// manifest.
func (m *Manifest) register(g registry, name string, spec EndpointSpec) error {
	if err := mergo.Merge(&spec, m.Defaults); err != nil {
		return fmt.Errorf("endpoint %q defaults: %w", name, err)
	}

	methods := make([]client.Method, 0, len(spec.Methods))
	for _, spelling := range spec.Methods {
		method, err := client.ParseMethod(spelling)
		if err != nil {
			return fmt.Errorf("endpoint %q: %w", name, err)
		}
		methods = append(methods, method)
	}
	if len(methods) == 0 {
		methods = []client.Method{client.GET}
	}

	var opts []client.EndpointOption
	if len(spec.Required) > 0 {
		opts = append(opts, client.WithRequired(spec.Required...))
	}
	if spec.Headers != nil {
		opts = append(opts, client.WithEndpointHeaders(spec.Headers))
	}
	if _, err := g.Register(name, spec.Path, methods, opts...); err != nil {
		return fmt.Errorf("endpoint %q: %w", name, err)
	}
	return nil
}
