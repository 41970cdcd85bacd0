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
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

// compiledSchema compiles the embedded manifest schema once.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse embedded schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("manifest.schema.json", doc); err != nil {
		return nil, fmt.Errorf("register embedded schema: %w", err)
	}
	schema, err := compiler.Compile("manifest.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	return schema, nil
})

// decodeJSONValue reads a JSON document into the validator's canonical
// value shape.
func decodeJSONValue(r io.Reader) (any, error) {
	value, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("canonicalize manifest: %w", err)
	}
	return value, nil
}

// validate checks a decoded manifest document against the embedded
// schema.
func validate(raw map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return err
	}
	if err := schema.Validate(canonical); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	return nil
}
