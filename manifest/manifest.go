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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
)

// Format identifies a manifest document encoding.
type Format string

// Supported manifest encodings.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// extensionFormats maps file extensions to formats for automatic
// detection in Load.
var extensionFormats = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// Manifest is a declarative description of a whole client tree.
type Manifest struct {
	// BaseURL seeds the root group's prefix. Required.
	BaseURL string `mapstructure:"base_url"`

	// UserAgent overrides the client's default user agent when non-empty.
	UserAgent string `mapstructure:"user_agent"`

	// RequestID enables per-dispatch X-Request-ID stamping.
	RequestID bool `mapstructure:"request_id"`

	// Headers is the root group's default header map.
	Headers map[string]string `mapstructure:"headers"`

	// Defaults fill in endpoint fields left empty by individual
	// endpoint entries, anywhere in the tree.
	Defaults EndpointSpec `mapstructure:"defaults"`

	Groups    map[string]GroupSpec    `mapstructure:"groups"`
	Endpoints map[string]EndpointSpec `mapstructure:"endpoints"`
}

// GroupSpec describes one route group.
type GroupSpec struct {
	Prefix  string            `mapstructure:"prefix"`
	Headers map[string]string `mapstructure:"headers"`

	// Standard, when non-empty, batch-registers the conventional CRUD
	// routes with this path-parameter name (see client.Group.Standard).
	Standard string `mapstructure:"standard"`

	Groups    map[string]GroupSpec    `mapstructure:"groups"`
	Endpoints map[string]EndpointSpec `mapstructure:"endpoints"`
}

// EndpointSpec describes one endpoint. An empty method list means GET
// (or the manifest defaults, when set).
type EndpointSpec struct {
	Path     string            `mapstructure:"path"`
	Methods  []string          `mapstructure:"methods"`
	Required []string          `mapstructure:"required"`
	Headers  map[string]string `mapstructure:"headers"`
}

// Load reads a manifest file, detecting the format from the extension
// (.yaml, .yml, .toml).
func Load(path string) (*Manifest, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes, schema-validates, and binds a manifest document.
func Parse(data []byte, format Format) (*Manifest, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml manifest: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse toml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var m Manifest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &m,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("bind manifest: %w", err)
	}
	return &m, nil
}

// detectFormat resolves the manifest format from the file extension.
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("cannot detect manifest format from extension %q; use Parse with an explicit format", ext)
}

// canonicalize round-trips a decoded document through JSON so the schema
// validator sees one uniform type shape regardless of the source
// encoding (TOML integers, YAML typed maps, and so on).
func canonicalize(raw map[string]any) (any, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize manifest: %w", err)
	}
	return decodeJSONValue(bytes.NewReader(encoded))
}
