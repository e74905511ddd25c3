// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/stample/pkg/args"
	"github.com/walteh/stample/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for recipe parsers
type Parser interface {
	// 📝 Parse parses the recipe from bytes
	Parse(ctx context.Context, data []byte) (*Recipe, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Recipe is a saved stample invocation
type Recipe struct {
	Source        string            `json:"source" yaml:"source" hcl:"source,optional"`
	Destination   string            `json:"destination" yaml:"destination" hcl:"destination,optional"`
	Globs         []string          `json:"globs" yaml:"globs" hcl:"globs,optional"`
	Placeholders  map[string]string `json:"placeholders" yaml:"placeholders" hcl:"placeholders,optional"`
	NoInteraction bool              `json:"no_interaction,omitempty" yaml:"no_interaction,omitempty" hcl:"no_interaction,optional"`
	ExcludeHidden bool              `json:"exclude_hidden,omitempty" yaml:"exclude_hidden,omitempty" hcl:"exclude_hidden,optional"`

	location string
}

// 🎯 Load loads a recipe from a file. Relative source and destination paths
// are resolved against the directory of the file.
func Load(ctx context.Context, path string) (*Recipe, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading recipe")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading recipe file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	recipe, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing recipe: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving recipe path: %w", err)
	}
	recipe.location = abs
	recipe.resolvePaths(filepath.Dir(abs))

	if err := recipe.Validate(); err != nil {
		return nil, errors.Errorf("validating recipe: %w", err)
	}

	return recipe, nil
}

func (r *Recipe) resolvePaths(dir string) {
	if r.Source != "" && !filepath.IsAbs(r.Source) {
		r.Source = filepath.Join(dir, r.Source)
	}
	if r.Destination != "" && !filepath.IsAbs(r.Destination) {
		r.Destination = filepath.Join(dir, r.Destination)
	}
}

// Location returns the absolute path the recipe was loaded from.
func (r *Recipe) Location() string {
	return r.location
}

// 🔍 Validate checks that every placeholder name forms a valid token
func (r *Recipe) Validate() error {
	for name := range r.Placeholders {
		if strings.TrimSpace(name) == "" {
			return errors.Errorf("placeholders: empty name")
		}
		if !placeholder.IsValidToken(placeholder.Delimiter + name + placeholder.Delimiter) {
			return errors.Errorf("placeholders: %q is not a valid placeholder name", name)
		}
	}
	for _, g := range r.Globs {
		if g == "" {
			return errors.Errorf("globs: empty pattern")
		}
	}
	return nil
}

// PlaceholderList returns the recipe placeholders as resolved tokens, sorted
// by name.
func (r *Recipe) PlaceholderList() []placeholder.Placeholder {
	names := make([]string, 0, len(r.Placeholders))
	for name := range r.Placeholders {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]placeholder.Placeholder, 0, len(names))
	for _, name := range names {
		out = append(out, placeholder.FromName(name, r.Placeholders[name]))
	}
	return out
}

// 🔀 Apply fills what the command line left out. Command line values always
// win, including placeholders given on both sides.
func (r *Recipe) Apply(a *args.Arguments) {
	if a.Source == "" {
		a.Source = r.Source
	}
	if a.Destination == "" {
		a.Destination = r.Destination
	}
	if len(a.Globs) == 0 {
		a.Globs = append([]string{}, r.Globs...)
	}
	a.Placeholders = placeholder.Merge(a.Placeholders, r.PlaceholderList())
	a.Options.NoInteraction = a.Options.NoInteraction || r.NoInteraction
	a.Options.ExcludeHidden = a.Options.ExcludeHidden || r.ExcludeHidden
}

// 📝 String returns a string representation of the recipe
func (r *Recipe) String() string {
	return fmt.Sprintf("%s [%s] -> %s", r.Source, strings.Join(r.Globs, " "), r.Destination)
}
