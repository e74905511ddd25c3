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

// Package placeholder finds, merges and reconciles %NAME% tokens.
package placeholder

import (
	"fmt"
	"strings"
)

// Delimiter wraps every placeholder token.
const Delimiter = "%"

// 🏷️ Placeholder is one substitution token, e.g. %TITLE%
type Placeholder struct {
	// Raw is the token exactly as it appears in content, delimiters included
	Raw string

	value    string
	resolved bool
}

// 🏭 New creates an unresolved placeholder
func New(raw string) Placeholder {
	return Placeholder{Raw: raw}
}

// 🏭 NewResolved creates a placeholder that already carries a value
func NewResolved(raw, value string) Placeholder {
	return Placeholder{Raw: raw, value: value, resolved: true}
}

// 🏭 FromName builds the raw token for name and resolves it to value
func FromName(name, value string) Placeholder {
	return NewResolved(Delimiter+name+Delimiter, value)
}

// Name returns Raw without its delimiters and surrounding whitespace.
func (p Placeholder) Name() string {
	name := strings.TrimPrefix(p.Raw, Delimiter)
	name = strings.TrimSuffix(name, Delimiter)
	return strings.TrimSpace(name)
}

// Value returns the resolved value, ok is false while unresolved.
func (p Placeholder) Value() (string, bool) {
	return p.value, p.resolved
}

// IsResolved reports whether a value was assigned.
func (p Placeholder) IsResolved() bool {
	return p.resolved
}

// WithValue returns a copy of p resolved to value.
func (p Placeholder) WithValue(value string) Placeholder {
	p.value = value
	p.resolved = true
	return p
}

func (p Placeholder) String() string {
	if !p.resolved {
		return p.Raw
	}
	return fmt.Sprintf("%s=%q", p.Raw, p.value)
}
