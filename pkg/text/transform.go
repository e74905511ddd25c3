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

// Package text substitutes resolved placeholders into file content.
package text

import (
	"strings"

	"github.com/walteh/stample/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// ErrIncomplete is returned when a placeholder passed to Transform has no value.
var ErrIncomplete = errors.Base("placeholder resolution is incomplete")

// Result contains the outcome of a substitution
type Result struct {
	// Original is the content before substitution
	Original string

	// Content is the content after substitution
	Content string

	// ReplacementCount is the number of tokens replaced
	ReplacementCount int

	// WasModified indicates if anything was replaced
	WasModified bool
}

// 🔄 Transform replaces every occurrence of each placeholder's raw token with
// its value.
//
// Every placeholder must be resolved, whether or not it occurs in content;
// otherwise nothing is substituted and ErrIncomplete is returned.
//
// Content is scanned once from left to right. At each position the first
// placeholder, in slice order, whose raw token matches is replaced and the
// scan resumes after the token. Substituted values are never scanned again, so
// a value that contains another raw token is copied verbatim.
func Transform(content string, placeholders []placeholder.Placeholder) (*Result, error) {
	if missing := placeholder.Unresolved(placeholders); len(missing) > 0 {
		return nil, errors.Errorf("%w: missing values for %s", ErrIncomplete, strings.Join(placeholder.Names(missing), ", "))
	}

	type rule struct {
		from string
		to   string
	}
	rules := make([]rule, 0, len(placeholders))
	for _, p := range placeholders {
		// an empty token would match everywhere
		if p.Raw == "" {
			continue
		}
		v, _ := p.Value()
		rules = append(rules, rule{from: p.Raw, to: v})
	}

	result := &Result{Original: content}

	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); {
		matched := false
		for _, r := range rules {
			if strings.HasPrefix(content[i:], r.from) {
				b.WriteString(r.to)
				i += len(r.from)
				result.ReplacementCount++
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(content[i])
			i++
		}
	}

	result.Content = b.String()
	result.WasModified = result.ReplacementCount > 0
	return result, nil
}
