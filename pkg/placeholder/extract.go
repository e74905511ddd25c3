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

package placeholder

import (
	"regexp"
)

// MaxNameLength bounds the interior of a token.
const MaxNameLength = 20

// The interior of a token accepts:
//
//	0x09        horizontal tab
//	0x20-0x24   space ! " # $
//	0x26-0x7F   everything else in ASCII except '%'
//
// Rejected: '\n', '\r', 0x00-0x08, 0x0B-0x0C, 0x0E-0x1F and anything above
// 0x7F. Non-ASCII runes never match because the class stops at 0x7F.
const interiorClass = `[\t\x20-\x24\x26-\x7F]`

var (
	tokenRegex      = regexp.MustCompile(`%(` + interiorClass + `{1,20})%`)
	exactTokenRegex = regexp.MustCompile(`^%` + interiorClass + `{1,20}%$`)
)

// 🔍 Extract returns the distinct placeholders found in content, in order of
// first occurrence. None of them carry a value.
func Extract(content string) []Placeholder {
	found := []Placeholder{}
	seen := map[string]struct{}{}
	for _, raw := range tokenRegex.FindAllString(content, -1) {
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		found = append(found, New(raw))
	}
	return found
}

// IsValidToken reports whether raw is a single, complete placeholder token.
func IsValidToken(raw string) bool {
	return exactTokenRegex.MatchString(raw)
}
