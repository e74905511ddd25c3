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

// Package glob expands doublestar patterns into file paths.
package glob

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrEscapesRoot is returned for a relative pattern that climbs above the
// working directory.
var ErrEscapesRoot = errors.Base("glob pattern escapes the working directory")

var hiddenPatterns = []string{"**/.*", "**/.*/**"}

// 🔍 Resolver expands glob patterns relative to a working directory
type Resolver struct {
	// IncludeHidden keeps files whose path contains a dot-prefixed segment
	IncludeHidden bool
}

// 🏭 NewResolver returns a resolver that includes hidden files
func NewResolver() *Resolver {
	return &Resolver{IncludeHidden: true}
}

// Resolve returns the absolute paths of the regular files matched by any of
// the patterns. Relative patterns are evaluated against cwd. Results are
// de-duplicated and ordered by pattern, then lexically within a pattern.
func (r *Resolver) Resolve(ctx context.Context, patterns []string, cwd string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, errors.Errorf("resolving working directory %s: %w", cwd, err)
	}

	seen := make(map[string]struct{})
	results := make([]string, 0)

	for _, pattern := range patterns {
		base, pat := r.split(root, pattern)
		if pat == ".." || strings.HasPrefix(pat, "../") {
			return nil, errors.Errorf("%w: %q", ErrEscapesRoot, pattern)
		}

		if !doublestar.ValidatePattern(pat) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}

		matches, err := doublestar.Glob(os.DirFS(base), pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)

		for _, m := range matches {
			if !r.IncludeHidden && isHidden(m) {
				logger.Debug().Str("match", m).Msg("skipping hidden file")
				continue
			}
			abs := filepath.Join(base, filepath.FromSlash(m))
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			results = append(results, abs)
		}

		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded glob pattern")
	}

	return results, nil
}

// split turns a pattern into a base directory and a pattern relative to it,
// as required by fs.FS.
func (r *Resolver) split(root, pattern string) (string, string) {
	slashed := filepath.ToSlash(pattern)
	if path.IsAbs(slashed) {
		base, pat := doublestar.SplitPattern(slashed)
		return filepath.FromSlash(base), pat
	}
	return root, path.Clean(slashed)
}

func isHidden(match string) bool {
	for _, p := range hiddenPatterns {
		if ok, _ := doublestar.Match(p, match); ok {
			return true
		}
	}
	return false
}
