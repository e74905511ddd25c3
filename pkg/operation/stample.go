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

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/stample/pkg/file"
	"github.com/walteh/stample/pkg/placeholder"
	"github.com/walteh/stample/pkg/prompt"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds per-file work when Options.Concurrency is unset.
const DefaultConcurrency = 8

// 🔍 Resolver expands glob patterns into absolute file paths
type Resolver interface {
	Resolve(ctx context.Context, patterns []string, cwd string) ([]string, error)
}

// CopyResult is the outcome of copying one file.
type CopyResult struct {
	File *file.TrackedFile
	// Overwrote is true when the mirror existed before the copy
	Overwrote bool
	Err       error
}

// 🏗️ Init resolves the globs against source and pairs every match with its
// mirror under destination. Nothing is read or written.
func Init(ctx context.Context, resolver Resolver, source, destination string, globs []string) ([]*file.TrackedFile, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Errorf("resolving source %s: %w", source, err)
	}
	absDestination, err := filepath.Abs(destination)
	if err != nil {
		return nil, errors.Errorf("resolving destination %s: %w", destination, err)
	}

	matches, err := resolver.Resolve(ctx, globs, absSource)
	if err != nil {
		return nil, errors.Errorf("resolving globs: %w", err)
	}

	files := make([]*file.TrackedFile, 0, len(matches))
	for _, match := range matches {
		rel, err := filepath.Rel(absSource, match)
		if err != nil {
			return nil, errors.Errorf("relating %s to source: %w", match, err)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, errors.Errorf("%w: %s", ErrOutsideSource, match)
		}
		files = append(files, file.New(match, filepath.Join(absDestination, rel)))
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", absSource).
		Str("destination", absDestination).
		Int("files", len(files)).
		Msg("initialized files")

	return files, nil
}

// 🔎 ExtractAllPlaceholders returns the distinct placeholders of all files, in
// file order. Files without readable contents are skipped.
func ExtractAllPlaceholders(ctx context.Context, files []*file.TrackedFile, limit int) ([]placeholder.Placeholder, error) {
	perFile, err := extractPerFile(ctx, files, limit)
	if err != nil {
		return nil, err
	}

	all := make([]placeholder.Placeholder, 0)
	for _, found := range perFile {
		all = append(all, found...)
	}
	return placeholder.Distinct(all), nil
}

func extractPerFile(ctx context.Context, files []*file.TrackedFile, limit int) ([][]placeholder.Placeholder, error) {
	results := make([][]placeholder.Placeholder, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeLimit(limit))

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("extracting placeholders: %w", err)
			}
			if found, ok := f.ExtractPlaceholders(gctx); ok {
				results[i] = found
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// 🙋 ResolvePlaceholders asks the prompter for every unresolved placeholder,
// unless noUserInteraction is set. The set is returned unchanged when nothing
// needs asking.
func ResolvePlaceholders(ctx context.Context, set []placeholder.Placeholder, p prompt.Prompter, noUserInteraction bool) ([]placeholder.Placeholder, error) {
	if noUserInteraction || len(placeholder.Unresolved(set)) == 0 {
		return set, nil
	}
	if p == nil {
		return nil, errors.New("no prompter available for unresolved placeholders")
	}
	return prompt.AskAll(ctx, p, set)
}

// 🔄 TransformAllFiles checks that set is complete and covers every file, then
// transforms each file. When a check fails no file is transformed.
func TransformAllFiles(ctx context.Context, files []*file.TrackedFile, set []placeholder.Placeholder, limit int) error {
	if len(files) == 0 {
		return nil
	}

	if missing := placeholder.Unresolved(set); len(missing) > 0 {
		return &IncompleteResolutionError{Missing: placeholder.Names(missing)}
	}

	perFile, err := extractPerFile(ctx, files, limit)
	if err != nil {
		return err
	}
	unsupplied := make([]placeholder.Placeholder, 0)
	for _, found := range perFile {
		unsupplied = append(unsupplied, placeholder.MissingFrom(found, set)...)
	}
	if unsupplied = placeholder.Distinct(unsupplied); len(unsupplied) > 0 {
		return &UnsuppliedPlaceholderError{Missing: placeholder.Names(unsupplied)}
	}

	logger := zerolog.Ctx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeLimit(limit))

	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("transforming files: %w", err)
			}
			_, err := f.TransformContentWithPlaceholders(gctx, set)
			if errors.Is(err, file.ErrNoContents) {
				logger.Warn().Str("path", f.Path()).Msg("file has no readable contents, leaving it untransformed")
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

// 📦 CopyAllFiles copies every file to its mirror. Every file is attempted;
// mirrors already written stay in place when another file fails.
//
// If any file was never transformed the batch fails with ErrNotTransformed.
// Otherwise the first error, in file order, is returned as is.
func CopyAllFiles(ctx context.Context, files []*file.TrackedFile, limit int) ([]CopyResult, error) {
	results := make([]CopyResult, len(files))

	var g errgroup.Group
	g.SetLimit(normalizeLimit(limit))

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i].File = f
			if err := ctx.Err(); err != nil {
				results[i].Err = errors.Errorf("copying files: %w", err)
				return nil
			}
			results[i].Overwrote = f.DestinationExists(ctx)
			results[i].Err = f.Copy(ctx)
			return nil
		})
	}
	_ = g.Wait()

	var first error
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if errors.Is(r.Err, file.ErrMissingTransformed) {
			return results, errors.WithStack(ErrNotTransformed)
		}
		if first == nil {
			first = r.Err
		}
	}
	return results, first
}

// FindByBasename returns the first file whose base name is name.
func FindByBasename(files []*file.TrackedFile, name string) (*file.TrackedFile, bool) {
	for _, f := range files {
		if f.Basename() == name {
			return f, true
		}
	}
	return nil, false
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultConcurrency
	}
	return limit
}
