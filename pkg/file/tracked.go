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

// Package file tracks a single template file: its cached filesystem state,
// its placeholders, its transformed contents and its destination ("mirror").
package file

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/stample/pkg/placeholder"
	"github.com/walteh/stample/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Kind is the filesystem kind observed for a path.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// ContentState qualifies the string returned by GetContents.
type ContentState int

const (
	// ContentsAbsent means the path is missing or could not be read
	ContentsAbsent ContentState = iota
	// ContentsNotAFile means the path exists but is not a regular file
	ContentsNotAFile
	// ContentsRead means the returned string holds the file contents
	ContentsRead
)

func (s ContentState) String() string {
	switch s {
	case ContentsRead:
		return "read"
	case ContentsNotAFile:
		return "not_a_file"
	default:
		return "absent"
	}
}

// snapshot is the cached state of a loaded path. A nil snapshot means unloaded.
type snapshot struct {
	kind     Kind
	mode     fs.FileMode
	contents *string
}

// 📄 TrackedFile is a source path bound to a destination path with a lazily
// loaded view of its filesystem state.
//
// A TrackedFile is not safe for concurrent use. Operations over many files
// parallelize across files, never within one.
type TrackedFile struct {
	path   string
	mirror string

	loaded       *snapshot
	transformed  *string
	replacements int
}

// 🏭 New creates an unloaded TrackedFile. The mirror may be empty.
func New(path, mirror string) *TrackedFile {
	return &TrackedFile{path: path, mirror: mirror}
}

func (f *TrackedFile) Path() string     { return f.path }
func (f *TrackedFile) Mirror() string   { return f.mirror }
func (f *TrackedFile) Basename() string { return filepath.Base(f.path) }
func (f *TrackedFile) Dirname() string  { return filepath.Dir(f.path) }
func (f *TrackedFile) IsAbs() bool      { return filepath.IsAbs(f.path) }

// SetMirror sets the destination path. It does not touch the filesystem.
func (f *TrackedFile) SetMirror(mirror string) {
	f.mirror = mirror
}

// SetPath repoints the file and reloads it if the path changed.
func (f *TrackedFile) SetPath(ctx context.Context, path string) {
	if f.path == path {
		return
	}
	f.path = path
	f.Reload(ctx)
}

// IsPreloaded reports whether filesystem state is cached.
func (f *TrackedFile) IsPreloaded() bool {
	return f.loaded != nil
}

// Kind returns the cached kind, or KindUnknown when unloaded.
func (f *TrackedFile) Kind() Kind {
	if f.loaded == nil {
		return KindUnknown
	}
	return f.loaded.kind
}

// Contents returns the cached contents without touching the filesystem.
func (f *TrackedFile) Contents() (string, bool) {
	if f.loaded == nil || f.loaded.contents == nil {
		return "", false
	}
	return *f.loaded.contents, true
}

// Transformed returns the contents computed by TransformContentWithPlaceholders.
func (f *TrackedFile) Transformed() (string, bool) {
	if f.transformed == nil {
		return "", false
	}
	return *f.transformed, true
}

// Replacements returns how many tokens the last transformation replaced.
func (f *TrackedFile) Replacements() int {
	return f.replacements
}

// 🔍 Exists reports whether the path exists. A loaded file answers from cache
// unless force is set.
func (f *TrackedFile) Exists(ctx context.Context, force bool) bool {
	if f.loaded != nil && !force {
		return true
	}
	_, ok := stat(ctx, f.path)
	return ok
}

// IsFile reports whether the path is a regular file. known is false when the
// path does not exist or cannot be inspected.
func (f *TrackedFile) IsFile(ctx context.Context, force bool) (is bool, known bool) {
	kind, known := f.probeKind(ctx, force)
	return known && kind == KindFile, known
}

// IsDirectory reports whether the path is a directory. known is false when
// the path does not exist or cannot be inspected.
func (f *TrackedFile) IsDirectory(ctx context.Context, force bool) (is bool, known bool) {
	kind, known := f.probeKind(ctx, force)
	return known && kind == KindDirectory, known
}

func (f *TrackedFile) probeKind(ctx context.Context, force bool) (Kind, bool) {
	if f.loaded != nil && !force {
		return f.loaded.kind, true
	}
	info, ok := stat(ctx, f.path)
	if !ok {
		return KindUnknown, false
	}
	return kindOf(info), true
}

// GetContents returns the text contents of the path. A loaded file answers
// from cache unless force is set; a forced read refreshes the cache.
func (f *TrackedFile) GetContents(ctx context.Context, force bool) (string, ContentState) {
	isFile, known := f.IsFile(ctx, force)
	if !known {
		return "", ContentsAbsent
	}
	if !isFile {
		return "", ContentsNotAFile
	}

	if !force {
		if c, ok := f.Contents(); ok {
			return c, ContentsRead
		}
	}

	data, ok := readFile(ctx, f.path)
	if !ok {
		return "", ContentsAbsent
	}
	c := string(data)
	if f.loaded != nil {
		f.loaded.contents = &c
	}
	return c, ContentsRead
}

// 📥 Preload caches the kind, mode and (for regular files) contents of the
// path. It is a no-op when already loaded unless force is set. A path that
// cannot be inspected leaves the file unloaded.
func (f *TrackedFile) Preload(ctx context.Context, force bool) {
	if f.loaded != nil && !force {
		return
	}

	info, ok := stat(ctx, f.path)
	if !ok {
		f.Flush()
		return
	}

	snap := &snapshot{
		kind: kindOf(info),
		mode: info.Mode().Perm(),
	}
	if snap.kind == KindFile {
		if data, ok := readFile(ctx, f.path); ok {
			c := string(data)
			snap.contents = &c
		}
	}
	f.loaded = snap
}

// Reload drops the cache and loads it again.
func (f *TrackedFile) Reload(ctx context.Context) {
	f.Flush()
	f.Preload(ctx, false)
}

// Flush drops the cached filesystem state. Transformed contents are kept.
func (f *TrackedFile) Flush() {
	f.loaded = nil
}

// 🔎 ExtractPlaceholders loads the file if needed and returns the distinct
// placeholders found in its contents. ok is false when the file has no
// readable or non-empty contents.
func (f *TrackedFile) ExtractPlaceholders(ctx context.Context) (found []placeholder.Placeholder, ok bool) {
	if f.loaded == nil {
		f.Preload(ctx, false)
	}
	c, ok := f.Contents()
	if !ok || c == "" {
		return nil, false
	}
	return placeholder.Extract(c), true
}

// 🔄 TransformContentWithPlaceholders substitutes the given placeholders into
// the file contents and keeps the result for Copy.
//
// Empty files transform to the empty string. A file without readable contents
// returns ErrNoContents; unresolved placeholders return text.ErrIncomplete.
// On error the previous transformed contents are left untouched.
func (f *TrackedFile) TransformContentWithPlaceholders(ctx context.Context, placeholders []placeholder.Placeholder) (string, error) {
	if _, ok := f.Contents(); !ok {
		f.Preload(ctx, true)
	}

	c, ok := f.Contents()
	if !ok {
		return "", errors.Errorf("transforming %s: %w", f.path, ErrNoContents)
	}

	result, err := text.Transform(c, placeholders)
	if err != nil {
		return "", errors.Errorf("transforming %s: %w", f.path, err)
	}

	f.transformed = &result.Content
	f.replacements = result.ReplacementCount

	zerolog.Ctx(ctx).Debug().
		Str("path", f.path).
		Int("replacements", result.ReplacementCount).
		Msg("transformed file contents")

	return result.Content, nil
}
