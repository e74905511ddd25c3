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

package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	defaultFileMode fs.FileMode = 0o644
	defaultDirMode  fs.FileMode = 0o755
)

// DestinationExists reports whether something already exists at the mirror.
func (f *TrackedFile) DestinationExists(ctx context.Context) bool {
	if f.mirror == "" {
		return false
	}
	_, ok := stat(ctx, f.mirror)
	return ok
}

// DestinationDirExists reports whether the mirror's parent directory exists.
func (f *TrackedFile) DestinationDirExists(ctx context.Context) bool {
	if f.mirror == "" {
		return false
	}
	info, ok := stat(ctx, filepath.Dir(f.mirror))
	return ok && info.IsDir()
}

// EnsureMirrorDir creates the mirror's parent directories when missing.
func (f *TrackedFile) EnsureMirrorDir(ctx context.Context) error {
	if f.mirror == "" {
		return nil
	}
	if f.DestinationDirExists(ctx) {
		return nil
	}

	dir := filepath.Dir(f.mirror)
	if err := os.MkdirAll(dir, defaultDirMode); err != nil {
		return errors.Errorf("creating destination directory %s: %w", dir, err)
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("created destination directory")
	return nil
}

// 📦 Copy writes the transformed contents to the mirror, creating parent
// directories as needed. The source permission bits are kept.
func (f *TrackedFile) Copy(ctx context.Context) error {
	if f.mirror == "" {
		return &PreconditionError{Kind: MissingMirror, Path: f.path}
	}
	if f.transformed == nil {
		return &PreconditionError{Kind: MissingTransformed, Path: f.path}
	}

	if err := f.EnsureMirrorDir(ctx); err != nil {
		return err
	}

	mode := defaultFileMode
	if f.loaded != nil && f.loaded.mode != 0 {
		mode = f.loaded.mode
	}

	if err := os.WriteFile(f.mirror, []byte(*f.transformed), mode); err != nil {
		return errors.Errorf("writing %s: %w", f.mirror, err)
	}

	zerolog.Ctx(ctx).Debug().Str("from", f.path).Str("to", f.mirror).Msg("copied file")
	return nil
}
