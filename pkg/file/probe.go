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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// collapse is the only place where a failed filesystem probe turns into
// "absent". The failure is logged and never returned to the caller.
func collapse[T any](ctx context.Context, op, path string, v T, err error) (T, bool) {
	if err == nil {
		return v, true
	}

	event := zerolog.Ctx(ctx).Warn()
	if errors.Is(err, fs.ErrNotExist) {
		event = zerolog.Ctx(ctx).Debug()
	}
	event.Err(err).Str("op", op).Str("path", path).Msg("probe failed, treating as absent")

	var zero T
	return zero, false
}

func stat(ctx context.Context, path string) (fs.FileInfo, bool) {
	info, err := os.Stat(path)
	return collapse(ctx, "stat", path, info, err)
}

func readFile(ctx context.Context, path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	return collapse(ctx, "read", path, data, err)
}

func kindOf(info fs.FileInfo) Kind {
	switch {
	case info.Mode().IsRegular():
		return KindFile
	case info.IsDir():
		return KindDirectory
	default:
		return KindUnknown
	}
}
