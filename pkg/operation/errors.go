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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrNotTransformed is returned by CopyAllFiles when at least one file was
// never transformed.
var ErrNotTransformed = errors.Base("some files are not transformed, copying canceled")

// ErrOutsideSource is returned by Init when a glob matches a file that is not
// under the source directory; its mirror would land outside the destination.
var ErrOutsideSource = errors.Base("matched file is outside the source directory")

// 🚫 IncompleteResolutionError is returned by the transform gate when some
// placeholders still have no value. No file has been touched.
type IncompleteResolutionError struct {
	Missing []string
}

func (e *IncompleteResolutionError) Error() string {
	return fmt.Sprintf("some placeholders are missing a resolution value, transformation aborted (missing values: %s)", strings.Join(e.Missing, ", "))
}

// 🚫 UnsuppliedPlaceholderError is returned by the transform gate when a file
// contains a placeholder that is absent from the supplied set. No file has
// been touched.
type UnsuppliedPlaceholderError struct {
	Missing []string
}

func (e *UnsuppliedPlaceholderError) Error() string {
	return fmt.Sprintf("some file placeholders were not provided in the placeholders passed (missing values: %s)", strings.Join(e.Missing, ", "))
}
