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
	"gitlab.com/tozd/go/errors"
)

// ErrNoContents is returned when a transformation is requested on a path that
// has no readable text contents (missing, unreadable or a directory).
var ErrNoContents = errors.Base("file has no readable contents")

// PreconditionKind tells which precondition of Copy was not met.
type PreconditionKind int

const (
	MissingMirror PreconditionKind = iota + 1
	MissingTransformed
)

func (k PreconditionKind) String() string {
	switch k {
	case MissingMirror:
		return "missing_mirror"
	case MissingTransformed:
		return "missing_transformed"
	default:
		return "unknown"
	}
}

// 🚧 PreconditionError is returned by Copy when the file is not ready to be written
type PreconditionError struct {
	Kind PreconditionKind
	Path string
}

var (
	// ErrMissingMirror matches any PreconditionError of kind MissingMirror with errors.Is
	ErrMissingMirror = &PreconditionError{Kind: MissingMirror}
	// ErrMissingTransformed matches any PreconditionError of kind MissingTransformed with errors.Is
	ErrMissingTransformed = &PreconditionError{Kind: MissingTransformed}
)

func (e *PreconditionError) Error() string {
	var msg string
	switch e.Kind {
	case MissingMirror:
		msg = "mirror wasn't set, can't guess the destination"
	case MissingTransformed:
		msg = "transformed wasn't set, please call TransformContentWithPlaceholders first"
	default:
		msg = "precondition failed"
	}
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

// Is compares kinds so callers never have to inspect messages.
func (e *PreconditionError) Is(target error) bool {
	t, ok := target.(*PreconditionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
