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

	"github.com/rs/zerolog"
	"github.com/walteh/stample/pkg/file"
	"github.com/walteh/stample/pkg/glob"
	"github.com/walteh/stample/pkg/log"
	"github.com/walteh/stample/pkg/placeholder"
	"github.com/walteh/stample/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything one stample run needs
type Options struct {
	// Source is the template directory globs are evaluated in
	Source string
	// Destination is the directory mirrors are written under
	Destination string
	// Globs select the template files
	Globs []string
	// Placeholders are caller supplied values, matched by raw token
	Placeholders []placeholder.Placeholder
	// NoUserInteraction disables prompting for unresolved placeholders
	NoUserInteraction bool
	// ExcludeHidden skips dot files and dot directories when no Resolver is given
	ExcludeHidden bool
	// Concurrency bounds per-file work, DefaultConcurrency when zero
	Concurrency int

	// Resolver expands globs, a glob.Resolver when nil
	Resolver Resolver
	// Prompter asks for missing values, a prompt.PromptUI when nil
	Prompter prompt.Prompter
	// Console prints one line per copied file, nothing when nil
	Console *log.Logger
}

// 🖨️ Stample mirrors the files matched by the globs from source to
// destination, replacing every placeholder with its value.
//
// Caller supplied values resolve the matching placeholders found in the
// files. The remaining ones are asked for one at a time unless
// NoUserInteraction is set. If any placeholder is still unresolved no file is
// written.
func Stample(ctx context.Context, opts Options) ([]*file.TrackedFile, error) {
	logger := zerolog.Ctx(ctx)

	console := opts.Console
	if console == nil {
		console = log.Discard()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = &glob.Resolver{IncludeHidden: !opts.ExcludeHidden}
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = &prompt.PromptUI{}
	}

	files, err := Init(ctx, resolver, opts.Source, opts.Destination, opts.Globs)
	if err != nil {
		return nil, errors.Errorf("initializing: %w", err)
	}
	if len(files) == 0 {
		console.Warningf("no files matched %v in %s", opts.Globs, opts.Source)
	}

	set, err := ExtractAllPlaceholders(ctx, files, opts.Concurrency)
	if err != nil {
		return files, errors.Errorf("extracting placeholders: %w", err)
	}

	if len(files) > 0 && len(set) == 0 {
		console.Infof("no placeholders found, files are copied as they are")
	}

	set = placeholder.Reconcile(set, opts.Placeholders)
	logger.Debug().
		Strs("placeholders", placeholder.Names(set)).
		Int("unresolved", len(placeholder.Unresolved(set))).
		Msg("reconciled placeholders")

	set, err = ResolvePlaceholders(ctx, set, prompter, opts.NoUserInteraction)
	if err != nil {
		return files, errors.Errorf("resolving placeholders: %w", err)
	}

	if err := TransformAllFiles(ctx, files, set, opts.Concurrency); err != nil {
		return files, errors.Errorf("transforming files: %w", err)
	}

	console.StartRun(ctx, log.RunOperation{
		Source:      opts.Source,
		Destination: opts.Destination,
		Globs:       opts.Globs,
	})

	results, err := CopyAllFiles(ctx, files, opts.Concurrency)
	for _, r := range results {
		logCopyResult(ctx, console, opts.Source, r)
	}
	count := console.EndRun(ctx)
	if err != nil {
		return files, errors.Errorf("copying files: %w", err)
	}

	console.Successf("stampled %d file(s) into %s", count, opts.Destination)
	return files, nil
}

func logCopyResult(ctx context.Context, console *log.Logger, source string, r CopyResult) {
	display := r.File.Path()
	if abs, err := filepath.Abs(source); err == nil {
		if rel, err := filepath.Rel(abs, r.File.Path()); err == nil {
			display = rel
		}
	}

	op := log.FileOperation{
		Path:         display,
		Destination:  r.File.Mirror(),
		Replacements: r.File.Replacements(),
	}
	switch {
	case r.Err != nil:
		op.Status = "FAILED"
		op.IsFailed = true
	case r.Overwrote:
		op.Status = "OVERWRITTEN"
		op.IsOverwritten = true
	default:
		op.Status = "NEW"
		op.IsNew = true
	}
	console.LogFileOperation(ctx, op)
	if r.Err != nil {
		console.Errorf("%s: %v", display, r.Err)
	}
}

// 🖨️ StampleOperation runs Stample as an Operation
type StampleOperation struct {
	opts  Options
	files []*file.TrackedFile
}

var _ Operation = (*StampleOperation)(nil)

// 🏭 NewStampleOperation creates a new stample operation
func NewStampleOperation(opts Options) *StampleOperation {
	return &StampleOperation{opts: opts}
}

// 🏃 Execute runs the stample pipeline
func (op *StampleOperation) Execute(ctx context.Context) error {
	files, err := Stample(ctx, op.opts)
	op.files = files
	return err
}

// Files returns the files of the last execution.
func (op *StampleOperation) Files() []*file.TrackedFile {
	return op.files
}
