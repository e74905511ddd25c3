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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/stample/pkg/args"
	"github.com/walteh/stample/pkg/config"
	"github.com/walteh/stample/pkg/log"
	"github.com/walteh/stample/pkg/operation"
	"github.com/walteh/stample/pkg/prompt"
	"gitlab.com/tozd/go/errors"
)

// ErrUsage is returned when source, destination or globs are missing.
var ErrUsage = errors.Base("missing source, destination or glob")

const usage = `
USAGE
    stample SOURCE DEST GLOB1 [GLOB2 ...] [-<placeholder-name>=<placeholder-value> ...] [OPTIONS]

OPTIONS
    --config PATH       read source, destination, globs and placeholders from
                        a recipe file (.yaml, .yml, .hcl, .json)
    --no-interaction    never prompt, fail if a placeholder has no value
    --exclude-hidden    skip dot files and dot directories
    --debug             enable debug logging
    --help              show this help
    --version           show version information

EXAMPLES
    To recursively copy all template source files from
    "templates/webdev" directory to "src" directory:

        stample templates/webdev src '**/*.html' '**/*.ts'

    If there are placeholders (e.g. %title%) in any file
    stample will prompt for them and replace them before
    the copy unless they are provided in the command in
    which case only unspecified placeholders will be prompted.
    No user interaction will be required if all placeholders
    are supplied:

        stample templates/webdev src '**/*.html' -title="My Page"
`

// newRootCommand creates the stample command. Flag parsing is left to the
// args package because placeholder flags are free form.
func newRootCommand(stdin io.ReadCloser, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "stample SOURCE DEST GLOB1 [GLOB2 ...] [-NAME=VALUE ...]",
		Short:              "Copy template files, filling in their %placeholders%",
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, raw []string) error {
			return run(cmd, raw, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

func run(cmd *cobra.Command, raw []string, stdin io.ReadCloser, stdout, stderr io.Writer) error {
	parsed, err := args.Parse(raw)
	if err != nil {
		io.WriteString(stderr, usage)
		return err
	}

	if parsed.Options.Help {
		io.WriteString(stdout, usage)
		return nil
	}
	if parsed.Options.Version {
		fmt.Fprint(stdout, FormatVersion())
		return nil
	}

	logger := setupLogging(parsed.Options.Debug, stderr)
	ctx := logger.WithContext(cmd.Context())

	if parsed.Options.ConfigFile != "" {
		recipe, err := config.Load(ctx, parsed.Options.ConfigFile)
		if err != nil {
			return errors.Errorf("loading recipe: %w", err)
		}
		recipe.Apply(parsed)
		logger.Debug().Str("recipe", recipe.String()).Msg("applied recipe")
	}

	if parsed.Source == "" || parsed.Destination == "" || len(parsed.Globs) == 0 {
		io.WriteString(stderr, usage)
		return errors.WithStack(ErrUsage)
	}

	mirrorLevel := zerolog.WarnLevel
	if parsed.Options.Debug {
		mirrorLevel = zerolog.DebugLevel
	}
	ctx = log.NewContext(ctx, log.New(stdout, mirrorLevel))

	userLogger := log.NewUserLoggerTo(ctx, stderr)
	userLogger.LogStateChange(fmt.Sprintf("stampling %s into %s (%s)", parsed.Source, parsed.Destination, strings.Join(parsed.Globs, " ")))

	op := operation.NewStampleOperation(operation.Options{
		Source:            parsed.Source,
		Destination:       parsed.Destination,
		Globs:             parsed.Globs,
		Placeholders:      parsed.Placeholders,
		NoUserInteraction: parsed.Options.NoInteraction,
		ExcludeHidden:     parsed.Options.ExcludeHidden,
		Prompter:          &prompt.PromptUI{Stdin: stdin},
		Console:           log.FromContext(ctx),
	})

	runner := operation.NewRunner(&logger, true)
	if err := runner.Run(ctx, op); err != nil {
		return err
	}

	userLogger.LogValidation(true, fmt.Sprintf("stampled %d file(s) into %s", len(op.Files()), parsed.Destination), nil)
	return nil
}
