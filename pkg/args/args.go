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

// Package args tokenizes the stample command line:
//
//	stample SOURCE DEST GLOB1 [GLOB2 ...] [-NAME[=VALUE] ...] [--OPTION ...]
//
// Single dash tokens name placeholders. Double dash tokens are tool options
// and may appear anywhere.
package args

import (
	"fmt"
	"strings"

	"github.com/walteh/stample/pkg/placeholder"
)

const (
	OptionConfig        = "config"
	OptionDebug         = "debug"
	OptionNoInteraction = "no-interaction"
	OptionExcludeHidden = "exclude-hidden"
	OptionHelp          = "help"
	OptionVersion       = "version"
)

// ⚙️ Options are the tool options given with a double dash
type Options struct {
	ConfigFile    string
	Debug         bool
	NoInteraction bool
	ExcludeHidden bool
	Help          bool
	Version       bool
}

// 📋 Arguments is the tokenized command line
type Arguments struct {
	Source       string
	Destination  string
	Globs        []string
	Placeholders []placeholder.Placeholder
	Options      Options
}

// ❌ ArgumentParsingError reports a token that could not be understood
type ArgumentParsingError struct {
	Token  string
	Reason string
}

func (e *ArgumentParsingError) Error() string {
	return fmt.Sprintf("problem processing the arguments: %s: %s", e.Token, e.Reason)
}

// 🔍 Parse tokenizes args, which must not include the program name.
//
// Missing source, destination or globs are not an error here; the caller
// decides once a recipe file has been merged in.
func Parse(args []string) (*Arguments, error) {
	out := &Arguments{
		Globs:        []string{},
		Placeholders: []placeholder.Placeholder{},
	}

	rest, err := parseOptions(args, &out.Options)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 && !isFlag(rest[0]) {
		out.Source, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 && !isFlag(rest[0]) {
		out.Destination, rest = rest[0], rest[1:]
	}

	for len(rest) > 0 {
		tok := rest[0]
		rest = rest[1:]

		if !isFlag(tok) {
			out.Globs = append(out.Globs, tok)
			continue
		}

		name, value, hasValue := strings.Cut(tok[1:], "=")
		if name == "" {
			return nil, &ArgumentParsingError{Token: tok, Reason: "empty placeholder name"}
		}
		if !hasValue {
			if len(rest) == 0 || isFlag(rest[0]) {
				return nil, &ArgumentParsingError{Token: tok, Reason: "missing placeholder value"}
			}
			value, rest = rest[0], rest[1:]
		}

		out.Placeholders = append(out.Placeholders, placeholder.FromName(name, RemoveSurroundingQuotes(value)))
	}

	return out, nil
}

// parseOptions pulls the double dash tool options out of args and returns the
// remaining tokens in order.
func parseOptions(args []string, opts *Options) ([]string, error) {
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !strings.HasPrefix(tok, "--") {
			rest = append(rest, tok)
			continue
		}

		name, value, hasValue := strings.Cut(tok[2:], "=")
		switch name {
		case OptionConfig:
			if !hasValue {
				if i+1 >= len(args) || isFlag(args[i+1]) {
					return nil, &ArgumentParsingError{Token: tok, Reason: "missing config file path"}
				}
				i++
				value = args[i]
			}
			opts.ConfigFile = RemoveSurroundingQuotes(value)
		case OptionDebug:
			opts.Debug = true
		case OptionNoInteraction:
			opts.NoInteraction = true
		case OptionExcludeHidden:
			opts.ExcludeHidden = true
		case OptionHelp:
			opts.Help = true
		case OptionVersion:
			opts.Version = true
		default:
			return nil, &ArgumentParsingError{Token: tok, Reason: "unknown option"}
		}

		if hasValue && name != OptionConfig {
			return nil, &ArgumentParsingError{Token: tok, Reason: "option does not take a value"}
		}
	}

	return rest, nil
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// RemoveSurroundingQuotes strips one leading and one trailing single or
// double quote.
func RemoveSurroundingQuotes(input string) string {
	if input == "" {
		return input
	}
	if input[0] == '"' || input[0] == '\'' {
		input = input[1:]
	}
	if n := len(input); n > 0 && (input[n-1] == '"' || input[n-1] == '\'') {
		input = input[:n-1]
	}
	return input
}
