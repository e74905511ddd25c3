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

// Package prompt asks a human for placeholder values.
package prompt

import (
	"context"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog"
	"github.com/walteh/stample/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.Base("prompt aborted")

// 💬 Prompter asks a human for a string given a label
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
}

// Func adapts a plain function to a Prompter.
type Func func(ctx context.Context, label string) (string, error)

func (f Func) Ask(ctx context.Context, label string) (string, error) {
	return f(ctx, label)
}

// 💬 PromptUI asks on the terminal with promptui. Nil streams default to the
// process stdin and stdout.
type PromptUI struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

var _ Prompter = (*PromptUI)(nil)

func (p *PromptUI) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Errorf("asking for %s: %w", label, err)
	}

	input := promptui.Prompt{
		Label:  label,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}

	answer, err := input.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return "", errors.Errorf("asking for %s: %w", label, ErrAborted)
		}
		return "", errors.Errorf("asking for %s: %w", label, err)
	}
	return answer, nil
}

// 🙋 AskAll prompts once per unresolved placeholder, in order and one at a
// time. Resolved placeholders are never asked for. The input slice is not
// modified; a new slice with the answers is returned.
func AskAll(ctx context.Context, p Prompter, set []placeholder.Placeholder) ([]placeholder.Placeholder, error) {
	logger := zerolog.Ctx(ctx)

	out := make([]placeholder.Placeholder, len(set))
	copy(out, set)

	for i, ph := range out {
		if ph.IsResolved() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("prompting for placeholders: %w", err)
		}

		answer, err := p.Ask(ctx, ph.Name())
		if err != nil {
			return nil, errors.Errorf("prompting for %s: %w", ph.Name(), err)
		}
		out[i] = ph.WithValue(answer)
		logger.Debug().Str("placeholder", ph.Name()).Msg("placeholder resolved interactively")
	}

	return out, nil
}
