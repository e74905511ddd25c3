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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 🎯 FileOperation represents one stampled file for logging
type FileOperation struct {
	Path          string // Path relative to the source directory
	Destination   string // Mirror path
	Status        string // Operation status
	IsNew         bool   // Whether the mirror did not exist before
	IsOverwritten bool   // Whether an existing mirror was replaced
	IsFailed      bool   // Whether the copy failed
	Replacements  int    // Number of replacements made
}

// 📦 RunOperation represents one stample run for logging
type RunOperation struct {
	Source      string   // Source directory
	Destination string   // Destination directory
	Globs       []string // Glob patterns
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔇 Discard returns a logger that prints nothing
func Discard() *Logger {
	return &Logger{
		zlog:    zerolog.Nop(),
		console: io.Discard,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsOverwritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	replacements := ""
	if op.Replacements > 0 {
		replacements = color.New(color.Faint).Sprintf("%d replacements", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, op.Status)),
		replacements)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("destination", op.Destination).
		Str("status", op.Status).
		Bool("is_new", op.IsNew).
		Bool("is_overwritten", op.IsOverwritten).
		Bool("is_failed", op.IsFailed).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 StartRun starts a new stample run
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[stampling %s]\n",
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(strings.Join(op.Globs, " ")))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Strs("globs", op.Globs).
		Msg("starting stample run")
}

// 📝 EndRun ends the current run and returns how many files were logged
func (l *Logger) EndRun(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return 0
	}

	count := len(l.operations)
	l.zlog.Info().
		Str("source", l.currentRun.Source).
		Int("files", count).
		Msg("stample run complete")

	l.currentRun = nil
	l.operations = nil
	return count
}

// message prints one symbol-prefixed console line and mirrors it to zerolog
func (l *Logger) message(level zerolog.Level, symbol string, attr color.Attribute, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", symbol, color.New(attr).Sprint(msg))
	l.zlog.WithLevel(level).Msg(msg)
}

// ✅ Successf reports a finished run
func (l *Logger) Successf(format string, args ...interface{}) {
	l.message(zerolog.InfoLevel, "✅", color.FgGreen, fmt.Sprintf(format, args...))
}

// ℹ️ Infof reports a run detail that needs no action
func (l *Logger) Infof(format string, args ...interface{}) {
	l.message(zerolog.InfoLevel, "ℹ️ ", color.FgCyan, fmt.Sprintf(format, args...))
}

// ⚠️ Warningf reports something the user probably did not intend
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.message(zerolog.WarnLevel, "⚠️ ", color.FgYellow, fmt.Sprintf(format, args...))
}

// ❌ Errorf reports why a file could not be stampled
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.message(zerolog.ErrorLevel, "❌", color.FgRed, fmt.Sprintf(format, args...))
}
