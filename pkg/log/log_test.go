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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "test.txt",
					Destination:  "/tmp/dst/test.txt",
					Status:       "NEW",
					IsNew:        true,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"    ✓ test.txt                            NEW          2 replacements",
			},
		},
		{
			name: "log_run",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Source:      "templates/webdev",
					Destination: "/tmp/test",
					Globs:       []string{"**/*.html", "**/*.ts"},
				})
			},
			wantLogs: []string{
				"[stampling /tmp/test]",
				"◆ templates/webdev • **/*.html **/*.ts",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("no placeholders found in %d files", 3)
				logger.Warningf("no files matched %v", []string{"*.md"})
				logger.Errorf("%s: %s", "a.txt", "permission denied")
				logger.Successf("stampled %d file(s) into %s", 2, "/tmp/dst")
			},
			wantLogs: []string{
				"ℹ️  no placeholders found in 3 files",
				"⚠️  no files matched [*.md]",
				"❌ a.txt: permission denied",
				"✅ stampled 2 file(s) into /tmp/dst",
			},
		},
		{
			name: "message_with_percent_sign",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("%s", "value is 100%")
			},
			wantLogs: []string{
				"ℹ️  value is 100%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimRight(buf.String(), "\n")
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimRight(lines[i], " "), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerRunCount(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)
	ctx := context.Background()

	assert.Equal(t, 0, logger.EndRun(ctx), "no run started")

	logger.StartRun(ctx, RunOperation{Source: "src", Destination: "dst"})
	logger.LogFileOperation(ctx, FileOperation{Path: "a.txt", IsNew: true})
	logger.LogFileOperation(ctx, FileOperation{Path: "b.txt", IsOverwritten: true})
	assert.Equal(t, 2, logger.EndRun(ctx))
	assert.Equal(t, 0, logger.EndRun(ctx))
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "new_file",
			op: FileOperation{
				Path:   "test.txt",
				Status: "NEW",
				IsNew:  true,
			},
			want: "    ✓ test.txt                            NEW",
		},
		{
			name: "overwritten_file",
			op: FileOperation{
				Path:          "a/path/test.html",
				Status:        "OVERWRITTEN",
				IsOverwritten: true,
				Replacements:  1,
			},
			want: "    ⟳ a/path/test.html                    OVERWRITTEN  1 replacements",
		},
		{
			name: "failed_file",
			op: FileOperation{
				Path:     "test.txt",
				Status:   "FAILED",
				IsFailed: true,
			},
			want: "    ✗ test.txt                            FAILED",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "test.txt",
				Status: "no change",
			},
			want: "    • test.txt                            no change",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimRight(buf.String(), " \n")
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}
