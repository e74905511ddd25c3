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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stample/pkg/file"
	"github.com/walteh/stample/pkg/glob"
	"github.com/walteh/stample/pkg/log"
	"github.com/walteh/stample/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockPrompter is a mock implementation of the prompt.Prompter interface
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Ask(ctx context.Context, label string) (string, error) {
	result := m.Called(ctx, label)
	return result.String(0), result.Error(1)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// stageFixtures copies testdata/fixtures into a temp dir and returns it with
// an empty destination dir.
func stageFixtures(t *testing.T) (string, string) {
	t.Helper()
	source := filepath.Join(t.TempDir(), "fixtures")
	require.NoError(t, copy.Copy("./testdata/fixtures", source))
	return source, filepath.Join(t.TempDir(), "test-temp-dir")
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func allValues(set []placeholder.Placeholder, value func(p placeholder.Placeholder) string) []placeholder.Placeholder {
	out := make([]placeholder.Placeholder, len(set))
	for i, p := range set {
		out[i] = p.WithValue(value(p))
	}
	return out
}

func TestInit(t *testing.T) {
	ctx := testContext(t)
	source, destination := stageFixtures(t)

	t.Run("loads_files_matching_globs", func(t *testing.T) {
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)
		assert.Len(t, files, 4)
		for _, f := range files {
			assert.False(t, f.IsPreloaded(), "init does not read files")
		}
	})

	t.Run("sets_mirror_on_files", func(t *testing.T) {
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)

		f, ok := FindByBasename(files, "small-content.txt")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(destination, "small-content.txt"), f.Mirror())

		f, ok = FindByBasename(files, "test.html")
		require.True(t, ok)
		assert.Equal(t, filepath.Join(destination, "a", "path", "test.html"), f.Mirror())
	})

	t.Run("no_match", func(t *testing.T) {
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*.go"})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("absolute_pattern_inside_source", func(t *testing.T) {
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{filepath.ToSlash(source) + "/a/**/*.html"})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, filepath.Join(destination, "a", "path", "test.html"), files[0].Mirror())
	})

	t.Run("absolute_pattern_outside_source", func(t *testing.T) {
		other := filepath.Join(filepath.Dir(source), "other")
		require.NoError(t, os.MkdirAll(other, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(other, "x.txt"), []byte("x"), 0o644))

		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{filepath.ToSlash(other) + "/*.txt"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutsideSource)
		assert.Nil(t, files)
	})

	t.Run("relative_pattern_above_source", func(t *testing.T) {
		_, err := Init(ctx, glob.NewResolver(), source, destination, []string{"../other/*.txt"})
		require.Error(t, err)
		assert.ErrorIs(t, err, glob.ErrEscapesRoot)
	})

	t.Run("find_unknown_basename", func(t *testing.T) {
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)
		_, ok := FindByBasename(files, "nope.txt")
		assert.False(t, ok)
	})
}

func TestExtractAllPlaceholders(t *testing.T) {
	ctx := testContext(t)
	source, destination := stageFixtures(t)

	files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
	require.NoError(t, err)

	set, err := ExtractAllPlaceholders(ctx, files, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"TITLE", "CONTENT", "name", "day", "comment", "var_name"}, placeholder.Names(set))
	assert.Len(t, placeholder.Unresolved(set), len(set))
}

func TestExtractSharedPlaceholder(t *testing.T) {
	ctx := testContext(t)
	source := writeTree(t, map[string]string{
		"one.txt": "first %shared%",
		"two.txt": "second %shared% and %shared%",
	})
	destination := t.TempDir()

	files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"*.txt"})
	require.NoError(t, err)

	set, err := ExtractAllPlaceholders(ctx, files, 0)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, "%shared%", set[0].Raw)

	set = placeholder.Reconcile(set, []placeholder.Placeholder{placeholder.FromName("shared", "S")})
	require.NoError(t, TransformAllFiles(ctx, files, set, 0))
	_, err = CopyAllFiles(ctx, files, 0)
	require.NoError(t, err)

	one, err := os.ReadFile(filepath.Join(destination, "one.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first S", string(one))
	two, err := os.ReadFile(filepath.Join(destination, "two.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second S and S", string(two))
}

func TestTransformAllFiles(t *testing.T) {
	ctx := testContext(t)

	t.Run("missing_resolution_value", func(t *testing.T) {
		source, destination := stageFixtures(t)
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"test.js"})
		require.NoError(t, err)

		err = TransformAllFiles(ctx, files, []placeholder.Placeholder{placeholder.New("%test%")}, 0)
		require.Error(t, err)

		var incomplete *IncompleteResolutionError
		require.True(t, errors.As(err, &incomplete))
		assert.Equal(t, []string{"test"}, incomplete.Missing)
		assert.Contains(t, err.Error(), "some placeholders are missing a resolution value")

		_, ok := files[0].Transformed()
		assert.False(t, ok, "no file is transformed")
	})

	t.Run("file_placeholder_not_supplied", func(t *testing.T) {
		source, destination := stageFixtures(t)
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)

		set, err := ExtractAllPlaceholders(ctx, files, 0)
		require.NoError(t, err)
		set = allValues(set, func(p placeholder.Placeholder) string { return "test" })
		set = set[1:]

		err = TransformAllFiles(ctx, files, set, 0)
		require.Error(t, err)

		var unsupplied *UnsuppliedPlaceholderError
		require.True(t, errors.As(err, &unsupplied))
		assert.Equal(t, []string{"TITLE"}, unsupplied.Missing)
		assert.Contains(t, err.Error(), "some file placeholders were not provided")

		for _, f := range files {
			_, ok := f.Transformed()
			assert.False(t, ok, "no file is transformed")
		}
	})

	t.Run("transforms_when_conditions_are_met", func(t *testing.T) {
		source, destination := stageFixtures(t)
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)

		set, err := ExtractAllPlaceholders(ctx, files, 0)
		require.NoError(t, err)
		set = allValues(set, func(p placeholder.Placeholder) string { return "(" + p.Name() + ")" })

		require.NoError(t, TransformAllFiles(ctx, files, set, 0))

		f, ok := FindByBasename(files, "small-content.txt")
		require.True(t, ok)
		got, ok := f.Transformed()
		require.True(t, ok)
		assert.Equal(t, "Hello (name), today is (day).\n", got)

		f, ok = FindByBasename(files, "plain.txt")
		require.True(t, ok)
		got, ok = f.Transformed()
		require.True(t, ok)
		assert.Equal(t, "No placeholders in here.\n", got)
	})

	t.Run("no_files", func(t *testing.T) {
		assert.NoError(t, TransformAllFiles(ctx, nil, []placeholder.Placeholder{placeholder.New("%x%")}, 0))
	})
}

func TestCopyAllFiles(t *testing.T) {
	ctx := testContext(t)

	t.Run("untransformed_set", func(t *testing.T) {
		source, destination := stageFixtures(t)
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)

		results, err := CopyAllFiles(ctx, files, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotTransformed))
		assert.Contains(t, err.Error(), "some files are not transformed")
		require.Len(t, results, len(files))
		for _, r := range results {
			assert.True(t, errors.Is(r.Err, file.ErrMissingTransformed))
		}
		assert.NoDirExists(t, destination)
	})

	t.Run("copies_otherwise", func(t *testing.T) {
		source, destination := stageFixtures(t)
		files, err := Init(ctx, glob.NewResolver(), source, destination, []string{"**/*"})
		require.NoError(t, err)

		set, err := ExtractAllPlaceholders(ctx, files, 0)
		require.NoError(t, err)
		set = allValues(set, func(p placeholder.Placeholder) string { return "(" + p.Name() + ")" })

		require.NoError(t, TransformAllFiles(ctx, files, set, 0))
		results, err := CopyAllFiles(ctx, files, 0)
		require.NoError(t, err)
		for _, r := range results {
			assert.NoError(t, r.Err)
			assert.False(t, r.Overwrote)
		}

		content, err := os.ReadFile(filepath.Join(destination, "a", "path", "test.html"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "<title>(TITLE)</title>")

		results, err = CopyAllFiles(ctx, files, 0)
		require.NoError(t, err)
		for _, r := range results {
			assert.True(t, r.Overwrote, "second copy overwrites")
		}
	})

	t.Run("other_errors_propagate", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "x"})
		files, err := Init(ctx, glob.NewResolver(), source, t.TempDir(), []string{"*"})
		require.NoError(t, err)
		require.NoError(t, TransformAllFiles(ctx, files, nil, 0))

		files[0].SetMirror("")

		_, err = CopyAllFiles(ctx, files, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, file.ErrMissingMirror))
		assert.False(t, errors.Is(err, ErrNotTransformed))
	})
}

func TestResolvePlaceholders(t *testing.T) {
	ctx := testContext(t)
	set := []placeholder.Placeholder{
		placeholder.New("%name%"),
		placeholder.NewResolved("%day%", "Monday"),
	}

	t.Run("no_user_interaction", func(t *testing.T) {
		m := &MockPrompter{}
		got, err := ResolvePlaceholders(ctx, set, m, true)
		require.NoError(t, err)
		assert.Equal(t, set, got)
		m.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
	})

	t.Run("asks_unresolved_only", func(t *testing.T) {
		m := &MockPrompter{}
		m.On("Ask", mock.Anything, "name").Return("John", nil).Once()

		got, err := ResolvePlaceholders(ctx, set, m, false)
		require.NoError(t, err)
		assert.Empty(t, placeholder.Unresolved(got))
		m.AssertExpectations(t)
	})

	t.Run("nothing_to_ask", func(t *testing.T) {
		resolved := []placeholder.Placeholder{placeholder.NewResolved("%a%", "b")}
		got, err := ResolvePlaceholders(ctx, resolved, nil, false)
		require.NoError(t, err)
		assert.Equal(t, resolved, got)
	})
}

func TestStample(t *testing.T) {
	ctx := testContext(t)

	t.Run("works", func(t *testing.T) {
		source, destination := stageFixtures(t)

		files, err := Stample(ctx, Options{
			Source:      source,
			Destination: destination,
			Globs:       []string{"**/*.txt", "**/*.html"},
			Placeholders: []placeholder.Placeholder{
				placeholder.FromName("name", "John"),
				placeholder.FromName("day", "Tuesday"),
				placeholder.FromName("TITLE", "My Page"),
				placeholder.FromName("CONTENT", "Nice"),
			},
			NoUserInteraction: true,
		})
		require.NoError(t, err)
		assert.Len(t, files, 3)

		content, err := os.ReadFile(filepath.Join(destination, "small-content.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Hello John, today is Tuesday.\n", string(content))

		f, ok := FindByBasename(files, "small-content.txt")
		require.True(t, ok)
		original, ok := f.Contents()
		require.True(t, ok)
		assert.Equal(t, "Hello %name%, today is %day%.\n", original, "source content is never mutated")

		assert.NoFileExists(t, filepath.Join(destination, "test.js"))
	})

	t.Run("fails_when_placeholders_are_unresolved", func(t *testing.T) {
		source, destination := stageFixtures(t)

		_, err := Stample(ctx, Options{
			Source:            source,
			Destination:       destination,
			Globs:             []string{"**/*.txt", "**/*.html"},
			NoUserInteraction: true,
		})
		require.Error(t, err)

		var incomplete *IncompleteResolutionError
		require.True(t, errors.As(err, &incomplete))
		assert.Contains(t, incomplete.Missing, "TITLE")
		assert.Contains(t, err.Error(), "some placeholders are missing")
		assert.NoDirExists(t, destination, "nothing is written")
	})

	t.Run("prompts_for_missing_values", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "Hello %name%, today is %day%.\n"})
		destination := t.TempDir()

		m := &MockPrompter{}
		m.On("Ask", mock.Anything, "day").Return("Monday", nil).Once()

		_, err := Stample(ctx, Options{
			Source:       source,
			Destination:  destination,
			Globs:        []string{"*.txt"},
			Placeholders: []placeholder.Placeholder{placeholder.FromName("name", "John")},
			Prompter:     m,
		})
		require.NoError(t, err)
		m.AssertExpectations(t)
		m.AssertNotCalled(t, "Ask", mock.Anything, "name")

		content, err := os.ReadFile(filepath.Join(destination, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Hello John, today is Monday.\n", string(content))
	})

	t.Run("supplied_values_not_in_files_are_ignored", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "%x%"})
		destination := t.TempDir()

		_, err := Stample(ctx, Options{
			Source:      source,
			Destination: destination,
			Globs:       []string{"*"},
			Placeholders: []placeholder.Placeholder{
				placeholder.FromName("x", "1"),
				placeholder.FromName("unused", "2"),
			},
			NoUserInteraction: true,
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(destination, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "1", string(content))
	})

	t.Run("exclude_hidden", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "a", ".env": "secret"})
		destination := t.TempDir()

		files, err := Stample(ctx, Options{
			Source:            source,
			Destination:       destination,
			Globs:             []string{"*"},
			NoUserInteraction: true,
			ExcludeHidden:     true,
		})
		require.NoError(t, err)
		assert.Len(t, files, 1)
		assert.NoFileExists(t, filepath.Join(destination, ".env"))
	})

	t.Run("empty_file_is_copied", func(t *testing.T) {
		source := writeTree(t, map[string]string{"empty.txt": ""})
		destination := t.TempDir()

		_, err := Stample(ctx, Options{
			Source:            source,
			Destination:       destination,
			Globs:             []string{"*"},
			NoUserInteraction: true,
		})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(destination, "empty.txt"))
	})
}

func TestStampleConsole(t *testing.T) {
	ctx := testContext(t)
	color.NoColor = true
	defer func() { color.NoColor = false }()

	t.Run("reports_copied_files", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "%x% and %x%"})
		destination := t.TempDir()
		buf := &bytes.Buffer{}

		_, err := Stample(ctx, Options{
			Source:            source,
			Destination:       destination,
			Globs:             []string{"*"},
			Placeholders:      []placeholder.Placeholder{placeholder.FromName("x", "1")},
			NoUserInteraction: true,
			Console:           log.New(buf, zerolog.Disabled),
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "a.txt")
		assert.Contains(t, out, "NEW")
		assert.Contains(t, out, "2 replacements")
		assert.Contains(t, out, "stampled 1 file(s) into "+destination)
	})

	t.Run("reports_files_without_placeholders", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "plain"})
		buf := &bytes.Buffer{}

		_, err := Stample(ctx, Options{
			Source:            source,
			Destination:       t.TempDir(),
			Globs:             []string{"*"},
			NoUserInteraction: true,
			Console:           log.New(buf, zerolog.Disabled),
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "no placeholders found")
	})

	t.Run("reports_failed_copies", func(t *testing.T) {
		source := writeTree(t, map[string]string{"a.txt": "plain"})
		// a regular file where the destination directory should be
		destination := filepath.Join(t.TempDir(), "dst")
		require.NoError(t, os.WriteFile(destination, []byte("not a dir"), 0o644))
		buf := &bytes.Buffer{}

		_, err := Stample(ctx, Options{
			Source:            source,
			Destination:       destination,
			Globs:             []string{"*"},
			NoUserInteraction: true,
			Console:           log.New(buf, zerolog.Disabled),
		})
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, "FAILED")
		assert.Contains(t, out, "❌ a.txt:")
		assert.NotContains(t, out, "stampled")
	})
}
