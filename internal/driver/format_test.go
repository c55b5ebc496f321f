package driver

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsfront/internal/printer"
)

func formatFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/src/clean.js":   "var a = 1;\n",
		"/src/messy.js":   "var   b=2",
		"/src/comment.js": "// keep me\nvar c=3",
		"/src/bad/x.js":   "var = ;",
		"/src/notes.md":   "# notes",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}
	return fsys
}

func resultsByPath(results []FormatResult) map[string]FormatResult {
	out := make(map[string]FormatResult, len(results))
	for _, r := range results {
		out[r.Path] = r
	}
	return out
}

func TestFormatPathsCheck(t *testing.T) {
	fsys := formatFs(t)
	results, err := FormatPaths(context.Background(), fsys, []string{"/src"}, FormatOptions{Check: true})
	require.NoError(t, err)
	require.Len(t, results, 4)

	byPath := resultsByPath(results)
	assert.False(t, byPath["/src/clean.js"].Changed)
	assert.True(t, byPath["/src/messy.js"].Changed)
	assert.True(t, byPath["/src/comment.js"].Changed)
	assert.Error(t, byPath["/src/bad/x.js"].Err)

	data, err := afero.ReadFile(fsys, "/src/messy.js")
	require.NoError(t, err)
	assert.Equal(t, "var   b=2", string(data), "check must not write")
}

func TestFormatPathsWritesInPlace(t *testing.T) {
	fsys := formatFs(t)
	results, err := FormatPaths(context.Background(), fsys, []string{"/src/messy.js", "/src/comment.js"}, FormatOptions{})
	require.NoError(t, err)

	byPath := resultsByPath(results)
	assert.True(t, byPath["/src/messy.js"].Changed)
	assert.ErrorIs(t, byPath["/src/comment.js"].Err, ErrCommentsPresent)

	data, err := afero.ReadFile(fsys, "/src/messy.js")
	require.NoError(t, err)
	assert.Equal(t, "var b = 2;\n", string(data))

	data, err = afero.ReadFile(fsys, "/src/comment.js")
	require.NoError(t, err)
	assert.Equal(t, "// keep me\nvar c=3", string(data))
}

func TestFormatPathsStdoutCompact(t *testing.T) {
	fsys := formatFs(t)
	results, err := FormatPaths(context.Background(), fsys, []string{"/src/clean.js"}, FormatOptions{
		Stdout: true,
		Print:  printer.Options{Mode: printer.Compact},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "var a=1;", string(results[0].Formatted))
	assert.True(t, results[0].Changed)
}

func TestFormatPathsNoSources(t *testing.T) {
	fsys := formatFs(t)
	_, err := FormatPaths(context.Background(), fsys, []string{"/src/notes.md"}, FormatOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FormatPaths(ctx, fsys, []string{"/src"}, FormatOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
