package driver

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/parser"
	"jsfront/internal/printer"
	"jsfront/internal/token"
)

func fixtureFs(t *testing.T) afero.Fs {
	t.Helper()
	src, err := os.ReadFile("../../testdata/let_and_const.js")
	require.NoError(t, err)

	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/lib/let_and_const.js": string(src),
		"/lib/a.mjs":            "const a = 1;\n",
		"/lib/nested/b.cjs":     "var b = [1, 2, , 3];\nb.push(4);\n",
		"/lib/nested/c.js":      "let c = `x${1 + 2}y`;\n",
		"/lib/broken.js":        "let = ;\n",
		"/lib/readme.txt":       "not a script",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}
	return fsys
}

func TestParseFixture(t *testing.T) {
	t.Parallel()
	fsys := fixtureFs(t)

	res, err := Parse(fsys, "/lib/let_and_const.js", Options{})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.Bag.Len())
	assert.Len(t, res.Builder.Files.Get(res.FileID).Body, 8)
	require.NotEmpty(t, res.Features)
	assert.Equal(t, parser.FeatLetConst, res.Features[0].Feature)
	assert.Nil(t, res.Timing)
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Parse(afero.NewMemMapFs(), "/nope.js", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestParseSourceErrors(t *testing.T) {
	t.Parallel()

	res := ParseSource("broken.js", []byte("let = ;"), Options{})
	var synErr *parser.SyntaxError
	require.ErrorAs(t, res.Err, &synErr)
	assert.True(t, res.Bag.HasErrors())

	res = ParseSource("str.js", []byte("let s = 'abc"), Options{})
	var lexErr *lexer.LexError
	require.ErrorAs(t, res.Err, &lexErr)
	assert.Equal(t, diag.LexUnterminatedString, lexErr.Code)
}

func TestParseSourceLanguageGate(t *testing.T) {
	t.Parallel()
	res := ParseSource("gate.js", []byte("let x = 1;"), Options{Language: parser.LangES5})
	require.Error(t, res.Err)
	codes := make([]diag.Code, 0, res.Bag.Len())
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, diag.SynFeatureNotInLanguage)
}

func TestParseTimings(t *testing.T) {
	t.Parallel()
	res, err := Parse(fixtureFs(t), "/lib/a.mjs", Options{Timings: true})
	require.NoError(t, err)
	require.NotNil(t, res.Timing)
	require.Len(t, res.Timing.Phases, 2)
	assert.Equal(t, "load", res.Timing.Phases[0].Name)
	assert.Equal(t, "parse", res.Timing.Phases[1].Name)
}

func TestListSources(t *testing.T) {
	t.Parallel()
	files, err := ListSources(fixtureFs(t), "/lib")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/lib/a.mjs",
		"/lib/broken.js",
		"/lib/let_and_const.js",
		"/lib/nested/b.cjs",
		"/lib/nested/c.js",
	}, files)
}

func TestParseDirEqualsSequential(t *testing.T) {
	t.Parallel()
	fsys := fixtureFs(t)

	results, err := ParseDir(context.Background(), fsys, "/lib", Options{Jobs: 4})
	require.NoError(t, err)
	require.Len(t, results, 5)

	for _, got := range results {
		want, err := Parse(fsys, got.Path, Options{})
		require.NoError(t, err)

		assert.Equal(t, want.Bag.Len(), got.Bag.Len(), got.Path)
		assert.Equal(t, want.Err == nil, got.Err == nil, got.Path)
		if want.Err != nil {
			continue
		}
		wantOut, err := printer.Print(want.Builder, want.FileID, printer.Options{Mode: printer.Compact})
		require.NoError(t, err)
		gotOut, err := printer.Print(got.Builder, got.FileID, printer.Options{Mode: printer.Compact})
		require.NoError(t, err)
		assert.Equal(t, string(wantOut), string(gotOut), got.Path)
	}
}

func TestParseDirEmpty(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))
	_, err := ParseDir(context.Background(), fsys, "/empty", Options{})
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestParseDirCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseDir(ctx, fixtureFs(t), "/lib", Options{Jobs: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDirProgress(t *testing.T) {
	t.Parallel()
	events := make(chan Event, 16)
	_, err := ParseDir(context.Background(), fixtureFs(t), "/lib", Options{Jobs: 2, Progress: events})
	require.NoError(t, err)
	close(events)

	started, done, failed := 0, 0, 0
	for ev := range events {
		assert.Equal(t, 5, ev.Total)
		switch ev.Status {
		case FileStarted:
			started++
		case FileDone:
			done++
		case FileFailed:
			failed++
			assert.Equal(t, "/lib/broken.js", ev.Path)
			assert.Positive(t, ev.Errors)
		}
	}
	assert.Equal(t, 5, started)
	assert.Equal(t, 4, done)
	assert.Equal(t, 1, failed)
}

func TestTokenizeDir(t *testing.T) {
	t.Parallel()
	results, err := TokenizeDir(context.Background(), fixtureFs(t), "/lib", Options{})
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, res := range results {
		require.NotEmpty(t, res.Tokens, res.Path)
		assert.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind, res.Path)
		assert.NoError(t, res.Err, res.Path)
	}
}

func TestTokenizeLexError(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/t.js", []byte("let s = `abc"), 0o644))
	res, err := Tokenize(fsys, "/t.js", 16)
	require.NoError(t, err)
	var lexErr *lexer.LexError
	require.ErrorAs(t, res.Err, &lexErr)
	assert.Equal(t, diag.LexUnterminatedTemplate, lexErr.Code)
}

func TestLoadFailureDiagnostic(t *testing.T) {
	t.Parallel()
	bag := loadFailure("/x.js", os.ErrPermission, 4)
	require.Equal(t, 1, bag.Len())
	d := bag.Items()[0]
	assert.Equal(t, diag.IOLoadFileError, d.Code)
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Contains(t, d.Message, "/x.js")
}

func TestCacheReusesResults(t *testing.T) {
	t.Parallel()
	fsys := fixtureFs(t)
	cache, err := NewCache(8)
	require.NoError(t, err)

	first, err := Parse(fsys, "/lib/a.mjs", Options{Cache: cache})
	require.NoError(t, err)
	second, err := Parse(fsys, "/lib/a.mjs", Options{Cache: cache})
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := Parse(fsys, "/lib/a.mjs", Options{Cache: cache, Language: parser.LangES2015})
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	require.NoError(t, afero.WriteFile(fsys, "/lib/a.mjs", []byte("const a = 2;\n"), 0o644))
	changed, err := Parse(fsys, "/lib/a.mjs", Options{Cache: cache})
	require.NoError(t, err)
	assert.NotSame(t, first, changed)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(3), misses)
	assert.Equal(t, 3, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestNewCacheRejectsZeroSize(t *testing.T) {
	t.Parallel()
	_, err := NewCache(0)
	assert.Error(t, err)
}

func TestParseLogsOutcome(t *testing.T) {
	t.Parallel()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	ParseSource("broken.js", []byte("let = ;"), Options{Log: logger})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "parsed", entry.Message)
	assert.Equal(t, "broken.js", entry.Data["file"])
	assert.Positive(t, entry.Data["errors"])
}
