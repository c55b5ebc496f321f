package processor

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsfront/internal/diag"
	"jsfront/internal/driver"
)

func fixtureScript(t *testing.T) SourceScript {
	t.Helper()
	src, err := os.ReadFile("../../testdata/let_and_const.js")
	require.NoError(t, err)
	return SourceScript{Path: "let_and_const.js", Src: src}
}

func newTestProcessor(t *testing.T, cfg Config) (*Processor, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(cfg, nil, logger), hook
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestName(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{})
	assert.Equal(t, "gcc4aem", p.Name())
	p, _ = newTestProcessor(t, Config{NameOverride: true})
	assert.Equal(t, "gcc", p.Name())
}

func TestHandles(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{})
	assert.True(t, p.Handles(JS))
	assert.False(t, p.Handles(CSS))
}

func TestParseLibraryType(t *testing.T) {
	t.Parallel()
	lt, err := ParseLibraryType(" CSS ")
	require.NoError(t, err)
	assert.Equal(t, CSS, lt)
	_, err = ParseLibraryType("html")
	assert.Error(t, err)
}

func TestParamsTranslation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		opts map[string]string
		want Params
	}{
		{
			name: "defaults",
			opts: nil,
			want: Params{"--compilation_level": "ADVANCED", "--language_in": "ECMASCRIPT_NEXT", "--language_out": "ECMASCRIPT5"},
		},
		{
			name: "clientlib keys",
			opts: map[string]string{"languageIn": "ECMASCRIPT_2015", "LanguageOut": "ECMASCRIPT_2017", "compilationLevel": "whitespace"},
			want: Params{"--compilation_level": "WHITESPACE_ONLY", "--language_in": "ECMASCRIPT_2015", "--language_out": "ECMASCRIPT_2017"},
		},
		{
			name: "unknown level falls back to simple",
			opts: map[string]string{"compilationLevel": "turbo"},
			want: Params{"--compilation_level": "SIMPLE", "--language_in": "ECMASCRIPT_NEXT", "--language_out": "ECMASCRIPT5"},
		},
		{
			name: "fail on warning",
			opts: map[string]string{"failOnWarning": "TRUE"},
			want: Params{"--compilation_level": "ADVANCED", "--language_in": "ECMASCRIPT_NEXT", "--language_out": "ECMASCRIPT5", "--jscomp_error": "*"},
		},
		{
			name: "fail on warning false is dropped",
			opts: map[string]string{"failOnWarning": "false"},
			want: Params{"--compilation_level": "ADVANCED", "--language_in": "ECMASCRIPT_NEXT", "--language_out": "ECMASCRIPT5"},
		},
		{
			name: "flags pass through and unknown keys are dropped",
			opts: map[string]string{"--formatting": "PRETTY_PRINT", "obfuscate": "yes"},
			want: Params{"--compilation_level": "ADVANCED", "--language_in": "ECMASCRIPT_NEXT", "--language_out": "ECMASCRIPT5", "--formatting": "PRETTY_PRINT"},
		},
	}
	p, _ := newTestProcessor(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Params(tt.opts))
		})
	}
}

func TestParamsLayering(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{AdditionalParams: []string{
		"--language_out=ECMASCRIPT_2015",
		"--formatting PRETTY_PRINT",
		"--strict_mode_input",
	}})
	params := p.Params(map[string]string{"languageOut": "ECMASCRIPT_2020"})
	assert.Equal(t, "ECMASCRIPT_2020", params["--language_out"])
	assert.Equal(t, "PRETTY_PRINT", params["--formatting"])
	assert.Equal(t, []string{
		"--compilation_level", "ADVANCED",
		"--formatting", "PRETTY_PRINT",
		"--language_in", "ECMASCRIPT_NEXT",
		"--language_out", "ECMASCRIPT_2020",
		"--strict_mode_input",
	}, params.Args())
}

func TestProcessSkipsCSS(t *testing.T) {
	t.Parallel()
	p, hook := newTestProcessor(t, Config{})
	var out bytes.Buffer
	ok, err := p.Process(context.Background(), CSS, fixtureScript(t), &out, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, out.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestProcessFixture(t *testing.T) {
	t.Parallel()
	p, hook := newTestProcessor(t, Config{})
	opts := map[string]string{
		"--language_in":       "UNSTABLE",
		"--language_out":      "ECMASCRIPT5_STRICT",
		"--compilation_level": "SIMPLE",
	}
	var out bytes.Buffer
	ok, err := p.Process(context.Background(), JS, fixtureScript(t), &out, opts)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, strings.TrimSpace(out.String()))
	assert.NotContains(t, out.String(), "\n")

	again := driver.ParseSource("out.js", out.Bytes(), driver.Options{})
	require.NoError(t, again.Err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 4, entry.Data["warnings"])
	assert.Contains(t, entry.Data["diagnostics"], "warning PRC5001 ")
}

func TestRunReportsFeaturesAboveOutput(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{})
	res, err := p.Run(context.Background(), JS, SourceScript{Path: "a.js", Src: []byte("let a = `x`;")},
		map[string]string{"languageOut": "ECMASCRIPT_2015"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Zero(t, res.Warnings)

	res, err = p.Run(context.Background(), JS, SourceScript{Path: "a.js", Src: []byte("let a = b ?? c;")},
		map[string]string{"languageOut": "ECMASCRIPT_2015"})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 1, res.Warnings)
	assert.Equal(t, []diag.Code{diag.PrcFeatureAboveOut}, codes(res.Bag))
}

func TestProcessFailOnWarning(t *testing.T) {
	t.Parallel()
	p, hook := newTestProcessor(t, Config{})
	var out bytes.Buffer
	ok, err := p.Process(context.Background(), JS, fixtureScript(t), &out, map[string]string{"failOnWarning": "true"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, out.Len())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	res, err := p.Run(context.Background(), JS, fixtureScript(t), map[string]string{"failOnWarning": "true"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Errors)
	assert.Zero(t, res.Warnings)
	assert.Contains(t, codes(res.Bag), diag.PrcOutputSuppressed)
}

func TestProcessSyntaxError(t *testing.T) {
	t.Parallel()
	p, hook := newTestProcessor(t, Config{})
	var out bytes.Buffer
	ok, err := p.Process(context.Background(), JS, SourceScript{Path: "bad.js", Src: []byte("var = 1;")}, &out, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, out.Len())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "bad.js", entry.Data["file"])
}

func TestProcessInvalidOptions(t *testing.T) {
	t.Parallel()
	tests := []map[string]string{
		{"languageIn": "ECMASCRIPT_1999"},
		{"--language_out": "COBOL"},
		{"--compilation_level": "FAST"},
		{"--formatting": "SIDEWAYS"},
	}
	p, _ := newTestProcessor(t, Config{})
	for _, opts := range tests {
		var out bytes.Buffer
		ok, err := p.Process(context.Background(), JS, fixtureScript(t), &out, opts)
		assert.ErrorIs(t, err, ErrInvalidOptions, "%v", opts)
		assert.False(t, ok)
		assert.Zero(t, out.Len())
	}
}

func TestProcessPrettyPrint(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{})
	var out bytes.Buffer
	ok, err := p.Process(context.Background(), JS, SourceScript{Path: "p.js", Src: []byte("function f(a){return a+1}")},
		&out, map[string]string{"--formatting": "PRETTY_PRINT"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "function f(a) {\n  return a + 1;\n}\n", out.String())
}

func TestProcessCanceled(t *testing.T) {
	t.Parallel()
	p, _ := newTestProcessor(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	ok, err := p.Process(ctx, JS, fixtureScript(t), &out, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestProcessUsesDiskCache(t *testing.T) {
	t.Parallel()
	cache, err := OpenDiskCache(afero.NewMemMapFs(), "/cache/jsfront")
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	p := New(Config{}, cache, logger)

	first, err := p.Run(context.Background(), JS, fixtureScript(t), nil)
	require.NoError(t, err)
	require.True(t, first.OK)
	assert.False(t, first.Cached)

	second, err := p.Run(context.Background(), JS, fixtureScript(t), nil)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Warnings, second.Warnings)

	third, err := p.Run(context.Background(), JS, fixtureScript(t), map[string]string{"languageOut": "ECMASCRIPT_NEXT"})
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestRunDir(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/lib/a.js", []byte("var a = 1;"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/lib/b/c.js", []byte("var = ;"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/lib/style.css", []byte("a{}"), 0o644))

	p, _ := newTestProcessor(t, Config{})
	events := make(chan driver.Event, 8)
	outcomes, err := p.RunDir(context.Background(), fsys, "/lib", JS, nil, 2, events)
	require.NoError(t, err)
	close(events)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "/lib/a.js", outcomes[0].Path)
	assert.True(t, outcomes[0].Result.OK)
	assert.Equal(t, "var a=1;", string(outcomes[0].Result.Output))
	assert.Equal(t, "/lib/b/c.js", outcomes[1].Path)
	assert.False(t, outcomes[1].Result.OK)

	failed := 0
	for ev := range events {
		if ev.Status == driver.FileFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}
