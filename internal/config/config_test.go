package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsfront/internal/parser"
)

// clearEnv makes sure no JSFRONT_* variable leaks into or out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"JSFRONT_NAME_OVERRIDE", "JSFRONT_ADDITIONAL_PARAMS", "JSFRONT_FORMATTING",
		"JSFRONT_LANGUAGE", "JSFRONT_MAX_DIAGNOSTICS", "JSFRONT_JOBS",
		"JSFRONT_CACHE_DIR", "JSFRONT_NO_CACHE", "JSFRONT_LOG_LEVEL", "JSFRONT_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}
	return fsys
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(LoadOptions{Fs: afero.NewMemMapFs(), StartDir: "/work"})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, parser.LangESNext, cfg.Language())
}

func TestLoadFoundUpwards(t *testing.T) {
	clearEnv(t)
	fsys := memFs(t, map[string]string{
		"/proj/jsfront.toml": `
[processor]
name_override = true
additional_params = ["--language_out=ECMASCRIPT_2015"]

[parse]
language = "es2020"
jobs = 3

[cache]
disabled = true

[log]
level = "debug"
format = "json"
`,
	})
	require.NoError(t, fsys.MkdirAll("/proj/src/deep", 0o755))

	cfg, err := Load(LoadOptions{Fs: fsys, StartDir: "/proj/src/deep"})
	require.NoError(t, err)
	assert.Equal(t, "/proj/jsfront.toml", cfg.Path)
	assert.True(t, cfg.Processor.NameOverride)
	assert.Equal(t, []string{"--language_out=ECMASCRIPT_2015"}, cfg.Processor.AdditionalParams)
	assert.Equal(t, parser.LangES2020, cfg.Language())
	assert.Equal(t, 3, cfg.Parse.Jobs)
	assert.Equal(t, 100, cfg.Parse.MaxDiagnostics)
	assert.True(t, cfg.Cache.Disabled)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestUnknownKeysRejected(t *testing.T) {
	clearEnv(t)
	fsys := memFs(t, map[string]string{"/p/jsfront.toml": "[parse]\nlanguag = \"es5\"\n"})
	_, err := Load(LoadOptions{Fs: fsys, File: "/p/jsfront.toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse.languag")
}

func TestExplicitFileMustExist(t *testing.T) {
	clearEnv(t)
	_, err := Load(LoadOptions{Fs: afero.NewMemMapFs(), File: "/missing.toml"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBadTOML(t *testing.T) {
	clearEnv(t)
	fsys := memFs(t, map[string]string{"/p/jsfront.toml": "[parse\n"})
	_, err := Load(LoadOptions{Fs: fsys, File: "/p/jsfront.toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	fsys := memFs(t, map[string]string{
		"/p/jsfront.toml": "[parse]\nlanguage = \"es2015\"\njobs = 2\n",
	})
	t.Setenv("JSFRONT_LANGUAGE", "ES2018")
	t.Setenv("JSFRONT_ADDITIONAL_PARAMS", "--formatting=PRETTY_PRINT,--strict_mode_input")
	t.Setenv("JSFRONT_NO_CACHE", "true")

	cfg, err := Load(LoadOptions{Fs: fsys, StartDir: "/p"})
	require.NoError(t, err)
	assert.Equal(t, parser.LangES2018, cfg.Language())
	assert.Equal(t, 2, cfg.Parse.Jobs)
	assert.Equal(t, []string{"--formatting=PRETTY_PRINT", "--strict_mode_input"}, cfg.Processor.AdditionalParams)
	assert.True(t, cfg.Cache.Disabled)
}

func TestDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	clearEnv(t)
	fsys := memFs(t, map[string]string{
		"/p/.env": "JSFRONT_JOBS=7\nJSFRONT_LOG_LEVEL=error\n",
	})
	t.Setenv("JSFRONT_LOG_LEVEL", "info")

	cfg, err := Load(LoadOptions{Fs: fsys, StartDir: "/p"})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Parse.Jobs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"language", func(c *Config) { c.Parse.Language = "es1999" }, "parse.language"},
		{"formatting", func(c *Config) { c.Processor.Formatting = "sideways" }, "processor.formatting"},
		{"jobs", func(c *Config) { c.Parse.Jobs = -1 }, "parse.jobs"},
		{"max diagnostics", func(c *Config) { c.Parse.MaxDiagnostics = -5 }, "parse.max_diagnostics"},
		{"memory entries", func(c *Config) { c.Cache.MemoryEntries = -1 }, "cache.memory_entries"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	require.NoError(t, Default().Validate())
}

func TestFindStopsAtRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, ok, err := Find(fsys, filepath.FromSlash("/a/b"))
	require.NoError(t, err)
	assert.False(t, ok)
}
