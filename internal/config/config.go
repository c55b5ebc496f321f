// Package config loads jsfront.toml, .env and JSFRONT_* variables.
//
// Precedence, lowest first: built-in defaults, jsfront.toml, .env,
// process environment. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"jsfront/internal/parser"
	"jsfront/internal/printer"
)

const FileName = "jsfront.toml"

type Config struct {
	Processor ProcessorConfig `toml:"processor"`
	Parse     ParseConfig     `toml:"parse"`
	Cache     CacheConfig     `toml:"cache"`
	Log       LogConfig       `toml:"log"`

	// Path is the loaded file, "" when only defaults and env were used.
	Path string `toml:"-"`
}

type ProcessorConfig struct {
	NameOverride     bool     `toml:"name_override"`
	AdditionalParams []string `toml:"additional_params"`
	Formatting       string   `toml:"formatting"`
}

type ParseConfig struct {
	Language       string `toml:"language"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

type CacheConfig struct {
	Dir           string `toml:"dir"`
	Disabled      bool   `toml:"disabled"`
	MemoryEntries int    `toml:"memory_entries"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Processor: ProcessorConfig{Formatting: "compact"},
		Parse:     ParseConfig{Language: "ECMASCRIPT_NEXT", MaxDiagnostics: 100},
		Cache:     CacheConfig{MemoryEntries: 128},
		Log:       LogConfig{Level: "warning", Format: "text"},
	}
}

// envOverrides mirrors the settings that JSFRONT_* variables may change.
// Nil fields were not set. Tags carry the full variable name so that
// unprefixed variables such as LANGUAGE are never consulted.
type envOverrides struct {
	NameOverride     *bool    `envconfig:"JSFRONT_NAME_OVERRIDE"`
	AdditionalParams []string `envconfig:"JSFRONT_ADDITIONAL_PARAMS"`
	Formatting       *string  `envconfig:"JSFRONT_FORMATTING"`
	Language         *string  `envconfig:"JSFRONT_LANGUAGE"`
	MaxDiagnostics   *int     `envconfig:"JSFRONT_MAX_DIAGNOSTICS"`
	Jobs             *int     `envconfig:"JSFRONT_JOBS"`
	CacheDir         *string  `envconfig:"JSFRONT_CACHE_DIR"`
	NoCache          *bool    `envconfig:"JSFRONT_NO_CACHE"`
	LogLevel         *string  `envconfig:"JSFRONT_LOG_LEVEL"`
	LogFormat        *string  `envconfig:"JSFRONT_LOG_FORMAT"`
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	Fs afero.Fs
	// File is an explicit config path; it must exist.
	File string
	// StartDir is where the upward search for jsfront.toml begins.
	StartDir string
	// EnvFile defaults to ".env" in StartDir. Missing files are skipped.
	EnvFile string
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (Config, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	cfg := Default()

	path := opts.File
	if path == "" {
		found, ok, err := Find(fsys, opts.StartDir)
		if err != nil {
			return cfg, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if err := decodeFile(fsys, path, &cfg); err != nil {
			return cfg, err
		}
		cfg.Path = path
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = filepath.Join(opts.StartDir, ".env")
	}
	if err := loadDotEnv(fsys, envFile); err != nil {
		return cfg, err
	}

	var ov envOverrides
	if err := envconfig.Process("", &ov); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	cfg.apply(ov)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Find walks up from startDir looking for jsfront.toml.
func Find(fsys afero.Fs, startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := fsys.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func decodeFile(fsys afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// loadDotEnv sets variables from envFile that the process does not have yet.
func loadDotEnv(fsys afero.Fs, envFile string) error {
	f, err := fsys.Open(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", envFile, err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("%s: %w", envFile, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) apply(ov envOverrides) {
	if ov.NameOverride != nil {
		c.Processor.NameOverride = *ov.NameOverride
	}
	if ov.AdditionalParams != nil {
		c.Processor.AdditionalParams = ov.AdditionalParams
	}
	if ov.Formatting != nil {
		c.Processor.Formatting = *ov.Formatting
	}
	if ov.Language != nil {
		c.Parse.Language = *ov.Language
	}
	if ov.MaxDiagnostics != nil {
		c.Parse.MaxDiagnostics = *ov.MaxDiagnostics
	}
	if ov.Jobs != nil {
		c.Parse.Jobs = *ov.Jobs
	}
	if ov.CacheDir != nil {
		c.Cache.Dir = *ov.CacheDir
	}
	if ov.NoCache != nil {
		c.Cache.Disabled = *ov.NoCache
	}
	if ov.LogLevel != nil {
		c.Log.Level = *ov.LogLevel
	}
	if ov.LogFormat != nil {
		c.Log.Format = *ov.LogFormat
	}
}

// Validate checks every enumerated and numeric setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := parser.ParseLanguage(c.Parse.Language); err != nil {
		errs = append(errs, fmt.Errorf("parse.language: %w", err))
	}
	if _, err := printer.ParseMode(c.Processor.Formatting); err != nil {
		errs = append(errs, fmt.Errorf("processor.formatting: %w", err))
	}
	if c.Parse.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("parse.max_diagnostics must be >= 0, got %d", c.Parse.MaxDiagnostics))
	}
	if c.Parse.Jobs < 0 {
		errs = append(errs, fmt.Errorf("parse.jobs must be >= 0, got %d", c.Parse.Jobs))
	}
	if c.Cache.MemoryEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.memory_entries must be >= 0, got %d", c.Cache.MemoryEntries))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Language returns the parsed parse.language.
func (c Config) Language() parser.Language {
	l, _ := parser.ParseLanguage(c.Parse.Language)
	return l
}
