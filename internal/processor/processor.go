package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"jsfront/internal/diag"
	"jsfront/internal/driver"
	"jsfront/internal/parser"
	"jsfront/internal/printer"
	"jsfront/internal/source"
)

const (
	defaultName  = "gcc4aem"
	overrideName = "gcc"
)

// Script is one clientlib source file.
type Script interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileScript reads a script from a file system.
type FileScript struct {
	Fs   afero.Fs
	Path string
}

func (s FileScript) Name() string                 { return s.Path }
func (s FileScript) Open() (io.ReadCloser, error) { return s.Fs.Open(s.Path) }

// SourceScript is an in-memory script.
type SourceScript struct {
	Path string
	Src  []byte
}

func (s SourceScript) Name() string { return s.Path }
func (s SourceScript) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Src)), nil
}

// Config is the processor's own configuration, separate from per-call options.
type Config struct {
	// NameOverride makes Name return "gcc" so min:gcc clientlibs are routed here.
	NameOverride bool
	// AdditionalParams are raw flags applied over the defaults.
	AdditionalParams []string
	MaxDiagnostics   int
}

type Processor struct {
	cfg   Config
	cache *DiskCache
	log   logrus.FieldLogger
}

// New builds a processor. cache may be nil.
func New(cfg Config, cache *DiskCache, log logrus.FieldLogger) *Processor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	p := &Processor{cfg: cfg, cache: cache, log: log}
	p.log.WithField("name", p.Name()).Debug("processor ready")
	return p
}

func (p *Processor) Name() string {
	if p.cfg.NameOverride {
		return overrideName
	}
	return defaultName
}

// Handles reports whether the processor accepts library type t.
func (p *Processor) Handles(t LibraryType) bool {
	return t == JS
}

// Params returns the effective flags: defaults, then configured
// additional params, then opts.
func (p *Processor) Params(opts map[string]string) Params {
	params := defaultParams()
	params.ApplyArgs(p.cfg.AdditionalParams)
	params.Apply(opts)
	return params
}

// Result is the full outcome of Run.
type Result struct {
	Handled  bool
	OK       bool
	Output   []byte
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Errors   int
	Warnings int
	// Cached is true when Output came from the disk cache; Bag is then empty.
	Cached bool
}

// Process writes the processed script to w and reports whether it did.
// Non-JS types are skipped. Errors in the script yield (false, nil); the
// error return is for invalid options, I/O and cancellation.
func (p *Processor) Process(ctx context.Context, t LibraryType, s Script, w io.Writer, opts map[string]string) (bool, error) {
	res, err := p.Run(ctx, t, s, opts)
	if err != nil || !res.OK {
		return false, err
	}
	if _, err := w.Write(res.Output); err != nil {
		return false, fmt.Errorf("write %s: %w", s.Name(), err)
	}
	return true, nil
}

// Run does the work of Process without writing, so callers can render the
// diagnostics.
func (p *Processor) Run(ctx context.Context, t LibraryType, s Script, opts map[string]string) (*Result, error) {
	log := p.log.WithFields(logrus.Fields{"type": t.String(), "file": s.Name()})
	if !p.Handles(t) {
		log.Debugf("not handling library type %s", t)
		return &Result{}, nil
	}

	params := p.Params(opts)
	set, err := params.settings()
	if err != nil {
		log.WithError(err).Error("invalid parameters")
		return &Result{Handled: true}, err
	}
	if len(set.ignored) > 0 {
		log.WithField("flags", strings.Join(set.ignored, " ")).Debug("flags have no effect")
	}

	src, err := readScript(s)
	if err != nil {
		return &Result{Handled: true}, err
	}

	key := cacheKeyFor(s.Name(), src, params.Args())
	var hit DiskPayload
	if ok, cerr := p.cache.Get(key, &hit); cerr != nil {
		log.WithError(cerr).Warn("disk cache read failed")
	} else if ok {
		log.WithField("warnings", hit.Warnings).Info("processed from cache")
		return &Result{
			Handled:  true,
			OK:       true,
			Output:   hit.Output,
			FileSet:  source.NewFileSet(),
			Bag:      diag.NewBag(1),
			Warnings: hit.Warnings,
			Cached:   true,
		}, nil
	}

	res, features, err := p.compile(ctx, s.Name(), src, set)
	if err != nil {
		return res, err
	}
	logOutcome(log, res)

	if res.OK {
		perr := p.cache.Put(key, &DiskPayload{
			Processor: p.Name(),
			Output:    res.Output,
			Warnings:  res.Warnings,
			Features:  features,
		})
		if perr != nil {
			log.WithError(perr).Warn("disk cache write failed")
		}
	}
	return res, nil
}

func (p *Processor) compile(ctx context.Context, name string, src []byte, set settings) (*Result, []string, error) {
	parsed := driver.ParseSourceContext(ctx, name, src, driver.Options{
		Language:       set.languageIn,
		MaxDiagnostics: p.cfg.MaxDiagnostics,
		Log:            p.log,
	})
	if err := ctx.Err(); err != nil {
		return &Result{Handled: true}, nil, err
	}
	bag := parsed.Bag

	var features []string
	if parsed.Err == nil {
		for _, use := range parser.Above(parsed.Features, set.languageOut) {
			features = append(features, use.Feature.String())
			bag.Add(diag.New(diag.SevWarning, diag.PrcFeatureAboveOut, use.Span,
				fmt.Sprintf("%s need %s; output language is %s and no lowering is performed",
					use.Feature, use.Feature.Since(), set.languageOut)))
		}
	}
	if set.failOnWarning {
		bag.Promote(diag.SevWarning, diag.SevError)
	}

	res := &Result{
		Handled:  true,
		FileSet:  parsed.FileSet,
		Bag:      bag,
		Errors:   bag.Count(diag.SevError),
		Warnings: bag.Count(diag.SevWarning),
	}
	if res.Errors > 0 {
		bag.Add(diag.New(diag.SevInfo, diag.PrcOutputSuppressed, source.Span{},
			fmt.Sprintf("no output written for %s", name)))
		return res, features, nil
	}

	out, err := printer.Print(parsed.Builder, parsed.FileID, printer.Options{Mode: set.mode})
	if err != nil {
		return res, features, fmt.Errorf("print %s: %w", name, err)
	}
	res.Output = out
	res.OK = true
	return res, features, nil
}

func readScript(s Script) ([]byte, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Name(), err)
	}
	defer rc.Close()
	src, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Name(), err)
	}
	return src, nil
}

func logOutcome(log logrus.FieldLogger, res *Result) {
	entry := log.WithFields(logrus.Fields{"errors": res.Errors, "warnings": res.Warnings})
	if res.Errors+res.Warnings > 0 && res.Bag != nil {
		entry = entry.WithField("diagnostics", diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false))
	}
	switch {
	case res.Errors > 0:
		entry.Errorf("processed with %d error(s) and %d warning(s)", res.Errors, res.Warnings)
	case res.Warnings > 0:
		entry.Warnf("processed with %d warning(s)", res.Warnings)
	default:
		entry.Info("processed successfully")
	}
}
