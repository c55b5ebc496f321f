package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/driver"
	"jsfront/internal/processor"
)

type processFlags struct {
	libType string
	options []string
	out     string
	jobs    int
	ui      string
	noCache bool
}

func newProcessCmd(st *appState) *cobra.Command {
	var pf processFlags
	cmd := &cobra.Command{
		Use:   "process [flags] <file.js|directory>",
		Short: "Process clientlib scripts with min:gcc style options",
		Long: `Process parses scripts at --language_in, warns about constructs newer than
--language_out and writes compact (or PRETTY_PRINT) output. Options use the
clientlib keys (languageIn, languageOut, compilationLevel, failOnWarning) or raw
compiler flags starting with "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("jobs") {
				pf.jobs = st.cfg.Parse.Jobs
			}
			return st.runProcess(cmd, afero.NewOsFs(), args[0], pf)
		},
	}
	cmd.Flags().StringVar(&pf.libType, "type", "js", "library type (js|css)")
	cmd.Flags().StringArrayVarP(&pf.options, "option", "o", nil, "processor option key=value (repeatable)")
	cmd.Flags().StringVar(&pf.out, "out", "", "output file, or output directory when processing a directory")
	cmd.Flags().IntVar(&pf.jobs, "jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().StringVar(&pf.ui, "ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().BoolVar(&pf.noCache, "no-cache", false, "bypass the disk cache")
	return cmd
}

// parseOptionPairs turns repeated key=value flags into a map.
// A bare key means "true", which matches failOnWarning usage.
func parseOptionPairs(pairs []string) (map[string]string, error) {
	opts := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid option %q: empty key", pair)
		}
		if !ok {
			val = "true"
		}
		opts[key] = strings.TrimSpace(val)
	}
	return opts, nil
}

func (st *appState) newProcessor(fsys afero.Fs, noCache bool) *processor.Processor {
	cfg := processor.Config{
		NameOverride:     st.cfg.Processor.NameOverride,
		AdditionalParams: append([]string(nil), st.cfg.Processor.AdditionalParams...),
		MaxDiagnostics:   st.maxDiag,
	}
	if strings.EqualFold(st.cfg.Processor.Formatting, "pretty") {
		cfg.AdditionalParams = append([]string{"--formatting=PRETTY_PRINT"}, cfg.AdditionalParams...)
	}

	var cache *processor.DiskCache
	if !noCache && !st.cfg.Cache.Disabled {
		dir := st.cfg.Cache.Dir
		var err error
		if dir == "" {
			dir, err = processor.DefaultCacheDir("jsfront")
		}
		if err == nil {
			cache, err = processor.OpenDiskCache(fsys, dir)
		}
		if err != nil {
			st.log.WithError(err).Warn("disk cache disabled")
			cache = nil
		}
	}
	return processor.New(cfg, cache, st.log)
}

func (st *appState) runProcess(cmd *cobra.Command, fsys afero.Fs, path string, pf processFlags) error {
	libType, err := processor.ParseLibraryType(pf.libType)
	if err != nil {
		return err
	}
	opts, err := parseOptionPairs(pf.options)
	if err != nil {
		return err
	}
	uiOn, err := readUIMode(pf.ui)
	if err != nil {
		return err
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	proc := st.newProcessor(fsys, pf.noCache)
	st.log.WithField("name", proc.Name()).Debug("processing")

	if !info.IsDir() {
		res, err := proc.Run(cmd.Context(), libType, processor.FileScript{Fs: fsys, Path: path}, opts)
		if err != nil {
			return err
		}
		if !res.Handled {
			st.log.Infof("%s is not handled by %s", libType, proc.Name())
			return nil
		}
		st.reportDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
		if !res.OK {
			return fmt.Errorf("%s: %d error(s)", path, res.Errors)
		}
		return st.writeOutput(cmd, fsys, pf.out, res.Output)
	}

	outcomes, err := st.processDir(cmd.Context(), fsys, proc, path, libType, opts, pf.jobs, uiOn)
	if err != nil {
		return err
	}
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			st.log.WithField("file", o.Path).WithError(o.Err).Error("process failed")
			failed++
			continue
		}
		if !o.Result.Handled {
			continue
		}
		st.reportDiagnostics(cmd.ErrOrStderr(), o.Result.Bag, o.Result.FileSet)
		if !o.Result.OK {
			failed++
			continue
		}
		if err := st.writeDirOutput(cmd, fsys, path, pf.out, o.Path, o.Result.Output); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}

func (st *appState) processDir(ctx context.Context, fsys afero.Fs, proc *processor.Processor, dir string, libType processor.LibraryType, opts map[string]string, jobs int, uiOn uiMode) ([]processor.FileOutcome, error) {
	if !shouldUseTUI(uiOn) || st.quiet {
		return proc.RunDir(ctx, fsys, dir, libType, opts, jobs, nil)
	}
	files, err := driver.ListSources(fsys, dir)
	if err != nil {
		return nil, err
	}
	return runProcessWithUI(ctx, "process "+dir, files, func(events chan<- driver.Event) ([]processor.FileOutcome, error) {
		return proc.RunDir(ctx, fsys, dir, libType, opts, jobs, events)
	})
}

func (st *appState) writeOutput(cmd *cobra.Command, fsys afero.Fs, out string, data []byte) error {
	if out == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, out, data, 0o644)
}

// writeDirOutput mirrors path under outDir, or prints it with a header
// when no output directory was given.
func (st *appState) writeDirOutput(cmd *cobra.Command, fsys afero.Fs, dir, outDir, path string, data []byte) error {
	if outDir == "" {
		w := cmd.OutOrStdout()
		if !st.quiet {
			if _, err := fmt.Fprintf(w, "== %s ==\n", path); err != nil {
				return err
			}
		}
		_, err := w.Write(append(data, '\n'))
		return err
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return err
	}
	return st.writeOutput(cmd, fsys, filepath.Join(outDir, rel), data)
}
