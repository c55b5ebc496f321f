package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
	"jsfront/internal/observ"
)

func newParseCmd(st *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.js|directory>",
		Short: "Parse a JavaScript file or directory and output the AST",
		Long:  `Parse analyzes a JavaScript file, or every *.js/*.mjs/*.cjs file in a directory, and outputs the syntax tree`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			jobs, err := cmd.Flags().GetInt("jobs")
			if err != nil {
				return fmt.Errorf("failed to get jobs flag: %w", err)
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = st.cfg.Parse.Jobs
			}
			return st.runParse(cmd, afero.NewOsFs(), args[0], format, jobs)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func (st *appState) driverOptions(jobs int) (driver.Options, error) {
	opts := driver.Options{
		Language:       st.cfg.Language(),
		MaxDiagnostics: st.maxDiag,
		Jobs:           jobs,
		Timings:        st.timings,
		Log:            st.log,
	}
	if !st.cfg.Cache.Disabled && st.cfg.Cache.MemoryEntries > 0 {
		cache, err := driver.NewCache(st.cfg.Cache.MemoryEntries)
		if err != nil {
			return opts, err
		}
		opts.Cache = cache
	}
	return opts, nil
}

func (st *appState) runParse(cmd *cobra.Command, fsys afero.Fs, path, format string, jobs int) error {
	switch format {
	case "pretty", "json", "tree":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := st.driverOptions(jobs)
	if err != nil {
		return err
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var results []*driver.ParseResult
	if info.IsDir() {
		results, err = driver.ParseDir(cmd.Context(), fsys, path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		res, err := driver.Parse(fsys, path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = []*driver.ParseResult{res}
	}

	var timing observ.Report
	failed := 0
	for _, r := range results {
		st.reportDiagnostics(cmd.ErrOrStderr(), r.Bag, r.FileSet)
		if r.Err != nil {
			failed++
		}
		if r.Timing != nil {
			timing.Merge(*r.Timing)
		}
	}

	if err := st.renderASTs(cmd.OutOrStdout(), results, format, info.IsDir()); err != nil {
		return err
	}
	st.reportTimings(cmd.ErrOrStderr(), timing)

	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

func (st *appState) renderASTs(w io.Writer, results []*driver.ParseResult, format string, many bool) error {
	if format == "json" {
		if !many {
			r := results[0]
			if r.Builder == nil {
				return errors.New("no syntax tree")
			}
			return diagfmt.FormatASTJSON(w, r.Builder, r.FileID)
		}
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			if r.Builder == nil {
				output[r.Path] = nil
				continue
			}
			node, err := diagfmt.BuildASTOutput(r.Builder, r.FileID)
			if err != nil {
				return err
			}
			output[r.Path] = &node
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	treeOpts := diagfmt.TreeOpts{Color: st.color, Spans: format == "tree"}
	for idx, r := range results {
		if many && !st.quiet {
			if _, err := fmt.Fprintf(w, "== %s ==\n", r.Path); err != nil {
				return err
			}
		}
		if r.Builder != nil {
			if err := diagfmt.FormatASTTree(w, r.Builder, r.FileID, r.FileSet, treeOpts); err != nil {
				return err
			}
		}
		if many && !st.quiet && idx < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}
