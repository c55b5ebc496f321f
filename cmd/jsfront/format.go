package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/driver"
	"jsfront/internal/printer"
)

type fmtFlags struct {
	check  bool
	stdout bool
	format string
	indent int
	tabs   bool
}

func newFmtCmd(st *appState) *cobra.Command {
	var ff fmtFlags
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Pretty-print JavaScript files in place",
		Long: `Fmt rewrites scripts with the pretty printer. Files with comments are
reported instead of rewritten, since comments are not carried through.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runFmt(cmd, afero.NewOsFs(), args, ff)
		},
	}
	cmd.Flags().BoolVar(&ff.check, "check", false, "check if files are properly formatted")
	cmd.Flags().BoolVar(&ff.stdout, "stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().StringVar(&ff.format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVar(&ff.indent, "indent", 2, "indent width")
	cmd.Flags().BoolVar(&ff.tabs, "tabs", false, "indent with tabs")
	return cmd
}

func (st *appState) runFmt(cmd *cobra.Command, fsys afero.Fs, paths []string, ff fmtFlags) error {
	if ff.stdout && ff.check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if ff.stdout && ff.format != "text" {
		return errors.New("fmt: --stdout is only supported with text output")
	}
	parseOpts, err := st.driverOptions(1)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), fsys, paths, driver.FormatOptions{
		Check:  ff.check,
		Stdout: ff.stdout,
		Print:  printer.Options{Mode: printer.Pretty, IndentWidth: ff.indent, UseTabs: ff.tabs},
		Parse:  parseOpts,
	})
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch ff.format {
	case "text":
		hasErrors, hasChanges = st.renderFmtText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, ff)
	case "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), results, ff.check); err != nil {
			return err
		}
		for _, r := range results {
			hasErrors = hasErrors || r.Err != nil
			hasChanges = hasChanges || r.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", ff.format)
	}

	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if ff.check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

func (st *appState) renderFmtText(out, errOut io.Writer, results []driver.FormatResult, ff fmtFlags) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		hasChanges = hasChanges || res.Changed
		switch {
		case ff.stdout:
			_, _ = out.Write(res.Formatted)
		case st.quiet || !res.Changed:
		case ff.check:
			fmt.Fprintln(out, res.Path)
		default:
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
