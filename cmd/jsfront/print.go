package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/driver"
	"jsfront/internal/printer"
)

type printFlags struct {
	mode   string
	indent int
	tabs   bool
	check  bool
}

func newPrintCmd(st *appState) *cobra.Command {
	var pf printFlags
	cmd := &cobra.Command{
		Use:   "print [flags] file.js",
		Short: "Parse a JavaScript file and print it back",
		Long:  `Print re-emits a parsed file either pretty-printed or compact (whitespace-only minification)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.runPrint(cmd, afero.NewOsFs(), args[0], pf)
		},
	}
	cmd.Flags().StringVar(&pf.mode, "mode", "pretty", "output mode (pretty|compact)")
	cmd.Flags().IntVar(&pf.indent, "indent", 2, "indent width for pretty mode")
	cmd.Flags().BoolVar(&pf.tabs, "tabs", false, "indent with tabs in pretty mode")
	cmd.Flags().BoolVar(&pf.check, "check", false, "re-parse the output and fail if it does not round-trip")
	return cmd
}

func (st *appState) runPrint(cmd *cobra.Command, fsys afero.Fs, path string, pf printFlags) error {
	mode, err := printer.ParseMode(pf.mode)
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(1)
	if err != nil {
		return err
	}
	res, err := driver.Parse(fsys, path, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	st.reportDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet)
	if res.Err != nil {
		return res.Err
	}

	popt := printer.Options{Mode: mode, IndentWidth: pf.indent, UseTabs: pf.tabs}
	out, err := printer.Print(res.Builder, res.FileID, popt)
	if err != nil {
		return err
	}
	if pf.check {
		if ok, msg := printer.CheckRoundTrip(cmd.Context(), res.Builder, res.FileID, popt); !ok {
			return fmt.Errorf("round trip failed: %s", msg)
		}
		st.log.WithField("file", path).Info("round trip ok")
	}
	if res.Timing != nil {
		st.reportTimings(cmd.ErrOrStderr(), *res.Timing)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
