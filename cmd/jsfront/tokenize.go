package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"jsfront/internal/diagfmt"
	"jsfront/internal/driver"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

func newTokenizeCmd(st *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.js",
		Short: "Tokenize a JavaScript file",
		Long:  `Tokenize breaks a JavaScript file into tokens, trivia included`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			return st.runTokenize(cmd, afero.NewOsFs(), args[0], format)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (st *appState) runTokenize(cmd *cobra.Command, fsys afero.Fs, path, format string) error {
	var render func(io.Writer, []token.Token, *source.FileSet) error
	switch format {
	case "pretty":
		render = diagfmt.FormatTokensPretty
	case "json":
		render = diagfmt.FormatTokensJSON
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(fsys, path, st.maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	st.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet)
	if err := render(cmd.OutOrStdout(), result.Tokens, result.FileSet); err != nil {
		return err
	}
	if result.Err != nil {
		return result.Err
	}
	return nil
}
