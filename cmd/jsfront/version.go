package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jsfront/internal/version"
)

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var opts versionOptions
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show jsfront build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.format = strings.ToLower(opts.format)
			if full {
				opts.showHash, opts.showDate = true, true
			}
			switch opts.format {
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), opts)
				return nil
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), opts)
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
		},
	}
	cmd.Flags().BoolVar(&opts.showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&opts.showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "show all build metadata")
	cmd.Flags().StringVar(&opts.format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderVersionPretty(out io.Writer, opts versionOptions) {
	fmt.Fprintf(out, "jsfront %s\n", version.Colored())
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, opts versionOptions) error {
	payload := versionPayload{Tool: "jsfront", Version: strings.TrimSpace(version.Version)}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
