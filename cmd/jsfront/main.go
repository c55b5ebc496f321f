package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsfront/internal/config"
	"jsfront/internal/prof"
	"jsfront/internal/version"
)

// appState is filled by the root PersistentPreRunE and read by subcommands.
type appState struct {
	cfg     config.Config
	log     *logrus.Logger
	color   bool
	quiet   bool
	timings bool
	maxDiag int
	prof    *prof.Session
}

func newRootCmd() *cobra.Command {
	st := &appState{}
	root := &cobra.Command{
		Use:           "jsfront",
		Short:         "JavaScript front-end: lexer, parser, printer and clientlib processor",
		Long:          `jsfront tokenizes and parses modern JavaScript, prints it back pretty or compact, and processes clientlib scripts with min:gcc style options`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return st.prof.Stop()
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "path to jsfront.toml (default: search upwards from the working directory)")
	pf.String("log-level", "", "log level (panic|fatal|error|warning|info|debug|trace)")
	pf.String("log-format", "", "log format (text|json)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("trace", "", "write a runtime trace to this file")

	root.AddCommand(
		newTokenizeCmd(st),
		newParseCmd(st),
		newPrintCmd(st),
		newFmtCmd(st),
		newProcessCmd(st),
		newVersionCmd(),
	)
	return root
}

func (st *appState) init(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")

	cfg, err := config.Load(config.LoadOptions{File: configPath, StartDir: "."})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		cfg.Parse.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		log.WithField("path", cfg.Path).Debug("config loaded")
	}

	colorFlag, _ := flags.GetString("color")
	useColor, err := readColorMode(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return err
	}

	st.cfg = cfg
	st.log = log
	st.color = useColor
	st.quiet, _ = flags.GetBool("quiet")
	st.timings, _ = flags.GetBool("timings")
	st.maxDiag = cfg.Parse.MaxDiagnostics

	var popts prof.Options
	popts.CPU, _ = flags.GetString("cpu-profile")
	popts.Mem, _ = flags.GetString("mem-profile")
	popts.Trace, _ = flags.GetString("trace")
	if popts.Enabled() {
		st.prof, err = prof.Start(afero.NewOsFs(), popts)
		if err != nil {
			return err
		}
	}
	return nil
}

func readColorMode(value string, tty bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
