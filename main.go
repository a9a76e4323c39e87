// Command pegcraft compiles rule tables into standalone Go parsers and
// lets a grammar author try one out interactively, the way the
// teacher's pigeon command turns a .peg grammar into a generated
// parser package (see doc.go).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("pegcraft: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "pegcraft",
		Short:         "A parsing-combinator runtime and grammar compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "trace rule entry/exit/failure to stderr")

	cfg, err := loadConfig()
	if err != nil {
		cfg = &config{}
		fmt.Fprintln(os.Stderr, color.YellowString("pegcraft: %v (using defaults)", err))
	}

	root.AddCommand(newCompileCmd(cfg))
	root.AddCommand(newReplCmd(cfg, &debug))
	root.AddCommand(newVersionCmd())
	return root
}

// newLogger builds the zerolog.Logger backing -debug tracing, console-
// formatted the way the teacher's -debug flag prints human-readable
// trace lines rather than raw log records.
func newLogger(cfg *config, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case cfg.LogLevel != "":
		if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	useColor := !color.NoColor
	if cfg.Color != nil {
		useColor = *cfg.Color
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !useColor}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
