package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pegcraft/pegcraft/compiler"
	"github.com/pegcraft/pegcraft/runtime"
)

func newReplCmd(cfg *config, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [RULES_FILE]",
		Short: "Parse input against a rule table interactively",
		Long: `repl loads a rule table and interprets it directly against package
runtime (compiler.BuildParsers), driving the start rule against each
line the operator types -- no codegen round-trip, so a grammar can be
tried out before it's worth committing to a generated artifact.

Functional (target-language) handlers cannot run this way; repl
reports their rule names once at startup rather than applying them
silently.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infile := ""
			if len(args) == 1 {
				infile = args[0]
			}
			return runRepl(cmd, infile, cfg, *debug)
		},
	}
}

func runRepl(cmd *cobra.Command, infile string, cfg *config, debug bool) error {
	table, err := loadRuleTable(infile)
	if err != nil {
		return err
	}

	dispatch, start, skipped, err := compiler.BuildParsers(table)
	if err != nil {
		return err
	}
	if start == nil {
		return fmt.Errorf("rule table %q has no start rule", displayName(infile))
	}

	// colorable wraps stdout/stderr so ANSI escapes from fatih/color
	// render on Windows consoles too, the way the teacher's `-debug`
	// output was always plain but a REPL's colorized diagnostics
	// shouldn't regress under cmd.exe.
	out := colorable.NewColorableStdout()
	errOut := colorable.NewColorableStderr()

	useColor := isatty.IsTerminal(os.Stdout.Fd())
	if cfg.Color != nil {
		useColor = *cfg.Color
	}
	paint := color.New(color.FgRed)
	if !useColor {
		paint.DisableColor()
	}

	for _, name := range skipped {
		fmt.Fprintln(errOut, paint.Sprintf("warning: rule %q has a functional handler; repl runs it unhandled", name))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("%s> ", start.Name),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
		Stderr:          errOut,
	})
	if err != nil {
		return fmt.Errorf("starting repl: %w", err)
	}
	defer rl.Close()

	var tracer runtime.Tracer
	if debug || cfg.LogLevel == "debug" {
		tracer = newZerologTracer(newLogger(cfg, debug), "repl")
	}

	startParser := dispatch[start.Name]
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		v, perr := runtime.Parse(line, startParser, runtime.Options{Filename: "repl", Tracer: tracer})
		if perr != nil {
			fmt.Fprintln(errOut, paint.Sprint(perr.Error()))
			continue
		}
		fmt.Fprintf(out, "%#v\n", v)
	}
}
