package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the root CLI's small settings file (SPEC_FULL.md §1.2):
// defaults for `pegcraft compile`'s output/package name and the
// color/log-level toggles used by `repl`. There is no
// remote config and no hot reload -- this is a CLI, not a server.
type config struct {
	// OutputFile is the default -o target for `compile` when unset on
	// the command line. Empty means stdout.
	OutputFile string `yaml:"outputFile"`

	// PackageName is the default package clause for generated
	// artifacts (compiler.Options.PackageName).
	PackageName string `yaml:"packageName"`

	// Color forces (true) or suppresses (false) colorized diagnostic
	// output regardless of the isatty check; nil defers to isatty.
	Color *bool `yaml:"color"`

	// LogLevel is a zerolog level name ("debug", "info", "warn",
	// "error", "disabled"); empty defaults to "info".
	LogLevel string `yaml:"logLevel"`
}

// defaultConfigPath is the teacher-style fixed dotfile name searched
// for in the current directory; pegcraft does not walk up the parent
// tree looking for it, keeping config resolution a one-line check.
const defaultConfigPath = ".pegcraft.yaml"

// loadConfig reads defaultConfigPath if present, returning a zero
// config (all defaults) when the file does not exist. Any other read
// or parse error is returned to the caller.
func loadConfig() (*config, error) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &config{}, nil
		}
		return nil, err
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
