package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pegcraft/pegcraft/compiler"
)

// loadRuleTable reads a compiler.RuleTable from filename (or stdin,
// when filename is ""), accepting either YAML or JSON -- JSON is a
// syntactic subset of YAML 1.2, so gopkg.in/yaml.v3's decoder handles
// both without a separate code path, the way the teacher's `input`
// helper in main.go accepts either a file or stdin uniformly.
func loadRuleTable(filename string) (*compiler.RuleTable, error) {
	var (
		data []byte
		err  error
	)
	if filename == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}

	var table compiler.RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing rule table: %w", err)
	}
	if len(table.Rules) == 0 {
		return nil, fmt.Errorf("rule table %q has no rules", displayName(filename))
	}
	return &table, nil
}

func displayName(filename string) string {
	if filename == "" {
		return "stdin"
	}
	return filename
}
