package runtime

import (
	"fmt"
	"strings"
)

var hintRegex = MustCompileRegex(`\S+|[^\S]+|$`)

// Position is a 1-based line/column pair, counted in code units of the
// input string (spec's Non-goals explicitly exclude Unicode
// grapheme-level positions).
type Position struct {
	Line   int
	Column int
}

// locate computes the 1-based line/column of pos in input, counting
// newline sequences \n, \r\n or \r.
func locate(input string, pos int) Position {
	line, col := 1, 1
	i := 0
	for i < pos && i < len(input) {
		switch input[i] {
		case '\n':
			line++
			col = 1
			i++
		case '\r':
			line++
			col = 1
			i++
			if i < len(input) && input[i] == '\n' {
				i++
			}
		default:
			col++
			i++
		}
	}
	return Position{Line: line, Column: col}
}

// hint returns the short look-ahead used in "Found:" diagnostics: the
// next run of non-space, or of space, starting at pos; "EOF" if
// nothing remains.
func hint(input string, pos int) string {
	groups := hintRegex.match(input, pos)
	if groups == nil || groups[0] == "" {
		return "EOF"
	}
	return groups[0]
}

// Diagnostic is a fatal parse-time error (spec §6.3, §7): either "no
// alternative matched at the start rule" or "input unconsumed".
type Diagnostic struct {
	Filename   string
	Pos        Position
	Failed     bool // true: "Failed to parse"; false: "Unconsumed input"
	Expected   []string
	Hint       string
	Unconsumed string
}

// Error implements the error interface, rendering exactly the format
// specified in spec §6.3.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Failed {
		fmt.Fprintf(&b, "%s:%d:%d Failed to parse\n", d.Filename, d.Pos.Line, d.Pos.Column)
		b.WriteString("Expected:\n")
		for _, e := range d.Expected {
			fmt.Fprintf(&b, "    %s\n", e)
		}
		fmt.Fprintf(&b, "Found: %s", d.Hint)
		return b.String()
	}
	fmt.Fprintf(&b, "%s:%d:%d Unconsumed input at %d:%d\n\n%s",
		d.Filename, d.Pos.Line, d.Pos.Column, d.Pos.Line, d.Pos.Column, d.Unconsumed)
	return b.String()
}
