package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateCountsLinesAndColumns(t *testing.T) {
	input := "ab\ncd\r\nef\rgh"
	assert.Equal(t, Position{Line: 1, Column: 1}, locate(input, 0))
	assert.Equal(t, Position{Line: 1, Column: 3}, locate(input, 2))
	assert.Equal(t, Position{Line: 2, Column: 1}, locate(input, 3))
	assert.Equal(t, Position{Line: 3, Column: 1}, locate(input, 7))
	assert.Equal(t, Position{Line: 4, Column: 1}, locate(input, 10))
}

func TestHintReturnsNextNonSpaceRun(t *testing.T) {
	assert.Equal(t, "foo", hint("foo bar", 0))
	assert.Equal(t, " ", hint("foo bar", 3))
	assert.Equal(t, "bar", hint("foo bar", 4))
}

func TestHintReturnsEOFAtEndOfInput(t *testing.T) {
	assert.Equal(t, "EOF", hint("foo", 3))
}

func TestDiagnosticErrorFailedToParseFormat(t *testing.T) {
	d := &Diagnostic{
		Filename: "grammar.peg",
		Pos:      Position{Line: 2, Column: 5},
		Failed:   true,
		Expected: []string{`"foo"`, "/[0-9]+/"},
		Hint:     "bar",
	}
	want := "grammar.peg:2:5 Failed to parse\n" +
		"Expected:\n" +
		`    "foo"` + "\n" +
		"    /[0-9]+/\n" +
		"Found: bar"
	assert.Equal(t, want, d.Error())
}

func TestDiagnosticErrorUnconsumedInputFormat(t *testing.T) {
	d := &Diagnostic{
		Filename:   "grammar.peg",
		Pos:        Position{Line: 1, Column: 4},
		Failed:     false,
		Unconsumed: "rest",
	}
	want := "grammar.peg:1:4 Unconsumed input at 1:4\n\nrest"
	assert.Equal(t, want, d.Error())
}
