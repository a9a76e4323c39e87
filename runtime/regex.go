package runtime

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Regex wraps a compiled sticky regex: one that matches only at a
// given starting position and never scans forward looking for a
// match, mirroring the JS RegExp "y" (sticky) flag combined with "u"
// (unicode) and "s" (dot-all) described in spec §6.4.
//
// The Go standard library's regexp package has no anchored-at-offset
// primitive -- FindStringIndex on a suffix of the input would still
// need a post-hoc check that the match starts at offset 0, and would
// not by itself prevent the RE2 engine from internally trying other
// start positions first. regexp2 supports the \G anchor (match must
// begin exactly where scanning started), which this type uses to get
// true sticky semantics instead of an approximation.
type Regex struct {
	Source string
	re     *regexp2.Regexp
}

// CompileRegex compiles pattern with the fixed flag set required by
// spec §6.4: sticky (via a \G anchor wrapped around the pattern),
// unicode character classes (regexp2's default), and dot-matches-all
// (regexp2.Singleline).
func CompileRegex(pattern string) (*Regex, error) {
	re, err := regexp2.Compile(`\G(?:`+pattern+`)`, regexp2.Singleline)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return &Regex{Source: pattern, re: re}, nil
}

// MustCompileRegex is CompileRegex, panicking on error. Used for
// regexes known to be valid ahead of time, such as the diagnostic hint
// regex.
func MustCompileRegex(pattern string) *Regex {
	re, err := CompileRegex(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// match attempts a match anchored exactly at pos; it returns the full
// match and capture groups (full match at index 0), or nil.
func (r *Regex) match(input string, pos int) []string {
	m, err := r.re.FindStringMatchStartingAt(input, pos)
	if err != nil || m == nil || m.Index != pos {
		return nil
	}
	groups := m.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			out[i] = ""
			continue
		}
		out[i] = g.String()
	}
	return out
}

// RX is the $R atom (spec §4.1.2): on success Value is the full match
// array (index 0 is the whole match, subsequent indices are capture
// groups); on failure it records (pos, regex) via fail.
func RX(re *Regex) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		groups := re.match(st.Input, st.Pos)
		if groups == nil {
			ps.fail(st.Pos, "/"+re.Source+"/")
			return nil
		}
		value := make([]any, len(groups))
		for i, g := range groups {
			value[i] = g
		}
		return succeed(st.Pos, st.Pos+len(groups[0]), value)
	}
}

// DefaultRegexTransform wraps a regex Parser so that, absent a more
// specific handler, its natural match-array value collapses to the
// full-match string alone (spec §4.2.1's "default regex transform").
func DefaultRegexTransform(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		r := fn(ps, st)
		if r == nil {
			return nil
		}
		if arr, ok := r.Value.([]any); ok && len(arr) > 0 {
			r.Value = arr[0]
		}
		return r
	}
}
