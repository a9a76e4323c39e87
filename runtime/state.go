// Package runtime implements the parsing combinator runtime: the
// primitive parsers that compose into a recursive-descent PEG parser,
// and the failure-tracking apparatus used to produce diagnostics.
//
// Every artifact emitted by package compiler carries its own copy of
// these combinators and this failure tracking, transliterated to
// ϡ-prefixed names (see Preamble in preamble.go), rather than importing
// this package.
package runtime

import "github.com/google/uuid"

// ParseState is the immutable input/position pair threaded through a
// single combinator invocation. Combinators never mutate pos in place;
// they synthesize a new ParseState for sub-calls.
type ParseState struct {
	Input string
	Pos   int
}

// at returns the ParseState advanced to the given position.
func (s ParseState) at(pos int) ParseState {
	return ParseState{Input: s.Input, Pos: pos}
}

// Loc describes the span of a successful match.
type Loc struct {
	Pos    int
	Length int
}

// ParseResult is the outcome of a successful combinator invocation.
// The invariant Pos == Loc.Pos+Loc.Length always holds.
type ParseResult struct {
	Loc   Loc
	Pos   int
	Value any
}

// succeed builds a ParseResult spanning [start, end) with value v.
func succeed(start, end int, v any) *ParseResult {
	return &ParseResult{
		Loc:   Loc{Pos: start, Length: end - start},
		Pos:   end,
		Value: v,
	}
}

// Maybe is the result of a combinator: either a *ParseResult on
// success, or nil on failure. Absence is the sole failure signal; no
// panics or errors propagate through combinators themselves.
type Maybe = *ParseResult

// Tracer receives debug events during a parse. A nil Tracer is a
// silent no-op; fail and Traced check for a nil Tracer at every call
// site so the hot path never allocates when tracing is disabled.
type Tracer interface {
	EnterRule(name string, pos int)
	ExitRule(name string, pos int, ok bool)
	Fail(pos int, expectation string)
}

// ParserState holds the per-parse failure-tracking scratch space
// described in spec §3.4. One ParserState backs exactly one call to
// Parse; concurrent Parse calls must each construct their own.
type ParserState struct {
	ID uuid.UUID

	maxFailPos   int
	failExpected []string
	failIndex    int

	Tracer Tracer
}

// NewParserState constructs a fresh ParserState with empty
// fail-tracking scratch space. The ID is suitable for correlating
// trace lines from concurrent parser instances.
func NewParserState() *ParserState {
	return &ParserState{ID: uuid.New()}
}

// fail records an expectation at pos, per spec §4.1.11:
//   - pos < maxFailPos: discarded, a more specific failure already won.
//   - pos > maxFailPos: the expectation set resets around the new,
//     further-right position.
//   - pos == maxFailPos: the expectation is appended to the set.
//
// The backing array for failExpected is reused across calls; only
// failIndex (the logical length) is reset, per the memory discipline
// in spec §5.
func (s *ParserState) fail(pos int, expectation string) {
	switch {
	case pos < s.maxFailPos:
		return
	case pos > s.maxFailPos:
		s.maxFailPos = pos
		s.failIndex = 0
	}
	if s.failIndex < len(s.failExpected) {
		s.failExpected[s.failIndex] = expectation
	} else {
		s.failExpected = append(s.failExpected, expectation)
	}
	s.failIndex++
	if s.Tracer != nil {
		s.Tracer.Fail(pos, expectation)
	}
}

// MaxFailPos returns the rightmost position at which any atom
// recorded an expectation.
func (s *ParserState) MaxFailPos() int {
	return s.maxFailPos
}

// FailExpected returns the deduplicated expectations recorded at
// MaxFailPos, in first-seen order.
func (s *ParserState) FailExpected() []string {
	seen := make(map[string]bool, s.failIndex)
	out := make([]string, 0, s.failIndex)
	for _, e := range s.failExpected[:s.failIndex] {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Traced wraps p so that, when ps.Tracer is set, entry and exit are
// reported under name -- the rule-level counterpart of fail()'s
// automatic Tracer.Fail calls, for callers (such as package compiler's
// live interpreter) that associate a Parser with a rule name. A nil
// Tracer costs one branch per call and nothing else.
func Traced(name string, p Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		if ps.Tracer != nil {
			ps.Tracer.EnterRule(name, st.Pos)
		}
		r := p(ps, st)
		if ps.Tracer != nil {
			ps.Tracer.ExitRule(name, st.Pos, r != nil)
		}
		return r
	}
}
