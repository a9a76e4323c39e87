package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, p Parser, input string) (Maybe, *ParserState) {
	t.Helper()
	ps := NewParserState()
	r := p(ps, ParseState{Input: input})
	return r, ps
}

func TestLitSuccessAndFailure(t *testing.T) {
	r, ps := run(t, Lit("abc"), "abcdef")
	require.NotNil(t, r)
	assert.Equal(t, "abc", r.Value)
	assert.Equal(t, 3, r.Pos)
	assert.Equal(t, Loc{Pos: 0, Length: 3}, r.Loc)

	r, ps = run(t, Lit("xyz"), "abcdef")
	assert.Nil(t, r)
	assert.Equal(t, 0, ps.MaxFailPos())
	assert.Contains(t, ps.FailExpected(), `"xyz"`)
}

func TestSeqThreadsPositionAndCollectsValues(t *testing.T) {
	p := Seq(Lit("a"), Lit("b"), Lit("c"))
	r, _ := run(t, p, "abc")
	require.NotNil(t, r)
	assert.Equal(t, []any{"a", "b", "c"}, r.Value)
	assert.Equal(t, 3, r.Pos)
}

func TestSeqFailsWholeOnFirstSubFailure(t *testing.T) {
	p := Seq(Lit("a"), Lit("b"))
	r, _ := run(t, p, "axy")
	assert.Nil(t, r)
}

func TestChoiceTriesInOrder(t *testing.T) {
	p := Choice(Lit("a"), Lit("b"))
	r, _ := run(t, p, "b")
	require.NotNil(t, r)
	assert.Equal(t, "b", r.Value)

	r, ps := run(t, p, "c")
	assert.Nil(t, r)
	assert.ElementsMatch(t, []string{`"a"`, `"b"`}, ps.FailExpected())
}

func TestChoiceOrderMatters(t *testing.T) {
	// "<" before "<=" means "<=" is unreachable, by design (spec's
	// BadChoiceExpr example).
	p := Choice(Lit("<"), Lit("<="))
	r, _ := run(t, p, "<=")
	require.NotNil(t, r)
	assert.Equal(t, "<", r.Value)
	assert.Equal(t, 1, r.Pos)
}

func TestStarAlwaysSucceedsAndStopsOnZeroWidth(t *testing.T) {
	p := Star(Lit("a"))
	r, _ := run(t, p, "aaab")
	require.NotNil(t, r)
	assert.Equal(t, []any{"a", "a", "a"}, r.Value)
	assert.Equal(t, 3, r.Pos)

	// Star(Lit("")) must terminate: the zero-width match is not
	// appended and the loop stops immediately.
	r, _ = run(t, Star(Lit("")), "xyz")
	require.NotNil(t, r)
	assert.Nil(t, r.Value)
	assert.Equal(t, 0, r.Pos)
}

func TestStarOnNoMatchSucceedsEmpty(t *testing.T) {
	r, _ := run(t, Star(Lit("a")), "zzz")
	require.NotNil(t, r)
	assert.Nil(t, r.Value)
	assert.Equal(t, 0, r.Pos)
}

func TestPlusRequiresFirstMatch(t *testing.T) {
	r, _ := run(t, Plus(Lit("a")), "aab")
	require.NotNil(t, r)
	assert.Equal(t, []any{"a", "a"}, r.Value)

	r, _ = run(t, Plus(Lit("a")), "bbb")
	assert.Nil(t, r)
}

func TestOptFallsBackToZeroWidthSuccess(t *testing.T) {
	r, _ := run(t, Opt(Lit("a")), "b")
	require.NotNil(t, r)
	assert.Nil(t, r.Value)
	assert.Equal(t, 0, r.Pos)

	r, _ = run(t, Opt(Lit("a")), "a")
	require.NotNil(t, r)
	assert.Equal(t, "a", r.Value)
	assert.Equal(t, 1, r.Pos)
}

func TestTextCapturesLiteralSpan(t *testing.T) {
	p := Text(Plus(Lit("a")))
	r, _ := run(t, p, "aaab")
	require.NotNil(t, r)
	assert.Equal(t, "aaa", r.Value)
}

func TestAndIsZeroWidthAndDoesNotConsume(t *testing.T) {
	p := Seq(And(Lit("a")), Lit("a"))
	r, _ := run(t, p, "a")
	require.NotNil(t, r)
	assert.Equal(t, []any{nil, "a"}, r.Value)
	assert.Equal(t, 1, r.Pos)

	r, _ = run(t, And(Lit("a")), "b")
	assert.Nil(t, r)
}

func TestNotIsMirrorOfAnd(t *testing.T) {
	r, _ := run(t, Not(Lit("a")), "b")
	require.NotNil(t, r)
	assert.Nil(t, r.Value)
	assert.Equal(t, 0, r.Pos)

	r, _ = run(t, Not(Lit("a")), "a")
	assert.Nil(t, r)
}

func TestAndOfStarAlwaysSucceeds(t *testing.T) {
	// &(x*) always succeeds, per spec §4.1.5 consequence.
	r, _ := run(t, And(Star(Lit("a"))), "zzz")
	require.NotNil(t, r)
}

func TestNotOfStarAlwaysFails(t *testing.T) {
	// !(x*) always fails, per spec §4.1.5 consequence.
	r, _ := run(t, Not(Star(Lit("a"))), "zzz")
	assert.Nil(t, r)
}

func TestResultPosInvariant(t *testing.T) {
	r, _ := run(t, Seq(Lit("ab"), Lit("cd")), "abcd")
	require.NotNil(t, r)
	assert.Equal(t, r.Loc.Pos+r.Loc.Length, r.Pos)
}

func TestFailRecordsRightmostPosition(t *testing.T) {
	p := Seq(Lit("a"), Lit("b"), Lit("c"))
	_, ps := run(t, p, "abd")
	assert.Equal(t, 2, ps.MaxFailPos())
	assert.Equal(t, []string{`"c"`}, ps.FailExpected())
}
