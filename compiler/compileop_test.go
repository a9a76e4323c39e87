package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileOpRuleRefUsesSharedDispatcher(t *testing.T) {
	ctx := NewContext()
	src, err := compileOp(ctx, Ident("Expr"), "", false)
	require.NoError(t, err)
	assert.Equal(t, `ϡref("Expr")`, src)
}

func TestCompileOpLiteralInternsAndEmitsExpect(t *testing.T) {
	ctx := NewContext()
	src, err := compileOp(ctx, Lit("foo"), "Ident", false)
	require.NoError(t, err)
	assert.Equal(t, `ϡEXPECT(ϡL0, "foo", "Ident")`, src)
	assert.Equal(t, []string{"foo"}, ctx.StrDefs())
}

func TestCompileOpRegexWrapsInDefaultTransformWhenRequested(t *testing.T) {
	ctx := NewContext()
	src, err := compileOp(ctx, Re("[a-z]+"), "", true)
	require.NoError(t, err)
	assert.Equal(t, `ϡdefaultRegExpTransform(ϡEXPECT(ϡR0, "/[a-z]+/", ""))`, src)
}

func TestCompileOpRegexWithoutDefaultHandlerIsBare(t *testing.T) {
	ctx := NewContext()
	src, err := compileOp(ctx, Re("[a-z]+"), "", false)
	require.NoError(t, err)
	assert.Equal(t, `ϡEXPECT(ϡR0, "/[a-z]+/", "")`, src)
}

func TestCompileOpSeqPropagatesDefaultHandlerToChildren(t *testing.T) {
	ctx := NewContext()
	e := SeqExpr(Re("a"), Re("b"))
	src, err := compileOp(ctx, e, "", true)
	require.NoError(t, err)
	assert.Equal(t,
		`ϡS(ϡdefaultRegExpTransform(ϡEXPECT(ϡR0, "/a/", "")), ϡdefaultRegExpTransform(ϡEXPECT(ϡR1, "/b/", "")))`,
		src)
}

func TestCompileOpChoicePropagatesDefaultHandlerToChildren(t *testing.T) {
	ctx := NewContext()
	e := ChoiceExpr(Re("a"), Re("b"))
	src, err := compileOp(ctx, e, "", true)
	require.NoError(t, err)
	assert.Equal(t,
		`ϡC(ϡdefaultRegExpTransform(ϡEXPECT(ϡR0, "/a/", "")), ϡdefaultRegExpTransform(ϡEXPECT(ϡR1, "/b/", "")))`,
		src)
}

func TestCompileOpUnaryDoesNotPropagateDefaultHandler(t *testing.T) {
	// Bug-compatible non-propagation (spec §4.2.1 TODO): a regex under
	// */+/?/$/&/! keeps its raw match-array value.
	ctx := NewContext()
	e := Star(Re("[a-z]+"))
	src, err := compileOp(ctx, e, "", true)
	require.NoError(t, err)
	assert.Equal(t, `ϡQ(ϡEXPECT(ϡR0, "/[a-z]+/", ""))`, src)
}

func TestCompileOpUnaryOperatorNames(t *testing.T) {
	ctx := NewContext()
	cases := []struct {
		build func(*Expr) *Expr
		want  string
	}{
		{Plus, "ϡP"},
		{Opt, "ϡE"},
		{TextExpr, "ϡTEXT"},
		{And, "ϡY"},
		{Not, "ϡN"},
	}
	for _, c := range cases {
		src, err := compileOp(ctx, c.build(Lit("a")), "", false)
		require.NoError(t, err)
		assert.Contains(t, src, c.want+"(")
	}
}

func TestCompileOpUnknownOperatorIsCompileError(t *testing.T) {
	ctx := NewContext()
	_, err := compileOp(ctx, &Expr{Op: Op("bogus")}, "", false)
	require.Error(t, err)
	_, ok := err.(*CompileError)
	assert.True(t, ok)
}

func TestRuleFuncNameMangling(t *testing.T) {
	assert.Equal(t, "ϡrule_Expr", ruleFuncName("Expr"))
}
