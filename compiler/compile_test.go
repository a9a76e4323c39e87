package compiler

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleGrammar builds a tiny two-rule grammar exercising literals,
// regex, sequence, repetition, rule references and both handler kinds,
// so that Compile's output covers interning and both handler shapes.
func sampleGrammar() *RuleTable {
	digits := Re(`[0-9]+`)
	pair := SeqExpr(Ident("Digits"), Lit(","), Ident("Digits")).
		WithHandler(StructHandler([]any{1.0, 3.0}))

	return &RuleTable{
		Rules: []*Rule{
			{Name: "Start", DisplayName: "start", Expr: pair},
			{Name: "Digits", Expr: Star(digits), Handler: FuncHandler("return v0, nil")},
		},
	}
}

func TestCompileProducesParseableGoSource(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{PackageName: "gen"})
	require.NoError(t, err)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "gen.go", src, parser.AllErrors)
	assert.NoError(t, err, "generated artifact must be syntactically valid Go:\n%s", src)
}

func TestCompileEmitsPackageClauseAndImports(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{PackageName: "gen"})
	require.NoError(t, err)
	assert.Contains(t, src, "package gen\n")
	assert.Contains(t, src, `"github.com/dlclark/regexp2"`)
}

func TestCompileDefaultsPackageNameToMain(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "package main\n")
}

func TestCompileEmbedsRuntimePreambleVerbatim(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "func ϡref(name string) ϡparser {")
}

func TestCompileInitializesDispatcherOnceAtInit(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, "func init() { ϡrules = ϡtable }")
}

func TestCompileEmitsInternedDeclsBeforeRules(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, `var ϡL0 = ϡL(",")`)
	assert.Contains(t, src, `var ϡR0 = ϡR(ϡcompileRegex("[0-9]+"))`)
	assert.Less(t, strings.Index(src, `var ϡR0 = `), strings.Index(src, "func ϡrule_Start("))
}

func TestCompileEmitsTableEntryPerRule(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, `"Start": ϡrule_Start,`)
	assert.Contains(t, src, `"Digits": ϡrule_Digits,`)
}

func TestCompileExposesParseBoundToStartRule(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{})
	require.NoError(t, err)
	assert.Contains(t, src, `func Parse(filename string, input string) (interface{}, error) {`)
	assert.Contains(t, src, `return ϡparse(ϡtable, "Start", filename, input)`)
}

func TestCompileRejectsEmptyRuleTable(t *testing.T) {
	_, err := Compile(&RuleTable{}, Options{})
	require.Error(t, err)
}

func TestCompileTypesOptionUsesAnyAlias(t *testing.T) {
	src, err := Compile(sampleGrammar(), Options{Types: true})
	require.NoError(t, err)
	assert.Contains(t, src, `func Parse(filename string, input string) (any, error) {`)
}
