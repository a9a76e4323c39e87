package compiler

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeForSeqHasOffsetMinusOne(t *testing.T) {
	s := shapeFor(OpSeq, 3)
	assert.False(t, s.single)
	assert.Equal(t, -1, s.offset)
}

func TestShapeForRegexHasOffsetZero(t *testing.T) {
	s := shapeFor(OpRegex, 0)
	assert.False(t, s.single)
	assert.Equal(t, 0, s.offset)
}

func TestShapeForEverythingElseIsSingle(t *testing.T) {
	for _, op := range []Op{OpLiteral, OpChoice, OpStar, OpPlus, OpOpt, OpText, OpAnd, OpNot} {
		s := shapeFor(op, 0)
		assert.True(t, s.single, "op %q should collapse to a single scalar", op)
	}
}

func TestCompileStructuralHandlerString(t *testing.T) {
	src, err := compileStructuralHandler("hello", "r.value", true, 0)
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, src)
}

func TestCompileStructuralHandlerNumberSingle(t *testing.T) {
	src, err := compileStructuralHandler(0, "r.value", true, 0)
	require.NoError(t, err)
	assert.Equal(t, "r.value", src)
}

func TestCompileStructuralHandlerNumberWithOffset(t *testing.T) {
	// Example from spec §4.2.2: a 2-element sequence reordered [2, 1]
	// means indices 1 and 0 with offset -1.
	src, err := compileStructuralHandler(2.0, "r.value", false, -1)
	require.NoError(t, err)
	assert.Equal(t, "ϡindex(r.value, 1)", src)

	src, err = compileStructuralHandler(1.0, "r.value", false, -1)
	require.NoError(t, err)
	assert.Equal(t, "ϡindex(r.value, 0)", src)
}

func TestCompileStructuralHandlerNestedArray(t *testing.T) {
	mapping := []any{2.0, "sep", 1.0}
	src, err := compileStructuralHandler(mapping, "r.value", false, -1)
	require.NoError(t, err)
	assert.Equal(t, `[]interface{}{ϡindex(r.value, 1), "sep", ϡindex(r.value, 0)}`, src)
}

func TestCompileStructuralHandlerRejectsInvalidMapping(t *testing.T) {
	_, err := compileStructuralHandler(map[string]int{"a": 1}, "r.value", false, 0)
	require.Error(t, err)
}

func TestCompileHandlerApplicationStructuralWrapsReplaceValue(t *testing.T) {
	ctx := NewContext()
	h := StructHandler(0.0)
	src, err := compileHandlerApplication(ctx, OpLiteral, h, "r", 0)
	require.NoError(t, err)
	assert.Equal(t, "ϡreplaceValue(r, r.value)", src)
}

func TestCompileFunctionalHandlerSeqShapeDeclaresNumberedLocals(t *testing.T) {
	src, err := compileFunctionalHandler(OpSeq, "return v1, nil", 2, "r")
	require.NoError(t, err)
	assert.Contains(t, src, "v1 := ϡelemAt(elems, 0)")
	assert.Contains(t, src, "v2 := ϡelemAt(elems, 1)")
	assert.Contains(t, src, "ϡmakeResultHandlerSeq(func(loc ϡloc, v0 []interface{}, elems ...interface{}) (interface{}, error) {")
	assert.Contains(t, src, "return v1, nil")
}

func TestCompileFunctionalHandlerRegexShapeDeclaresTenGroups(t *testing.T) {
	src, err := compileFunctionalHandler(OpRegex, "return v1, nil", 0, "r")
	require.NoError(t, err)
	for i := 0; i <= 9; i++ {
		assert.Contains(t, src, "groups["+strconv.Itoa(i)+"]")
	}
}

func TestCompileFunctionalHandlerDefaultShapeHasV0V1(t *testing.T) {
	src, err := compileFunctionalHandler(OpStar, "return v0, nil", 0, "r")
	require.NoError(t, err)
	assert.Contains(t, src, "ϡmakeResultHandler(func(loc ϡloc, v0, v1 interface{}) (interface{}, error) {")
}
