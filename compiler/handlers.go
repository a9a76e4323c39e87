package compiler

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// handlerShape describes how a handler's captured value is exposed to
// action bodies and structural mappings, keyed by the operator of the
// node the handler is attached to (spec §4.2.2).
type handlerShape struct {
	// single indicates a scalar capture: a structural numeric mapping
	// collapses to the value itself regardless of n (spec: "all other
	// ops").
	single bool

	// offset is added to a structural mapping's n before indexing
	// into the captured array (S: -1, R: 0).
	offset int
}

func shapeFor(op Op, numParts int) handlerShape {
	switch op {
	case OpSeq:
		return handlerShape{single: false, offset: -1}
	case OpRegex:
		return handlerShape{single: false, offset: 0}
	default:
		return handlerShape{single: true}
	}
}

// compileHandlerApplication emits the Go expression that runs h over a
// successful result held in resultVar (a *ϡresult), per spec §4.2.2.
// op is the operator of the node h is attached to (it determines the
// functional-handler parameter shape); numParts is the sequence arity
// when op == OpSeq.
func compileHandlerApplication(ctx *Context, op Op, h *Handler, resultVar string, numParts int) (string, error) {
	if h.IsStructural() {
		shape := shapeFor(op, numParts)
		source := resultVar + ".value"
		expr, err := compileStructuralHandler(h.Mapping, source, shape.single, shape.offset)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ϡreplaceValue(%s, %s)", resultVar, expr), nil
	}
	return compileFunctionalHandler(op, h.Func, numParts, resultVar)
}

// compileFunctionalHandler wraps h.Func's opaque action body in a
// closure whose parameter shape matches op (spec §4.2.2):
//
//   - S: (loc, whole []interface{}, v1, v2, ..., vN) -- whole is $0,
//     each element is $1..$N.
//   - R: (loc, v0..v9) -- the full match and up to nine capture
//     groups; excess reserved parameters are nil.
//   - otherwise: (loc, v0, v1) -- both equal the single captured value.
func compileFunctionalHandler(op Op, body string, numParts int, resultVar string) (string, error) {
	switch op {
	case OpSeq:
		var decls strings.Builder
		for i := 1; i <= numParts; i++ {
			fmt.Fprintf(&decls, "v%d := ϡelemAt(elems, %d)\n_ = v%d\n", i, i-1, i)
		}
		wrapper := fmt.Sprintf(
			"ϡmakeResultHandlerSeq(func(loc ϡloc, v0 []interface{}, elems ...interface{}) (interface{}, error) {\n%s%s\n})",
			decls.String(), body)
		return fmt.Sprintf("%s(%s)", wrapper, resultVar), nil

	case OpRegex:
		var decls strings.Builder
		for i := 0; i <= 9; i++ {
			fmt.Fprintf(&decls, "v%d := groups[%d]\n_ = v%d\n", i, i, i)
		}
		wrapper := fmt.Sprintf(
			"ϡmakeResultHandlerR(func(loc ϡloc, groups ...interface{}) (interface{}, error) {\n%s%s\n})",
			decls.String(), body)
		return fmt.Sprintf("%s(%s)", wrapper, resultVar), nil

	default:
		wrapper := fmt.Sprintf(
			"ϡmakeResultHandler(func(loc ϡloc, v0, v1 interface{}) (interface{}, error) {\n%s\n})",
			body)
		return fmt.Sprintf("%s(%s)", wrapper, resultVar), nil
	}
}

// compileStructuralHandler translates a structural mapping into a Go
// expression over source (spec §4.2.2/§3.2):
//
//   - string -> a literal (its JSON-encoded form).
//   - number n -> source itself when single, else source[n+offset].
//   - []any -> a recursively-built array literal.
//   - anything else -> a compile error.
func compileStructuralHandler(mapping any, source string, single bool, offset int) (string, error) {
	switch v := mapping.(type) {
	case string:
		return jsonString(v), nil

	case nil, bool:
		return "", newCompileError("", "invalid structural handler mapping: %v is not a string, number or array", v)

	case []any:
		elems := make([]string, len(v))
		for i, sub := range v {
			e, err := compileStructuralHandler(sub, source, single, offset)
			if err != nil {
				return "", err
			}
			elems[i] = e
		}
		return fmt.Sprintf("[]interface{}{%s}", strings.Join(elems, ", ")), nil

	default:
		n, err := cast.ToIntE(v)
		if err != nil {
			return "", newCompileError("", "invalid structural handler mapping: %v is not a string, number or array", v)
		}
		if single {
			return source, nil
		}
		return fmt.Sprintf("ϡindex(%s, %d)", source, n+offset), nil
	}
}
