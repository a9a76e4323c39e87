package compiler

import (
	"encoding/json"
	"fmt"
	"strings"
)

// jsonString renders s as a Go (and JSON) double-quoted string
// literal, used for the <json(args)>/<json(ruleName)> fragments in
// spec §4.2.1.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// compileOp recursively emits the combinator expression for e (spec
// §4.2.1). ruleName is the enclosing rule's display name (or "" when
// none was set); defaultHandler is true when e sits in a position
// where, absent any handler, a bare regex match should collapse to its
// full-match string rather than the raw match array.
func compileOp(ctx *Context, e *Expr, ruleName string, defaultHandler bool) (string, error) {
	if e.IsRuleRef() {
		// Resolved through the shared ϡrules dispatcher, not inlined,
		// per spec Design Notes §9: this is what lets forward
		// references and recursive rules compile without requiring a
		// topological ordering of the rule table.
		return fmt.Sprintf("ϡref(%s)", jsonString(e.Ref)), nil
	}

	switch e.Op {
	case OpLiteral:
		i := ctx.internLiteral(e.Literal)
		return fmt.Sprintf("ϡEXPECT(ϡL%d, %s, %s)", i, jsonString(e.Literal), jsonString(ruleName)), nil

	case OpRegex:
		i := ctx.internRegex(e.Pattern)
		expr := fmt.Sprintf("ϡEXPECT(ϡR%d, %s, %s)", i, jsonString("/"+e.Pattern+"/"), jsonString(ruleName))
		if defaultHandler {
			expr = fmt.Sprintf("ϡdefaultRegExpTransform(%s)", expr)
		}
		return expr, nil

	case OpChoice:
		return compileVariadic(ctx, "ϡC", e.Seq, ruleName, defaultHandler)

	case OpSeq:
		return compileVariadic(ctx, "ϡS", e.Seq, ruleName, defaultHandler)

	case OpStar:
		return compileUnary(ctx, "ϡQ", e.Sub, ruleName)
	case OpPlus:
		return compileUnary(ctx, "ϡP", e.Sub, ruleName)
	case OpOpt:
		return compileUnary(ctx, "ϡE", e.Sub, ruleName)
	case OpText:
		return compileUnary(ctx, "ϡTEXT", e.Sub, ruleName)
	case OpAnd:
		return compileUnary(ctx, "ϡY", e.Sub, ruleName)
	case OpNot:
		return compileUnary(ctx, "ϡN", e.Sub, ruleName)
	}

	return "", newCompileError(ruleName, "unknown AST operator %q", e.Op)
}

// compileVariadic emits `name(<child>, <child>, ...)` for ϡC/ϡS,
// recursing with the same defaultHandler flag carried to every child
// (spec §4.2.1: "/" and "S" recursion policy).
func compileVariadic(ctx *Context, name string, parts []*Expr, ruleName string, defaultHandler bool) (string, error) {
	children := make([]string, len(parts))
	for i, p := range parts {
		c, err := compileOp(ctx, p, ruleName, defaultHandler)
		if err != nil {
			return "", err
		}
		children[i] = c
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(children, ", ")), nil
}

// compileUnary emits `name(<child>)` for the one-arg combinators.
// defaultHandler deliberately does NOT propagate into the child: spec
// §4.2.1 leaves this as an unresolved TODO in the source it documents,
// and instructs implementers to match that non-propagation for
// bug-compatibility (see SPEC_FULL.md and DESIGN.md). A bare regex
// under "*"/"+"/"?"/"$"/"&"/"!" therefore keeps producing match
// arrays, not strings.
func compileUnary(ctx *Context, name string, sub *Expr, ruleName string) (string, error) {
	c, err := compileOp(ctx, sub, ruleName, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", name, c), nil
}

// ruleFuncName maps a grammar rule name to a legal, collision-free Go
// identifier for the rule's generated function.
func ruleFuncName(name string) string {
	return "ϡrule_" + name
}
