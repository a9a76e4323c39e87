package compiler

import (
	"fmt"
	"strings"
)

// numPartsFor returns the sequence arity used by a functional
// handler's parameter shape (spec §4.2.2): non-zero only for OpSeq.
func numPartsFor(e *Expr) int {
	if e.Op == OpSeq {
		return len(e.Seq)
	}
	return 0
}

// compileRule emits the top-level function(s) for one rule (spec
// §4.2.3).
//
// An un-handled "/" rule is the one case where alternatives carry
// handlers directly: each alternative is compiled as its own
// function, name_0, name_1, ..., and the rule's body short-circuits
// over them, applying each alternative's own handler (or the
// default-regex-transform, if it has none) as it goes. Every other
// rule shape compiles to a single combinator plus, if present, one
// rule-level handler.
func compileRule(ctx *Context, rule *Rule) (string, error) {
	fn := ruleFuncName(rule.Name)

	if rule.Expr.Op == OpChoice && rule.Handler == nil {
		return compileUnhandledChoiceRule(ctx, rule, fn)
	}

	defaultHandler := rule.Handler == nil
	combinator, err := compileOp(ctx, rule.Expr, rule.DisplayName, defaultHandler)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "func %s(ps *ϡparserState, st ϡstate) *ϡresult {\n", fn)
	fmt.Fprintf(&b, "\tr := (%s)(ps, st)\n", combinator)
	b.WriteString("\tif r == nil {\n\t\treturn nil\n\t}\n")
	if rule.Handler != nil {
		app, err := compileHandlerApplication(ctx, rule.Expr.Op, rule.Handler, "r", numPartsFor(rule.Expr))
		if err != nil {
			return "", err
		}
		b.WriteString("\tout, err := " + app + "\n")
		b.WriteString("\tif err != nil {\n\t\tps.fail(st.pos, err.Error())\n\t\treturn nil\n\t}\n")
		b.WriteString("\treturn out\n")
	} else {
		b.WriteString("\treturn r\n")
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func compileUnhandledChoiceRule(ctx *Context, rule *Rule, fn string) (string, error) {
	var decls strings.Builder
	var altNames []string

	for i, alt := range rule.Expr.Seq {
		altName := fmt.Sprintf("%s_%d", fn, i)
		altNames = append(altNames, altName)

		defaultHandler := alt.Handler == nil
		combinator, err := compileOp(ctx, alt, rule.DisplayName, defaultHandler)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&decls, "func %s(ps *ϡparserState, st ϡstate) *ϡresult {\n\treturn (%s)(ps, st)\n}\n\n", altName, combinator)
	}

	var b strings.Builder
	b.WriteString(decls.String())
	fmt.Fprintf(&b, "func %s(ps *ϡparserState, st ϡstate) *ϡresult {\n", fn)
	for i, alt := range rule.Expr.Seq {
		fmt.Fprintf(&b, "\tif r := %s(ps, st); r != nil {\n", altNames[i])
		if alt.Handler != nil {
			app, err := compileHandlerApplication(ctx, alt.Op, alt.Handler, "r", numPartsFor(alt))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "\t\tout, err := %s\n", app)
			b.WriteString("\t\tif err != nil {\n\t\t\tps.fail(st.pos, err.Error())\n\t\t\treturn nil\n\t\t}\n")
			b.WriteString("\t\treturn out\n")
		} else {
			b.WriteString("\t\treturn r\n")
		}
		b.WriteString("\t}\n")
	}
	b.WriteString("\treturn nil\n}\n")
	return b.String(), nil
}
