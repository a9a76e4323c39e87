package compiler

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/pegcraft/pegcraft/runtime"
)

// BuildParsers interprets rules directly against package runtime,
// returning a name -> runtime.Parser dispatch table and the start
// rule, without ever producing source text. This is the live
// counterpart of Compile used by `pegcraft repl` (SPEC_FULL.md §1.1)
// to drive the runtime against a rule table without a codegen
// round-trip -- useful for exercising a grammar interactively before
// committing to a generated artifact.
//
// Functional handlers (Handler.Func) are opaque target-language
// source text meant for a generated artifact; running them here would
// require a second, in-process Go compiler, which this module does
// not carry. BuildParsers therefore applies structural handlers
// (Handler.Mapping) in full, and silently runs the bare combinator
// wherever a rule or alternative only has a functional handler --
// `pegcraft repl` reports this at load time so the omission is never
// silent to the grammar author (see the root CLI's runRepl).
func BuildParsers(table *RuleTable) (map[string]runtime.Parser, *Rule, []string, error) {
	dispatch := make(map[string]runtime.Parser, len(table.Rules))
	var skipped []string

	for _, rule := range table.Rules {
		p, hasFuncHandler, err := interpRule(rule, dispatch)
		if err != nil {
			return nil, nil, nil, err
		}
		dispatch[rule.Name] = runtime.Traced(rule.Name, p)
		if hasFuncHandler {
			skipped = append(skipped, rule.Name)
		}
	}
	return dispatch, table.StartRule(), skipped, nil
}

// interpRule mirrors compileRule (rule.go), but builds an executable
// runtime.Parser instead of emitting Go source for one. The returned
// bool reports whether any functional handler in rule (rule-level, or
// -- for an unhandled choice rule -- on any alternative) was left
// unapplied, so BuildParsers can name it in skipped.
func interpRule(rule *Rule, dispatch map[string]runtime.Parser) (runtime.Parser, bool, error) {
	if rule.Expr.Op == OpChoice && rule.Handler == nil {
		return interpUnhandledChoiceRule(rule, dispatch)
	}

	defaultHandler := rule.Handler == nil
	p, err := interpExpr(rule.Expr, defaultHandler, dispatch)
	if err != nil {
		return nil, false, err
	}
	if rule.Handler == nil {
		return p, false, nil
	}
	if !rule.Handler.IsStructural() {
		return p, true, nil
	}
	shape := shapeFor(rule.Expr.Op, numPartsFor(rule.Expr))
	if err := validateStructuralMapping(rule.Handler.Mapping); err != nil {
		return nil, false, err
	}
	return applyStructural(p, rule.Handler.Mapping, shape), false, nil
}

func interpUnhandledChoiceRule(rule *Rule, dispatch map[string]runtime.Parser) (runtime.Parser, bool, error) {
	alts := make([]runtime.Parser, len(rule.Expr.Seq))
	var anyFuncHandler bool
	for i, alt := range rule.Expr.Seq {
		defaultHandler := alt.Handler == nil
		p, err := interpExpr(alt, defaultHandler, dispatch)
		if err != nil {
			return nil, false, err
		}
		switch {
		case alt.Handler == nil:
			// pass through unmodified
		case alt.Handler.IsStructural():
			shape := shapeFor(alt.Op, numPartsFor(alt))
			if err := validateStructuralMapping(alt.Handler.Mapping); err != nil {
				return nil, false, err
			}
			p = applyStructural(p, alt.Handler.Mapping, shape)
		default:
			anyFuncHandler = true
		}
		alts[i] = p
	}
	return runtime.Choice(alts...), anyFuncHandler, nil
}

// interpExpr mirrors compileOp (compileop.go), producing an executable
// Parser instead of an expression fragment. Rule references resolve
// lazily through dispatch, exactly as ϡref resolves through ϡrules in
// a generated artifact.
func interpExpr(e *Expr, defaultHandler bool, dispatch map[string]runtime.Parser) (runtime.Parser, error) {
	if e.IsRuleRef() {
		name := e.Ref
		return func(ps *runtime.ParserState, st runtime.ParseState) runtime.Maybe {
			p, ok := dispatch[name]
			if !ok {
				panic(fmt.Sprintf("pegcraft: undefined rule %q", name))
			}
			return p(ps, st)
		}, nil
	}

	switch e.Op {
	case OpLiteral:
		return runtime.Lit(e.Literal), nil

	case OpRegex:
		re, err := runtime.CompileRegex(e.Pattern)
		if err != nil {
			return nil, newCompileError("", "invalid regex %q: %v", e.Pattern, err)
		}
		p := runtime.RX(re)
		if defaultHandler {
			p = runtime.DefaultRegexTransform(p)
		}
		return p, nil

	case OpChoice:
		return interpVariadic(runtime.Choice, e.Seq, defaultHandler, dispatch)
	case OpSeq:
		return interpVariadic(runtime.Seq, e.Seq, defaultHandler, dispatch)

	case OpStar:
		return interpUnary(runtime.Star, e.Sub, dispatch)
	case OpPlus:
		return interpUnary(runtime.Plus, e.Sub, dispatch)
	case OpOpt:
		return interpUnary(runtime.Opt, e.Sub, dispatch)
	case OpText:
		return interpUnary(runtime.Text, e.Sub, dispatch)
	case OpAnd:
		return interpUnary(runtime.And, e.Sub, dispatch)
	case OpNot:
		return interpUnary(runtime.Not, e.Sub, dispatch)
	}

	return nil, newCompileError("", "unknown AST operator %q", e.Op)
}

func interpVariadic(combine func(...runtime.Parser) runtime.Parser, parts []*Expr, defaultHandler bool, dispatch map[string]runtime.Parser) (runtime.Parser, error) {
	children := make([]runtime.Parser, len(parts))
	for i, part := range parts {
		c, err := interpExpr(part, defaultHandler, dispatch)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return combine(children...), nil
}

func interpUnary(wrap func(runtime.Parser) runtime.Parser, sub *Expr, dispatch map[string]runtime.Parser) (runtime.Parser, error) {
	// defaultHandler does not propagate into unary children, matching
	// compileUnary's documented non-propagation.
	c, err := interpExpr(sub, false, dispatch)
	if err != nil {
		return nil, err
	}
	return wrap(c), nil
}

// applyStructural wraps p so that, on success, its value is replaced
// per mapping (spec §4.2.2), mirroring compileHandlerApplication's
// structural branch at the value level instead of the source-text
// level. mapping must already have passed validateStructuralMapping.
func applyStructural(p runtime.Parser, mapping any, shape handlerShape) runtime.Parser {
	return func(ps *runtime.ParserState, st runtime.ParseState) runtime.Maybe {
		r := p(ps, st)
		if r == nil {
			return nil
		}
		r.Value = evalStructural(mapping, r.Value, shape.single, shape.offset)
		return r
	}
}

// validateStructuralMapping walks mapping once at build time, rejecting
// anything that isn't a string, number, or nested array of the same --
// the same shape compileStructuralHandler enforces, checked up front so
// evalStructural never has to fail mid-parse.
func validateStructuralMapping(mapping any) error {
	switch v := mapping.(type) {
	case string:
		return nil
	case nil, bool:
		return newCompileError("", "invalid structural handler mapping: %v is not a string, number or array", v)
	case []any:
		for _, sub := range v {
			if err := validateStructuralMapping(sub); err != nil {
				return err
			}
		}
		return nil
	default:
		if _, err := cast.ToIntE(v); err != nil {
			return newCompileError("", "invalid structural handler mapping: %v is not a string, number or array", v)
		}
		return nil
	}
}

// evalStructural is compileStructuralHandler's value-level twin: the
// same string/number/array cases, evaluated against a live value
// instead of emitted as Go source. mapping is assumed pre-validated.
func evalStructural(mapping any, source any, single bool, offset int) any {
	switch v := mapping.(type) {
	case string:
		return v

	case []any:
		out := make([]any, len(v))
		for i, sub := range v {
			out[i] = evalStructural(sub, source, single, offset)
		}
		return out

	default:
		if single {
			return source
		}
		n, _ := cast.ToIntE(v)
		arr, ok := source.([]any)
		idx := n + offset
		if !ok || idx < 0 || idx >= len(arr) {
			return nil
		}
		return arr[idx]
	}
}
