// Package compiler translates a grammar, encoded as an AST of parse
// expressions with optional semantic actions (spec §3.1-3.2), into a
// standalone Go source artifact that links against package
// runtime's embedded Preamble (spec §4.2).
package compiler

// Op is a parse-expression operator tag (spec §3.1).
type Op string

const (
	OpLiteral  Op = "L" // string literal
	OpRegex    Op = "R" // sticky regex
	OpSeq      Op = "S" // sequence
	OpChoice   Op = "/" // ordered choice
	OpStar     Op = "*" // zero-or-more
	OpPlus     Op = "+" // one-or-more
	OpOpt      Op = "?" // optional
	OpText     Op = "$" // text capture
	OpAnd      Op = "&" // positive lookahead
	OpNot      Op = "!" // negative lookahead
	opRuleRef  Op = ""  // internal: bare rule-name reference
)

// Expr is a parse expression: either a bare rule-name reference
// (Op == "" and Ref != "") or a tagged [op, args, handler?] node.
//
// Args holds the operator-specific payload:
//   - L: Literal is the string.
//   - R: Pattern is the regex source.
//   - S, /: Seq holds the sub-expressions.
//   - *, +, ?, $, &, !: Sub holds the single sub-expression.
//
// The yaml tags let a RuleTable be loaded directly from a rules file
// (spec.md's AST input, given a textual home in SPEC_FULL.md §1.1's
// "pegcraft compile" command): a grammar author writes the AST as YAML
// or JSON (YAML is a superset) instead of constructing *Expr values in
// Go.
type Expr struct {
	Op Op `yaml:"op"`

	Ref     string  `yaml:"ref,omitempty"`     // rule-name reference, when Op == ""
	Literal string  `yaml:"literal,omitempty"` // Op == L
	Pattern string  `yaml:"pattern,omitempty"` // Op == R
	Seq     []*Expr `yaml:"seq,omitempty"`
	Sub     *Expr   `yaml:"sub,omitempty"`

	Handler *Handler `yaml:"handler,omitempty"`
}

// Ident builds a bare rule-reference expression.
func Ident(name string) *Expr { return &Expr{Op: opRuleRef, Ref: name} }

// Lit builds an L (literal) expression.
func Lit(s string) *Expr { return &Expr{Op: OpLiteral, Literal: s} }

// Re builds an R (sticky regex) expression.
func Re(pattern string) *Expr { return &Expr{Op: OpRegex, Pattern: pattern} }

// SeqExpr builds an S (sequence) expression.
func SeqExpr(parts ...*Expr) *Expr { return &Expr{Op: OpSeq, Seq: parts} }

// ChoiceExpr builds a "/" (ordered choice) expression.
func ChoiceExpr(alts ...*Expr) *Expr { return &Expr{Op: OpChoice, Seq: alts} }

// Star builds a "*" (zero-or-more) expression.
func Star(e *Expr) *Expr { return &Expr{Op: OpStar, Sub: e} }

// Plus builds a "+" (one-or-more) expression.
func Plus(e *Expr) *Expr { return &Expr{Op: OpPlus, Sub: e} }

// Opt builds a "?" (optional) expression.
func Opt(e *Expr) *Expr { return &Expr{Op: OpOpt, Sub: e} }

// TextExpr builds a "$" (text capture) expression.
func TextExpr(e *Expr) *Expr { return &Expr{Op: OpText, Sub: e} }

// And builds an "&" (positive lookahead) expression.
func And(e *Expr) *Expr { return &Expr{Op: OpAnd, Sub: e} }

// Not builds a "!" (negative lookahead) expression.
func Not(e *Expr) *Expr { return &Expr{Op: OpNot, Sub: e} }

// WithHandler attaches a handler to e and returns e.
func (e *Expr) WithHandler(h *Handler) *Expr {
	e.Handler = h
	return e
}

// Handler is a semantic action attached to a rule or alternative
// (spec §3.2): exactly one of Func or Mapping is set.
type Handler struct {
	// Func is a functional handler: an opaque action-body text
	// fragment in the target language.
	Func string `yaml:"func,omitempty"`

	// Mapping is a structural handler: a JSON-like literal (string,
	// int, or nested []any of same) per spec §3.2/§4.2.2. Present iff
	// Func == "".
	Mapping any `yaml:"mapping,omitempty"`
}

// FuncHandler builds a functional handler.
func FuncHandler(body string) *Handler { return &Handler{Func: body} }

// StructHandler builds a structural handler.
func StructHandler(mapping any) *Handler { return &Handler{Mapping: mapping} }

// IsStructural reports whether h is a structural (mapping) handler.
func (h *Handler) IsStructural() bool { return h != nil && h.Func == "" }

// Rule is one named grammar production.
type Rule struct {
	Name string `yaml:"name"`

	// DisplayName is an optional human-friendly name (see SPEC_FULL.md
	// §5, carried over from the teacher's quoted rule-name syntax).
	// When set, Compile's artifact records it as the expectation for
	// every failed literal or regex of the rule, in place of the atom's
	// own label. BuildParsers does not use it.
	DisplayName string `yaml:"displayName,omitempty"`

	Expr *Expr `yaml:"expr"`

	// Handler is the rule-level handler, applied to the whole of Expr.
	// Mutually exclusive in practice with per-alternative handlers on
	// a top-level "/" Expr (spec §4.2.3).
	Handler *Handler `yaml:"handler,omitempty"`
}

// RuleTable is the compiler's input (spec §6.1): name -> rule. Rules
// is kept as a slice, not a map, because the first entry is the start
// rule (insertion order is significant) and grammar order drives
// artifact assembly (spec §4.2.4 step 4).
type RuleTable struct {
	Rules []*Rule `yaml:"rules"`
}

// StartRule returns the first rule, or nil if the table is empty.
func (t *RuleTable) StartRule() *Rule {
	if len(t.Rules) == 0 {
		return nil
	}
	return t.Rules[0]
}

// IsRuleRef reports whether e is a bare rule-name reference.
func (e *Expr) IsRuleRef() bool { return e.Op == opRuleRef }
