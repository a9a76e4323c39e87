package compiler

import (
	"fmt"
	"strings"

	"github.com/pegcraft/pegcraft/runtime"
)

// Options configures Compile (spec §4.2.5). Types is the only
// recognized option. spec §4.2.5 is written against a target language
// (TypeScript in the spec's own examples) where "type annotations"
// means a second, parallel declaration surface the emitter can choose
// to populate or leave off; ported to Go, the only part of that surface
// this compiler can honor is the exported Parse entry point's result
// type, spelled `any` instead of `interface{}` when Types is true --
// they are the same predeclared type, so this is a spelling choice for
// artifacts meant to read as modern Go, not a semantic one.
//
// Nothing deeper is available to type: the rule dispatch table and
// every handler-wrapper signature (ϡmakeResultHandler/-Seq/-R,
// preamble.go) are fixed functions in the shared Preamble string, by
// design the same code the runtime package itself runs (spec §9's
// "runtime and emitted artifact must agree on semantics" contract,
// see SPEC_FULL.md's target-language note) -- parametrizing them per
// rule would mean forking the preamble per Compile call, which is the
// one thing this design deliberately never does. And even if it did,
// a grammar's own captured values have no shape known to the compiler
// (handler bodies are opaque target-language text), so there is no
// statically sound type to give v0..vN beyond `interface{}`/`any`
// either way.
type Options struct {
	// PackageName is the package clause of the emitted artifact.
	PackageName string

	// Types switches the exported Parse function's result type from
	// `interface{}` to its `any` alias (spec §4.2.5); see the Options
	// doc comment for why this is the full extent of what "type
	// annotations" can mean for this target language and architecture.
	Types bool
}

// Compile translates rules into a standalone Go source artifact (spec
// §4.2, §6.1-§6.2): the runtime preamble, a driver bound to the rules
// table, the interned literal/regex declarations, the compiled rule
// functions in grammar order, and a public Parse entry point bound to
// the start rule.
func Compile(rules *RuleTable, opts Options) (string, error) {
	start := rules.StartRule()
	if start == nil {
		return "", newCompileError("", "rule table is empty: no start rule")
	}

	pkg := opts.PackageName
	if pkg == "" {
		pkg = "main"
	}

	ctx := NewContext()

	var ruleFns strings.Builder
	var tableEntries strings.Builder
	for _, rule := range rules.Rules {
		src, err := compileRule(ctx, rule)
		if err != nil {
			return "", err
		}
		ruleFns.WriteString(src)
		ruleFns.WriteString("\n")
		fmt.Fprintf(&tableEntries, "\t\t%s: %s,\n", jsonString(rule.Name), ruleFuncName(rule.Name))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by pegcraft. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	b.WriteString("import (\n\t\"fmt\"\n\n\t\"github.com/dlclark/regexp2\"\n)\n\n")

	b.WriteString(runtime.Preamble)
	b.WriteString("\n")

	b.WriteString(compileInternedDecls(ctx))

	b.WriteString(ruleFns.String())

	fmt.Fprintf(&b, "var ϡtable = ϡruleTable{\n%s}\n\n", tableEntries.String())
	b.WriteString("func init() { ϡrules = ϡtable }\n\n")

	// any and interface{} are the same predeclared type; this only
	// changes which spelling the artifact reads with.
	exportedType := "interface{}"
	if opts.Types {
		exportedType = "any"
	}
	fmt.Fprintf(&b, `// Parse parses input against the %q rule and returns its value, or a
// non-nil error carrying the diagnostic described in the grammar's
// originating specification.
func Parse(filename string, input string) (%s, error) {
	return ϡparse(ϡtable, %s, filename, input)
}
`, start.Name, exportedType, jsonString(start.Name))

	return b.String(), nil
}

// compileInternedDecls emits the `var ϡL<i> = ϡL("...")` / `var ϡR<i>
// = ϡR(ϡcompileRegex("..."))` declarations (spec §4.2.4 step 3, §3.5).
func compileInternedDecls(ctx *Context) string {
	var b strings.Builder
	for i, lit := range ctx.StrDefs() {
		fmt.Fprintf(&b, "var ϡL%d = ϡL(%s)\n", i, jsonString(lit))
	}
	for i, pat := range ctx.ReDefs() {
		fmt.Fprintf(&b, "var ϡR%d = ϡR(ϡcompileRegex(%s))\n", i, jsonString(pat))
	}
	b.WriteString("\n")
	return b.String()
}
