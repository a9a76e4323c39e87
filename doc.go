/*
Command pegcraft builds and drives small parsing expression grammars.

It has two halves. Package runtime is a parsing-combinator library: a
handful of primitives (Lit, RX, Seq, Choice, Star, Plus, Opt, Text,
And, Not) that compose into a recursive-descent PEG parser over a
single in-memory ParserState, plus the failure-tracking apparatus
(rightmost-failure-position, expected-set, Diagnostic rendering) behind
readable error messages. Package compiler takes a RuleTable -- an AST
of the same operators, plus a semantic action (a handler) per rule or
alternative -- and either emits a standalone Go source artifact linking
against runtime's embedded Preamble (Compile), or interprets the same
table directly into a runtime.Parser dispatch table with no codegen
step at all (BuildParsers).

The pegcraft command exposes both halves:

	pegcraft compile [RULES_FILE...]
	pegcraft repl [RULES_FILE]
	pegcraft version

Rule tables

A rule table is YAML or JSON matching compiler.RuleTable's shape: a
list of named rules, each an expression tree built from the operators
above, with an optional handler. A handler is either structural -- a
JSON-like literal of strings, numbers and nested arrays describing how
to reshape the matched values (spec semantics: a bare string is itself,
a number n picks the n-th sub-value, an array recurses) -- or
functional -- an opaque fragment of Go source to run as the action,
which only `compile`'s generated artifacts can execute.

	rules:
	  - name: Sum
	    expr:
	      op: S
	      seq:
	        - {op: R, pattern: '\d+'}
	        - {op: L, literal: "+"}
	        - {op: R, pattern: '\d+'}
	    handler:
	      mapping: [1, 3]

compile

compile reads one rule table per argument (or one from stdin, with no
arguments) and writes the Go source artifact compiler.Compile produces
for it: the runtime preamble, the interned literal and regex
declarations, one compiled function per rule, a dispatch table, and an
exported Parse(filename, input string) entry point bound to the first
rule in the table. With more than one file, each is compiled
concurrently and written next to its input with a .go extension
instead of to stdout; -o is only meaningful in single-file mode.

The tool makes no attempt to run goimports or gofmt over its output;
pipe it through one if the formatting matters:

	pegcraft compile grammar.yaml | gofmt > parser.go

repl

repl loads a rule table and interprets it directly against package
runtime via compiler.BuildParsers, instead of generating and running
Go source -- useful for trying a grammar out before it is worth
compiling. It reads lines with line editing and an in-memory history
kept for the session (github.com/chzyer/readline), parses each against the start rule, and
prints the resulting value or a colorized diagnostic. Rules whose
handler is functional cannot run this way; repl reports their names
once at startup instead of silently running them unhandled.

Debug tracing

The -debug flag (or a "logLevel: debug" entry in .pegcraft.yaml) turns
on rule-level tracing: every rule entry, exit and match failure is
logged through a github.com/rs/zerolog console logger, the direct
descendant of the teacher's -debug flag.

Configuration

A .pegcraft.yaml file in the working directory, if present, supplies
defaults for compile's output file and package name and for color/log
verbosity; see config.go.
*/
package main
