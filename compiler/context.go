package compiler

import "github.com/samber/lo"

// Context holds the interning tables accumulated during a single
// Compile call (spec §3.5, §9: "a per-invocation context, not a
// process-global"). Interning is referential-equality on the pattern
// string -- no structural normalization is performed.
type Context struct {
	strDefs []string
	reDefs  []string
}

// NewContext returns an empty, per-invocation interning context.
func NewContext() *Context {
	return &Context{}
}

// internLiteral returns the index of s in strDefs, inserting it at the
// end if not already present.
func (c *Context) internLiteral(s string) int {
	if i := lo.IndexOf(c.strDefs, s); i >= 0 {
		return i
	}
	c.strDefs = append(c.strDefs, s)
	return len(c.strDefs) - 1
}

// internRegex returns the index of pattern in reDefs, inserting it at
// the end if not already present.
func (c *Context) internRegex(pattern string) int {
	if i := lo.IndexOf(c.reDefs, pattern); i >= 0 {
		return i
	}
	c.reDefs = append(c.reDefs, pattern)
	return len(c.reDefs) - 1
}

// StrDefs returns the interned literals in insertion order.
func (c *Context) StrDefs() []string { return c.strDefs }

// ReDefs returns the interned regex patterns in insertion order.
func (c *Context) ReDefs() []string { return c.reDefs }
