package runtime

// Preamble is the literal runtime source concatenated verbatim at the
// top of every artifact compiler.Compile emits (spec §4.2.4 step 1),
// the way the teacher's vm/static_code.go ships its VM runtime as a
// string constant tagged with "//+pigeon: <file>" section markers.
// Preamble follows the identical technique: each section below is
// tagged "//+pegcraft: <file>" and corresponds 1:1 with a source file
// in this package, re-expressed so it can be dropped into a standalone
// Go file (no "package" clause, imports supplied by the caller).
//
// The spec's combinator names ($L, $R, $S, $EXPECT, ...) assume a
// target language, such as JS, where "$" is a legal identifier
// character; Go disallows it. Rather than invent new names, this
// preamble adopts the teacher's own answer to exactly this problem:
// the "ϡ" rune prefix it uses for internal VM symbols that must not
// collide with user code. The mapping is name-for-name: $L -> ϡL,
// $R -> ϡR, $S -> ϡS, $C -> ϡC, $Q -> ϡQ, $P -> ϡP, $E -> ϡE,
// $TEXT -> ϡTEXT, $Y -> ϡY, $N -> ϡN, $EXPECT -> ϡEXPECT.
const Preamble = `
//+pegcraft: state.go

type ϡloc struct {
	pos    int
	length int
}

type ϡresult struct {
	loc   ϡloc
	pos   int
	value interface{}
}

func ϡsucceed(start, end int, v interface{}) *ϡresult {
	return &ϡresult{loc: ϡloc{pos: start, length: end - start}, pos: end, value: v}
}

type ϡstate struct {
	input string
	pos   int
}

func (s ϡstate) at(pos int) ϡstate {
	return ϡstate{input: s.input, pos: pos}
}

type ϡparserState struct {
	maxFailPos   int
	failExpected []string
	failIndex    int
}

func (ps *ϡparserState) fail(pos int, expectation string) {
	switch {
	case pos < ps.maxFailPos:
		return
	case pos > ps.maxFailPos:
		ps.maxFailPos = pos
		ps.failIndex = 0
	}
	if ps.failIndex < len(ps.failExpected) {
		ps.failExpected[ps.failIndex] = expectation
	} else {
		ps.failExpected = append(ps.failExpected, expectation)
	}
	ps.failIndex++
}

func (ps *ϡparserState) dedupedExpected() []string {
	seen := make(map[string]bool, ps.failIndex)
	out := make([]string, 0, ps.failIndex)
	for _, e := range ps.failExpected[:ps.failIndex] {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

//+pegcraft: combinators.go

type ϡparser func(ps *ϡparserState, st ϡstate) *ϡresult

// ϡEXPECT wraps a matcher so that, on failure, it records an
// expectation: the rule's display name when one is set (ruleName !=
// ""), otherwise the atom's own label (a quoted literal or /regex/).
func ϡEXPECT(m ϡmatcher, label, ruleName string) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		if r, ok := m.match(st); ok {
			return r
		}
		if ruleName != "" {
			ps.fail(st.pos, ruleName)
		} else {
			ps.fail(st.pos, label)
		}
		return nil
	}
}

func ϡL(str string) ϡmatcher {
	return ϡliteralMatcher{value: str}
}

func ϡR(re *ϡregex) ϡmatcher {
	return ϡregexMatcher{re: re}
}

func ϡS(parts ...ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		values := make([]interface{}, len(parts))
		cur := st
		for i, p := range parts {
			r := p(ps, cur)
			if r == nil {
				return nil
			}
			values[i] = r.value
			cur = cur.at(r.pos)
		}
		return ϡsucceed(st.pos, cur.pos, values)
	}
}

func ϡC(alts ...ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		for _, a := range alts {
			if r := a(ps, st); r != nil {
				return r
			}
		}
		return nil
	}
}

func ϡQ(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		var values []interface{}
		cur := st
		for {
			r := fn(ps, cur)
			if r == nil || r.pos == cur.pos {
				break
			}
			values = append(values, r.value)
			cur = cur.at(r.pos)
		}
		return ϡsucceed(st.pos, cur.pos, values)
	}
}

func ϡP(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		first := fn(ps, st)
		if first == nil {
			return nil
		}
		values := []interface{}{first.value}
		cur := st.at(first.pos)
		if first.pos != st.pos {
			for {
				r := fn(ps, cur)
				if r == nil || r.pos == cur.pos {
					break
				}
				values = append(values, r.value)
				cur = cur.at(r.pos)
			}
		}
		return ϡsucceed(st.pos, cur.pos, values)
	}
}

func ϡE(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		if r := fn(ps, st); r != nil {
			return r
		}
		return ϡsucceed(st.pos, st.pos, nil)
	}
}

func ϡTEXT(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		r := fn(ps, st)
		if r == nil {
			return nil
		}
		r.value = st.input[st.pos:r.pos]
		return r
	}
}

func ϡY(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		if fn(ps, st) == nil {
			return nil
		}
		return ϡsucceed(st.pos, st.pos, nil)
	}
}

func ϡN(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		if fn(ps, st) != nil {
			return nil
		}
		return ϡsucceed(st.pos, st.pos, nil)
	}
}

// ϡreplaceValue overwrites r.value with v and returns r, implementing
// a structural handler's rearrangement (spec §4.2.2).
func ϡreplaceValue(r *ϡresult, v interface{}) (*ϡresult, error) {
	r.value = v
	return r, nil
}

// ϡelemAt safely reads a sequence element by index, used when emitting
// a functional handler's named v1..vN parameters (spec §4.2.2).
func ϡelemAt(elems []interface{}, i int) interface{} {
	if i < 0 || i >= len(elems) {
		return nil
	}
	return elems[i]
}

// ϡindex safely reads an element of a captured array value (a
// sequence's element list, or a regex's match array) by index, used by
// structural-handler mappings (spec §4.2.2).
func ϡindex(v interface{}, i int) interface{} {
	arr, ok := v.([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

func ϡdefaultRegExpTransform(fn ϡparser) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		r := fn(ps, st)
		if r == nil {
			return nil
		}
		if arr, ok := r.value.([]interface{}); ok && len(arr) > 0 {
			r.value = arr[0]
		}
		return r
	}
}

func ϡmakeResultHandler(fn func(loc ϡloc, v0, v1 interface{}) (interface{}, error)) func(*ϡresult) (*ϡresult, error) {
	return func(r *ϡresult) (*ϡresult, error) {
		if r == nil {
			return nil, nil
		}
		v, err := fn(r.loc, r.value, r.value)
		if err != nil {
			return nil, err
		}
		r.value = v
		return r, nil
	}
}

func ϡmakeResultHandlerSeq(fn func(loc ϡloc, whole []interface{}, elems ...interface{}) (interface{}, error)) func(*ϡresult) (*ϡresult, error) {
	return func(r *ϡresult) (*ϡresult, error) {
		if r == nil {
			return nil, nil
		}
		whole, _ := r.value.([]interface{})
		v, err := fn(r.loc, whole, whole...)
		if err != nil {
			return nil, err
		}
		r.value = v
		return r, nil
	}
}

func ϡmakeResultHandlerR(fn func(loc ϡloc, groups ...interface{}) (interface{}, error)) func(*ϡresult) (*ϡresult, error) {
	return func(r *ϡresult) (*ϡresult, error) {
		if r == nil {
			return nil, nil
		}
		groups, _ := r.value.([]interface{})
		padded := make([]interface{}, 10)
		copy(padded, groups)
		v, err := fn(r.loc, padded...)
		if err != nil {
			return nil, err
		}
		r.value = v
		return r, nil
	}
}

//+pegcraft: diagnostics.go

type ϡposition struct {
	line, col int
}

func ϡlocate(input string, pos int) ϡposition {
	line, col := 1, 1
	i := 0
	for i < pos && i < len(input) {
		switch input[i] {
		case '\n':
			line++
			col = 1
			i++
		case '\r':
			line++
			col = 1
			i++
			if i < len(input) && input[i] == '\n' {
				i++
			}
		default:
			col++
			i++
		}
	}
	return ϡposition{line: line, col: col}
}

//+pegcraft: regex.go

type ϡregex struct {
	source string
	re     *regexp2.Regexp
}

func ϡcompileRegex(pattern string) *ϡregex {
	re, err := regexp2.Compile("\\G(?:"+pattern+")", regexp2.Singleline)
	if err != nil {
		panic(err)
	}
	return &ϡregex{source: pattern, re: re}
}

var ϡhintRegex = ϡcompileRegex("\\S+|[^\\S]+|$")

type ϡmatcher interface {
	match(st ϡstate) (*ϡresult, bool)
}

type ϡliteralMatcher struct {
	value string
}

func (m ϡliteralMatcher) match(st ϡstate) (*ϡresult, bool) {
	n := len(m.value)
	if st.pos+n <= len(st.input) && st.input[st.pos:st.pos+n] == m.value {
		return ϡsucceed(st.pos, st.pos+n, m.value), true
	}
	return nil, false
}

type ϡregexMatcher struct {
	re *ϡregex
}

func (m ϡregexMatcher) match(st ϡstate) (*ϡresult, bool) {
	g, err := m.re.re.FindStringMatchStartingAt(st.input, st.pos)
	if err != nil || g == nil || g.Index != st.pos {
		return nil, false
	}
	groups := g.Groups()
	value := make([]interface{}, len(groups))
	length := 0
	for i, grp := range groups {
		s := ""
		if len(grp.Captures) > 0 {
			s = grp.String()
		}
		if i == 0 {
			length = len(s)
		}
		value[i] = s
	}
	return ϡsucceed(st.pos, st.pos+length, value), true
}

//+pegcraft: parse.go

type ϡruleTable map[string]ϡparser

// ϡrules is the shared dispatcher every ϡref lookup goes through.
var ϡrules ϡruleTable

// ϡref resolves a rule reference through the shared ϡrules dispatcher
// at call time, rather than inlining a direct call to the referenced
// rule's function -- this is what lets grammar rules forward-reference
// and recurse into each other regardless of declaration order.
func ϡref(name string) ϡparser {
	return func(ps *ϡparserState, st ϡstate) *ϡresult {
		return ϡrules[name](ps, st)
	}
}

func ϡparse(rules ϡruleTable, start, filename, input string) (interface{}, error) {
	ps := &ϡparserState{}
	st := ϡstate{input: input}
	r := rules[start](ps, st)

	if r == nil {
		p := ϡlocate(input, ps.maxFailPos)
		hintMatcher := ϡregexMatcher{re: ϡhintRegex}
		found := "EOF"
		if hr, ok := hintMatcher.match(ϡstate{input: input, pos: ps.maxFailPos}); ok {
			if arr, ok := hr.value.([]interface{}); ok && len(arr) > 0 {
				if s, ok := arr[0].(string); ok && s != "" {
					found = s
				}
			}
		}
		return nil, fmt.Errorf("%s:%d:%d Failed to parse\nExpected:\n%sFound: %s",
			filename, p.line, p.col, ϡformatExpected(ps.dedupedExpected()), found)
	}
	if r.pos < len(input) {
		p := ϡlocate(input, r.pos)
		return nil, fmt.Errorf("%s:%d:%d Unconsumed input at %d:%d\n\n%s",
			filename, p.line, p.col, p.line, p.col, input[r.pos:])
	}
	return r.value, nil
}

func ϡformatExpected(exp []string) string {
	out := ""
	for _, e := range exp {
		out += "    " + e + "\n"
	}
	return out
}
`
