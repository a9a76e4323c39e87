package runtime

import "fmt"

// Parser is a compiled parsing expression: given the per-parse
// failure-tracking state and the current ParseState, it returns a
// successful ParseResult or nil. Every combinator below is a
// constructor that returns a Parser value, mirroring the shape the
// compiler emits: a node compiles to an expression that *is* a Parser,
// and a rule compiles to a function that runs one such expression.
type Parser func(ps *ParserState, st ParseState) Maybe

// Lit is the $L atom (spec §4.1.1): succeeds iff the input at st.Pos
// starts with str.
func Lit(str string) Parser {
	n := len(str)
	return func(ps *ParserState, st ParseState) Maybe {
		if st.Pos+n <= len(st.Input) && st.Input[st.Pos:st.Pos+n] == str {
			return succeed(st.Pos, st.Pos+n, str)
		}
		ps.fail(st.Pos, fmt.Sprintf("%q", str))
		return nil
	}
}

// Seq is the $S combinator (spec §4.1.4): threads Pos left to right
// through each sub-parser; any sub-failure fails the whole sequence
// with no internal backtracking. On success Value is the list of
// sub-values in order.
func Seq(parts ...Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		values := make([]any, len(parts))
		cur := st
		for i, p := range parts {
			r := p(ps, cur)
			if r == nil {
				return nil
			}
			values[i] = r.Value
			cur = cur.at(r.Pos)
		}
		return succeed(st.Pos, cur.Pos, values)
	}
}

// Choice is the $C combinator (spec §4.1.3): tries alternatives
// left-to-right, returning the first success. Rejected alternatives'
// effect on the fail-tracking state is kept, not rolled back -- the
// rightmost attempt wins regardless, since fail self-filters by
// position.
func Choice(alts ...Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		for _, a := range alts {
			if r := a(ps, st); r != nil {
				return r
			}
		}
		return nil
	}
}

// Star is the $Q combinator (spec §4.1.5): repeats fn, stopping when
// fn fails or when fn succeeds having consumed zero characters (the
// zero-width value is not appended in that case, to guarantee
// termination on nullable sub-expressions). Always succeeds.
func Star(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		var values []any
		cur := st
		for {
			r := fn(ps, cur)
			if r == nil {
				break
			}
			if r.Pos == cur.Pos {
				break
			}
			values = append(values, r.Value)
			cur = cur.at(r.Pos)
		}
		return succeed(st.Pos, cur.Pos, values)
	}
}

// Plus is the $P combinator (spec §4.1.6): like Star, but the first
// invocation of fn must succeed; fails iff that first attempt fails.
func Plus(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		first := fn(ps, st)
		if first == nil {
			return nil
		}
		values := []any{first.Value}
		cur := st.at(first.Pos)
		if first.Pos != st.Pos {
			for {
				r := fn(ps, cur)
				if r == nil || r.Pos == cur.Pos {
					break
				}
				values = append(values, r.Value)
				cur = cur.at(r.Pos)
			}
		}
		return succeed(st.Pos, cur.Pos, values)
	}
}

// Opt is the $E combinator (spec §4.1.7): returns fn's result if it
// succeeds, otherwise a zero-width success with Value == nil.
func Opt(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		if r := fn(ps, st); r != nil {
			return r
		}
		return succeed(st.Pos, st.Pos, nil)
	}
}

// Text is the $TEXT combinator (spec §4.1.8): runs fn and, on success,
// replaces Value with the literal source text it spanned.
func Text(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		r := fn(ps, st)
		if r == nil {
			return nil
		}
		r.Value = st.Input[st.Pos:r.Pos]
		return r
	}
}

// And is the $Y positive-lookahead combinator (spec §4.1.9): succeeds
// with a zero-width result (Value == nil, Pos unchanged) iff fn
// succeeds; fn's own match is discarded and Pos is never advanced.
func And(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		if fn(ps, st) == nil {
			return nil
		}
		return succeed(st.Pos, st.Pos, nil)
	}
}

// Not is the $N negative-lookahead combinator (spec §4.1.10): the
// mirror of And -- fn succeeding is a failure, fn failing is a
// zero-width success.
func Not(fn Parser) Parser {
	return func(ps *ParserState, st ParseState) Maybe {
		if fn(ps, st) != nil {
			return nil
		}
		return succeed(st.Pos, st.Pos, nil)
	}
}
