package runtime

// Options configures a top-level Parse call. Filename is used only
// for diagnostic labelling, per spec §6.2.
type Options struct {
	Filename string
	Tracer   Tracer
}

// Parse is the top-level entry described in spec §4.1.12: it seeds a
// ParseState at position 0, runs start, and then validates that the
// entire input was consumed. On any failure it returns a *Diagnostic
// satisfying the error interface.
func Parse(input string, start Parser, opts Options) (any, error) {
	ps := NewParserState()
	ps.Tracer = opts.Tracer

	st := ParseState{Input: input}
	result := start(ps, st)

	filename := opts.Filename
	if filename == "" {
		filename = "stdin"
	}

	if result == nil {
		return nil, &Diagnostic{
			Filename: filename,
			Pos:      locate(input, ps.maxFailPos),
			Failed:   true,
			Expected: ps.FailExpected(),
			Hint:     hint(input, ps.maxFailPos),
		}
	}

	if result.Pos < len(input) {
		return nil, &Diagnostic{
			Filename:   filename,
			Pos:        locate(input, result.Pos),
			Failed:     false,
			Unconsumed: input[result.Pos:],
		}
	}

	return result.Value, nil
}
