package compiler

import "golang.org/x/xerrors"

// CompileError is a fatal compile-time error (spec §7): an unknown AST
// operator, a non-array mapping where an array was expected, or a
// non-scalar mapping type. It is built with golang.org/x/xerrors so
// that %+v formatting carries a stack Frame for debugging, while
// still satisfying the plain error interface everywhere else -- unlike
// runtime.Diagnostic, which is user-facing text and must render
// exactly per spec §6.3, a CompileError is a programmer-facing bug
// report about the grammar itself.
type CompileError struct {
	Rule string
	err  error
	xerrors.Frame
}

func newCompileError(rule string, format string, args ...any) *CompileError {
	return &CompileError{
		Rule:  rule,
		err:   xerrors.Errorf(format, args...),
		Frame: xerrors.Caller(1),
	}
}

func (e *CompileError) Error() string {
	if e.Rule == "" {
		return e.err.Error()
	}
	return e.Rule + ": " + e.err.Error()
}

func (e *CompileError) Unwrap() error { return e.err }

func (e *CompileError) Format(f xerrors.Formatter) error { return e.FormatError(f) }

func (e *CompileError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	e.Frame.Format(p)
	return nil
}
