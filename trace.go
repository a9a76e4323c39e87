package main

import (
	"github.com/rs/zerolog"

	"github.com/pegcraft/pegcraft/runtime"
)

// zerologTracer is the debug-tracing counterpart of the teacher's
// `-debug` flag (doc.go), reimplemented against runtime.Tracer instead
// of print statements to stdout. A nil *zerologTracer is never
// constructed; callers skip attaching a Tracer entirely when debug
// mode is off, so tracing costs nothing on the hot path.
type zerologTracer struct {
	log zerolog.Logger
	id  string
}

func newZerologTracer(log zerolog.Logger, id string) *zerologTracer {
	return &zerologTracer{log: log, id: id}
}

func (t *zerologTracer) EnterRule(name string, pos int) {
	t.log.Debug().Str("parser", t.id).Str("rule", name).Int("pos", pos).Msg("enter")
}

func (t *zerologTracer) ExitRule(name string, pos int, ok bool) {
	t.log.Debug().Str("parser", t.id).Str("rule", name).Int("pos", pos).Bool("ok", ok).Msg("exit")
}

func (t *zerologTracer) Fail(pos int, expectation string) {
	t.log.Debug().Str("parser", t.id).Int("pos", pos).Str("expected", expectation).Msg("fail")
}

var _ runtime.Tracer = (*zerologTracer)(nil)
