package stream

// signalKind is the disposition a step assigns to the element it evaluated.
type signalKind uint8

const (
	// kindEmit exports the carried value and continues iteration.
	kindEmit signalKind = iota
	// kindSuppress exports nothing and continues iteration.
	kindSuppress
	// kindFlatten exports every carried value in order and continues.
	kindFlatten
	// kindTerminateEmpty exports nothing and stops iteration.
	kindTerminateEmpty
	// kindTerminateWith stops iteration and exports whatever the wrapped
	// signal would export.
	kindTerminateWith
	// kindFailed stops iteration and surfaces the carried error.
	kindFailed
)

// signal is the tagged result of evaluating one element through a step.
// Once a terminating signal is produced by any step it propagates to the
// realizer without further step processing.
type signal struct {
	kind   signalKind
	value  any
	values []any   // kindFlatten payload
	inner  *signal // kindTerminateWith payload
	err    error   // kindFailed payload
}

func emit(v any) signal { return signal{kind: kindEmit, value: v} }

func flatten(vs []any) signal { return signal{kind: kindFlatten, values: vs} }

func terminateWith(inner signal) signal {
	return signal{kind: kindTerminateWith, inner: &inner}
}

func failed(err error) signal { return signal{kind: kindFailed, err: err} }

var (
	suppressed     = signal{kind: kindSuppress}
	terminateEmpty = signal{kind: kindTerminateEmpty}
	terminateTrue  = signal{kind: kindTerminateWith, inner: &signal{kind: kindEmit, value: true}}
	terminateFalse = signal{kind: kindTerminateWith, inner: &signal{kind: kindEmit, value: false}}
)

// exportTo appends the signal's exportable payload to out.
func (s signal) exportTo(out *[]any) {
	switch s.kind {
	case kindEmit:
		*out = append(*out, s.value)
	case kindFlatten:
		*out = append(*out, s.values...)
	case kindTerminateWith:
		s.inner.exportTo(out)
	}
}

// terminates reports whether iteration must stop after this signal.
func (s signal) terminates() bool {
	switch s.kind {
	case kindTerminateEmpty, kindTerminateWith, kindFailed:
		return true
	}
	return false
}

// silent reports whether the signal carries no directly observable value.
// Mirrors the rule the head step uses: suppressed and terminating signals
// pass through untouched, anything else becomes the stream's first element.
func (s signal) silent() bool {
	switch s.kind {
	case kindSuppress, kindTerminateEmpty, kindTerminateWith, kindFailed:
		return true
	}
	return false
}
