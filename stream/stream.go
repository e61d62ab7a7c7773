package stream

// Stream pairs a cursor with a lazy chain of processing steps. Builder
// methods return new Stream values and never mutate the receiver; the only
// mutation a Stream ever sees is the caching of its own realized result.
//
// A Stream is owned by a single flow of control: it is not safe for
// concurrent use, and it must not be used after the scope that produced its
// cursor has released the underlying resources.
type Stream struct {
	cursor Cursor
	chain  *chain

	values []any
	forced bool
}

// New creates a Stream over the cursor with an empty chain. Realizing it
// without any steps yields the cursor's elements unchanged.
func New(cursor Cursor) *Stream {
	return &Stream{cursor: cursor, chain: &chain{}}
}

// FromValues creates a Stream over an in-memory, rewindable sequence.
func FromValues(items ...any) *Stream {
	return New(NewSliceCursor(items...))
}

// with derives a new Stream whose chain is a private copy of this one plus
// the given step.
func (s *Stream) with(st step) *Stream {
	return &Stream{cursor: s.cursor, chain: s.chain.append(st)}
}

// --- Builders ---

// Map transforms each element using fn.
func (s *Stream) Map(fn func(any) (any, error)) *Stream {
	return s.with(&mapStep{fn: fn})
}

// FlatMap transforms each element into zero or more values and flattens
// them, in source order, into the output.
func (s *Stream) FlatMap(fn func(any) ([]any, error)) *Stream {
	return s.with(&flatMapStep{fn: fn})
}

// Filter keeps only elements satisfying the predicate.
func (s *Stream) Filter(pred func(any) bool) *Stream {
	return s.with(&filterStep{pred: pred})
}

// Each calls fn for every element as a side effect and passes the element
// through unchanged.
func (s *Stream) Each(fn func(any) error) *Stream {
	return s.with(&eachStep{fn: fn})
}

// Take keeps the first n elements. Take(0) realizes to an empty result
// without reading the cursor at all.
func (s *Stream) Take(n int) *Stream {
	return s.with(&takeStep{remaining: n})
}

// TakeWhile keeps the longest prefix of elements satisfying the predicate.
func (s *Stream) TakeWhile(pred func(any) bool) *Stream {
	return s.with(&takeWhileStep{pred: pred})
}

// Drop discards the first n elements.
func (s *Stream) Drop(n int) *Stream {
	return s.with(&dropStep{remaining: n})
}

// DropWhile discards the leading elements satisfying the predicate; once it
// first fails, every subsequent element is kept regardless.
func (s *Stream) DropWhile(pred func(any) bool) *Stream {
	return s.with(&dropWhileStep{pred: pred})
}

// Distinct keeps the first occurrence of each element. The seen-set grows
// with input cardinality, and elements must be comparable.
func (s *Stream) Distinct() *Stream {
	return s.DistinctBy(func(v any) any { return v })
}

// DistinctBy keeps the first element observed for each key.
func (s *Stream) DistinctBy(key func(any) any) *Stream {
	return s.with(newDistinctStep(key))
}

// Tail skips the first element; shorthand for Drop(1).
func (s *Stream) Tail() *Stream {
	return s.Drop(1)
}

// --- Realization ---

// Force realizes the stream if it has not been realized yet: the cursor is
// drained through the chain and the exported values are cached on this
// Stream value. Forcing an already-realized stream is a no-op.
//
// If an earlier realization (of this stream or of a branch sharing its
// cursor) already moved the cursor, Force rewinds it first; forward-only
// cursors make that a REWIND_UNSUPPORTED error.
func (s *Stream) Force() error {
	if s.forced {
		return nil
	}

	out := []any{}
	if s.chain.preTerminated() {
		s.values = out
		s.forced = true
		return nil
	}

	if err := ensureAtStart(s.cursor); err != nil {
		return err
	}

	for {
		ok, err := s.cursor.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		sig := s.chain.call(emit(s.cursor.Current()))
		if sig.kind == kindFailed {
			return sig.err
		}
		sig.exportTo(&out)
		if sig.terminates() {
			break
		}
	}

	s.values = out
	s.forced = true
	return nil
}

// ToList realizes the stream if needed and returns the cached values.
// Repeated calls return the same backing slice; callers must treat it as
// read-only.
func (s *Stream) ToList() ([]any, error) {
	if err := s.Force(); err != nil {
		return nil, err
	}
	return s.values, nil
}

// --- Terminal queries ---
//
// Terminal queries realize a private deep copy of the chain so their own
// bounded/dedup/prefix state never leaks into this stream.

// Head returns the first element of the stream. The boolean is false when
// the stream is empty.
func (s *Stream) Head() (any, bool, error) {
	if s.forced {
		if len(s.values) == 0 {
			return nil, false, nil
		}
		return s.values[0], true, nil
	}
	vals, err := s.realizeDetached(&headStep{})
	if err != nil {
		return nil, false, err
	}
	if len(vals) == 0 {
		return nil, false, nil
	}
	return vals[0], true, nil
}

// Find returns the first element satisfying the predicate. The boolean is
// false when no element matches, which distinguishes absence from a present
// zero value.
func (s *Stream) Find(pred func(any) bool) (any, bool, error) {
	vals, err := s.realizeDetached(&filterStep{pred: pred}, &headStep{})
	if err != nil {
		return nil, false, err
	}
	if len(vals) == 0 {
		return nil, false, nil
	}
	return vals[0], true, nil
}

// Any reports whether some element satisfies the predicate. An empty stream
// yields false.
func (s *Stream) Any(pred func(any) bool) (bool, error) {
	vals, err := s.realizeDetached(&anyStep{pred: pred})
	if err != nil {
		return false, err
	}
	return len(vals) > 0 && vals[0] == true, nil
}

// Every reports whether all elements satisfy the predicate. An empty stream
// yields true: a universally quantified statement over the empty set holds.
func (s *Stream) Every(pred func(any) bool) (bool, error) {
	vals, err := s.realizeDetached(&everyStep{pred: pred})
	if err != nil {
		return false, err
	}
	if len(vals) == 0 {
		return true, nil
	}
	return vals[0] == true, nil
}

// ContainsAll reports whether every value in items (duplicates collapsed)
// appears somewhere in the stream, in any order. The caller's slice is never
// modified. The check is settled while consuming elements, so it needs at
// least one element to answer true, even for an empty items list.
func (s *Stream) ContainsAll(items []any) (bool, error) {
	vals, err := s.realizeDetached(newContainsAllStep(items))
	if err != nil {
		return false, err
	}
	return len(vals) > 0 && vals[0] == true, nil
}

// realizeDetached drives a one-off realization over a deep copy of the
// chain extended with the given steps, leaving this stream untouched.
func (s *Stream) realizeDetached(extra ...step) ([]any, error) {
	ch := s.chain.clone()
	for _, st := range extra {
		ch.push(st)
	}
	detached := &Stream{cursor: s.cursor, chain: ch}
	return detached.ToList()
}
