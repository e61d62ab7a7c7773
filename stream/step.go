package stream

// step is one node of an operation chain. Evaluating an element calls the
// head step, which applies its own behavior and forwards the (possibly
// transformed) signal to the next node unless it decided to suppress or
// terminate.
type step interface {
	// call evaluates the step for one element signal.
	call(signal) signal
	// clone returns a copy of the step with freshly duplicated private
	// state and no successor.
	clone() step

	next() step
	attach(step)
}

// node provides the linked-list plumbing shared by all steps.
type node struct {
	nxt step
}

func (n *node) next() step    { return n.nxt }
func (n *node) attach(s step) { n.nxt = s }

// forward passes the signal to the rest of the chain, or returns it
// unchanged at the tail.
func (n *node) forward(s signal) signal {
	if n.nxt != nil {
		return n.nxt.call(s)
	}
	return s
}

// --- Stateless steps ---

type mapStep struct {
	node
	fn func(any) (any, error)
}

func (m *mapStep) call(s signal) signal {
	v, err := m.fn(s.value)
	if err != nil {
		return failed(err)
	}
	return m.forward(emit(v))
}

func (m *mapStep) clone() step { return &mapStep{fn: m.fn} }

type flatMapStep struct {
	node
	fn func(any) ([]any, error)
}

// call expands one element into zero or more values, feeding each through
// the rest of the chain in source order. If a downstream step terminates
// mid-expansion, the values accepted so far are still exported.
func (f *flatMapStep) call(s signal) signal {
	expanded, err := f.fn(s.value)
	if err != nil {
		return failed(err)
	}
	var out []any
	for _, v := range expanded {
		r := f.forward(emit(v))
		if r.kind == kindFailed {
			return r
		}
		if r.terminates() {
			return terminateWith(flatten(out))
		}
		r.exportTo(&out)
	}
	return flatten(out)
}

func (f *flatMapStep) clone() step { return &flatMapStep{fn: f.fn} }

type filterStep struct {
	node
	pred func(any) bool
}

func (f *filterStep) call(s signal) signal {
	if f.pred(s.value) {
		return f.forward(s)
	}
	return suppressed
}

func (f *filterStep) clone() step { return &filterStep{pred: f.pred} }

type eachStep struct {
	node
	fn func(any) error
}

func (e *eachStep) call(s signal) signal {
	if err := e.fn(s.value); err != nil {
		return failed(err)
	}
	return e.forward(s)
}

func (e *eachStep) clone() step { return &eachStep{fn: e.fn} }

// headStep turns the first observable value into a terminating signal that
// still exports it. Silent signals pass through unchanged so upstream
// filtering keeps working.
type headStep struct {
	node
}

func (h *headStep) call(s signal) signal {
	if s.silent() {
		return s
	}
	return terminateWith(s)
}

func (h *headStep) clone() step { return &headStep{} }

type anyStep struct {
	node
	pred func(any) bool
}

func (a *anyStep) call(s signal) signal {
	if a.pred(s.value) {
		return terminateTrue
	}
	return suppressed
}

func (a *anyStep) clone() step { return &anyStep{pred: a.pred} }

type everyStep struct {
	node
	pred func(any) bool
}

func (e *everyStep) call(s signal) signal {
	if e.pred(s.value) {
		return suppressed
	}
	return terminateFalse
}

func (e *everyStep) clone() step { return &everyStep{pred: e.pred} }
