package stream

import "maps"

// Stateful steps carry per-realization progress. Their clone methods
// duplicate that state so chains sharing a prefix never interfere.

type takeStep struct {
	node
	remaining int
}

func (t *takeStep) call(s signal) signal {
	if t.remaining == 0 {
		return terminateEmpty
	}
	t.remaining--
	return t.forward(s)
}

func (t *takeStep) clone() step { return &takeStep{remaining: t.remaining} }

// preTerminated lets the realizer stop before the first advance when the
// step can no longer accept anything, so Take(0) reads zero rows.
func (t *takeStep) preTerminated() bool { return t.remaining == 0 }

type takeWhileStep struct {
	node
	pred func(any) bool
	done bool
}

func (t *takeWhileStep) call(s signal) signal {
	if !t.done && t.pred(s.value) {
		return t.forward(s)
	}
	// The predicate is not consulted again once it has failed.
	t.done = true
	return terminateEmpty
}

func (t *takeWhileStep) clone() step {
	return &takeWhileStep{pred: t.pred, done: t.done}
}

type dropStep struct {
	node
	remaining int
}

func (d *dropStep) call(s signal) signal {
	if d.remaining == 0 {
		return d.forward(s)
	}
	d.remaining--
	return suppressed
}

func (d *dropStep) clone() step { return &dropStep{remaining: d.remaining} }

type dropWhileStep struct {
	node
	pred func(any) bool
	done bool
}

func (d *dropWhileStep) call(s signal) signal {
	if d.done {
		return d.forward(s)
	}
	if d.pred(s.value) {
		return suppressed
	}
	// First failure ends the dropping prefix; this element and every
	// subsequent one flow through regardless of the predicate.
	d.done = true
	return d.forward(s)
}

func (d *dropWhileStep) clone() step {
	return &dropWhileStep{pred: d.pred, done: d.done}
}

// distinctStep forwards only the first occurrence of each key. The seen set
// grows with input cardinality; keys must be comparable.
type distinctStep struct {
	node
	key  func(any) any
	seen map[any]struct{}
}

func newDistinctStep(key func(any) any) *distinctStep {
	return &distinctStep{key: key, seen: make(map[any]struct{})}
}

func (d *distinctStep) call(s signal) signal {
	k := d.key(s.value)
	if _, ok := d.seen[k]; ok {
		return suppressed
	}
	d.seen[k] = struct{}{}
	return d.forward(s)
}

func (d *distinctStep) clone() step {
	return &distinctStep{key: d.key, seen: maps.Clone(d.seen)}
}

// containsAllStep tracks the values still missing from the stream. The set
// is seeded from a private copy of the caller's collection, collapsing
// duplicates. It terminates with true only after an element makes (or finds)
// the remaining set empty, so even a zero-item query consumes one element.
type containsAllStep struct {
	node
	remaining map[any]struct{}
}

func newContainsAllStep(items []any) *containsAllStep {
	remaining := make(map[any]struct{}, len(items))
	for _, it := range items {
		remaining[it] = struct{}{}
	}
	return &containsAllStep{remaining: remaining}
}

func (c *containsAllStep) call(s signal) signal {
	delete(c.remaining, s.value)
	if len(c.remaining) == 0 {
		return terminateTrue
	}
	return suppressed
}

func (c *containsAllStep) clone() step {
	return &containsAllStep{remaining: maps.Clone(c.remaining)}
}
