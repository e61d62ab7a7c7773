package stream

// chain is an ordered, singly linked sequence of steps.
type chain struct {
	head step
	tail step
}

// call evaluates one element through every step in order. An empty chain is
// the identity.
func (c *chain) call(s signal) signal {
	if c.head == nil {
		return s
	}
	return c.head.call(s)
}

// push attaches a step at the tail in place.
func (c *chain) push(s step) {
	if c.head == nil {
		c.head, c.tail = s, s
		return
	}
	c.tail.attach(s)
	c.tail = s
}

// append returns a new chain consisting of a deep copy of this chain with
// the step attached. The copy shares no mutable step state with the
// original, so streams built from a common prefix stay independent.
func (c *chain) append(s step) *chain {
	cl := c.clone()
	cl.push(s)
	return cl
}

// clone deep-copies the chain, duplicating every stateful step's private
// counters, flags, and sets.
func (c *chain) clone() *chain {
	cl := &chain{}
	for s := c.head; s != nil; s = s.next() {
		cl.push(s.clone())
	}
	return cl
}

// preTerminator is implemented by steps that can refuse all further input
// before any element is seen.
type preTerminator interface {
	preTerminated() bool
}

// preTerminated reports whether some step already rejects every element, in
// which case realization can finish without touching the cursor.
func (c *chain) preTerminated() bool {
	for s := c.head; s != nil; s = s.next() {
		if pt, ok := s.(preTerminator); ok && pt.preTerminated() {
			return true
		}
	}
	return false
}
