// Package stream provides lazy, composable operation chains over a
// forward-moving cursor, typically a database query result.
//
// A Stream pairs a Cursor with a chain of processing steps. Builder methods
// (Map, Filter, FlatMap, Take, Drop, Distinct, ...) are lazy: each returns a
// new Stream value and no rows are read until the stream is realized. The
// cursor is iterated at most once per realization; rows flow through the
// chain one at a time and nothing is buffered beyond the current row and the
// values the caller's own functions extracted from it.
//
// # Building and realizing
//
//	s := stream.New(cursor).
//	    Map(func(v any) (any, error) { return v.(stream.Row).Value(0), nil }).
//	    Filter(func(v any) bool { return v != nil }).
//	    Take(100)
//	values, err := s.ToList()
//
// ToList caches its result on that Stream value, so repeated calls return the
// same slice without re-draining the cursor.
//
// # Branching
//
// Builder methods never share mutable step state: two different
// continuations built from the same unrealized Stream evolve independently,
// including bounded counters, prefix flags, and dedup sets.
//
// # Terminal queries
//
// Head, Find, Any, Every, and ContainsAll answer single-value questions by
// realizing a private, deep-copied chain. They never disturb the stream they
// were called on, so the original can still be realized afterwards (provided
// the cursor can be rewound; database cursors are typically forward-only and
// support a single realization across all branches).
package stream
