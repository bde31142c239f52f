// Package scopes provides a generic lexical scope stack used by the
// semantic analyzers to model nested lookup, shadowing, and the
// save/restore snapshots branch analysis needs.
package scopes

// Frame is one lexical scope: a name-to-state mapping plus a non-owning
// reference to its parent. Frames form a singly linked chain; the stack
// itself only holds the innermost frame.
type Frame[S any] struct {
	names  map[string]S
	parent *Frame[S]
}

// Parent returns the enclosing frame, or nil at the root.
func (f *Frame[S]) Parent() *Frame[S] { return f.parent }

// Get returns the state bound to name in this frame only.
func (f *Frame[S]) Get(name string) (S, bool) {
	s, ok := f.names[name]
	return s, ok
}

// Len returns the number of names declared in this frame.
func (f *Frame[S]) Len() int { return len(f.names) }

// Stack is a stack of lexical scopes keyed by name.
// The zero value is a stack with no active scope.
type Stack[S any] struct {
	current *Frame[S]
}

// New returns an empty stack with no active scope.
func New[S any]() *Stack[S] {
	return &Stack[S]{}
}

// Depth returns the number of active frames.
func (st *Stack[S]) Depth() int {
	n := 0
	for f := st.current; f != nil; f = f.parent {
		n++
	}
	return n
}

// EnterScope pushes a new empty frame.
func (st *Stack[S]) EnterScope() {
	st.current = &Frame[S]{
		names:  make(map[string]S),
		parent: st.current,
	}
}

// ExitScope pops and returns the exited frame; nil when no scope is active.
func (st *Stack[S]) ExitScope() *Frame[S] {
	if st.current == nil {
		return nil
	}
	top := st.current
	st.current = top.parent
	return top
}

// Declare binds name in the innermost frame. It reports false when no scope
// is active.
func (st *Stack[S]) Declare(name string, state S) bool {
	if st.current == nil {
		return false
	}
	st.current.names[name] = state
	return true
}

// Lookup walks outward from the innermost frame and returns the nearest
// state bound to name.
func (st *Stack[S]) Lookup(name string) (S, bool) {
	for f := st.current; f != nil; f = f.parent {
		if s, ok := f.names[name]; ok {
			return s, true
		}
	}
	var zero S
	return zero, false
}

// Update finds the frame owning name and replaces its state with fn(old).
// It reports whether an owning frame was found.
func (st *Stack[S]) Update(name string, fn func(S) S) bool {
	for f := st.current; f != nil; f = f.parent {
		if s, ok := f.names[name]; ok {
			f.names[name] = fn(s)
			return true
		}
	}
	return false
}

// HasInCurrentScope checks the innermost frame only (shadow detection).
func (st *Stack[S]) HasInCurrentScope(name string) bool {
	if st.current == nil {
		return false
	}
	_, ok := st.current.names[name]
	return ok
}

// CloneState captures a snapshot of every visible name merged across the
// whole chain; an inner binding shadows an outer one. cloner deep-copies
// each state so later mutations do not leak into the snapshot.
func (st *Stack[S]) CloneState(cloner func(S) S) map[string]S {
	saved := make(map[string]S)
	for f := st.current; f != nil; f = f.parent {
		for name, s := range f.names {
			if _, ok := saved[name]; ok {
				continue // shadowed by an inner frame
			}
			saved[name] = cloner(s)
		}
	}
	return saved
}

// RestoreState writes saved states back into whichever frame currently owns
// each name; names no longer visible are skipped (their scope has exited).
// merger combines the current state with the saved one.
func (st *Stack[S]) RestoreState(saved map[string]S, merger func(current, saved S) S) {
	for name, s := range saved {
		st.Update(name, func(current S) S {
			return merger(current, s)
		})
	}
}
