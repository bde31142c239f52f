package scopes

import "testing"

func ident(s int) int { return s }

func TestDeclareRequiresScope(t *testing.T) {
	st := New[int]()
	if st.Declare("x", 1) {
		t.Fatalf("declare succeeded with no active scope")
	}
	st.EnterScope()
	if !st.Declare("x", 1) {
		t.Fatalf("declare failed with active scope")
	}
}

func TestLookupWalksOutward(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.Declare("outer", 1)
	st.EnterScope()
	st.Declare("inner", 2)

	if v, ok := st.Lookup("outer"); !ok || v != 1 {
		t.Fatalf("outer = %d,%v", v, ok)
	}
	if v, ok := st.Lookup("inner"); !ok || v != 2 {
		t.Fatalf("inner = %d,%v", v, ok)
	}
	if st.HasInCurrentScope("outer") {
		t.Fatalf("outer must not be in the innermost frame")
	}
}

func TestExitScopeNoLeak(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.EnterScope()
	st.Declare("local", 7)
	frame := st.ExitScope()
	if frame == nil || frame.Len() != 1 {
		t.Fatalf("exited frame = %+v", frame)
	}
	if _, ok := st.Lookup("local"); ok {
		t.Fatalf("name leaked out of exited scope")
	}
	if st.ExitScope() == nil {
		t.Fatalf("root frame missing")
	}
	if st.ExitScope() != nil {
		t.Fatalf("exit past root must return nil")
	}
}

func TestShadowing(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.Declare("x", 1)
	st.EnterScope()
	st.Declare("x", 2)

	if v, _ := st.Lookup("x"); v != 2 {
		t.Fatalf("inner shadow not visible: %d", v)
	}
	st.ExitScope()
	if v, _ := st.Lookup("x"); v != 1 {
		t.Fatalf("outer binding lost: %d", v)
	}
}

func TestUpdateFindsOwningFrame(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.Declare("x", 1)
	st.EnterScope()

	if !st.Update("x", func(v int) int { return v + 10 }) {
		t.Fatalf("update did not find owner")
	}
	if v, _ := st.Lookup("x"); v != 11 {
		t.Fatalf("x = %d, want 11", v)
	}
	if st.Update("missing", ident) {
		t.Fatalf("update of unknown name reported success")
	}
}

func TestCloneRestoreRoundTrip(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.Declare("a", 1)
	st.EnterScope()
	st.Declare("b", 2)
	st.Declare("a", 3) // shadows outer a

	saved := st.CloneState(ident)
	if saved["a"] != 3 || saved["b"] != 2 {
		t.Fatalf("snapshot = %v", saved)
	}

	// Mutate, then restore: visible state must match the snapshot again.
	st.Update("a", func(int) int { return 99 })
	st.Update("b", func(int) int { return 99 })
	st.RestoreState(saved, func(_, s int) int { return s })

	if v, _ := st.Lookup("a"); v != 3 {
		t.Fatalf("a = %d after restore", v)
	}
	if v, _ := st.Lookup("b"); v != 2 {
		t.Fatalf("b = %d after restore", v)
	}
}

func TestRestoreSkipsExitedNames(t *testing.T) {
	st := New[int]()
	st.EnterScope()
	st.Declare("keep", 1)
	st.EnterScope()
	st.Declare("gone", 2)
	saved := st.CloneState(ident)
	st.ExitScope()

	// Restoring must not resurrect names whose scope has exited.
	st.RestoreState(saved, func(_, s int) int { return s })
	if _, ok := st.Lookup("gone"); ok {
		t.Fatalf("restore resurrected an exited name")
	}
	if v, _ := st.Lookup("keep"); v != 1 {
		t.Fatalf("keep = %d", v)
	}
}
