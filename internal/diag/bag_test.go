package diag

import (
	"testing"

	"cinder/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	span := source.Span{File: 1, Start: 0, End: 1}

	if !bag.Add(NewError(SemaCallBeforeDef, span, "one")) {
		t.Fatalf("first add rejected")
	}
	if !bag.Add(NewError(SemaCallBeforeDef, span, "two")) {
		t.Fatalf("second add rejected")
	}
	if bag.Add(NewError(SemaCallBeforeDef, span, "three")) {
		t.Fatalf("expected third add to be dropped")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagLargeLimitSurvives(t *testing.T) {
	const limit = 70000 // does not fit in 16 bits
	bag := NewBag(limit)
	if bag.Cap() != limit {
		t.Fatalf("cap = %d, want %d", bag.Cap(), limit)
	}
	span := source.Span{File: 1, Start: 0, End: 1}
	if !bag.Add(NewError(SemaCallBeforeDef, span, "kept")) {
		t.Fatalf("add rejected below a limit past 65535")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(SemaUseBeforeInit, source.Span{File: 2, Start: 5, End: 6}, "b"))
	bag.Add(NewError(SemaCallBeforeDef, source.Span{File: 1, Start: 9, End: 10}, "a2"))
	bag.Add(New(SevWarning, UnknownCode, source.Span{File: 1, Start: 9, End: 10}, "a3"))
	bag.Add(NewError(SemaSelfRecursion, source.Span{File: 1, Start: 2, End: 4}, "a1"))

	bag.Sort()
	items := bag.Items()
	if items[0].Message != "a1" || items[1].Message != "a2" || items[2].Message != "a3" || items[3].Message != "b" {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	span := source.Span{File: 1, Start: 3, End: 7}
	bag.Add(NewError(SemaUseBeforeInit, span, "dup"))
	bag.Add(NewError(SemaUseBeforeInit, span, "dup"))
	bag.Add(NewError(SemaCallBeforeDef, span, "kept"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len = %d after dedup, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	if got := SemaUseBeforeInit.ID(); got != "E0381" {
		t.Fatalf("ID = %q", got)
	}
	if got := SemaCallBeforeDef.ID(); got != "E0422" {
		t.Fatalf("ID = %q", got)
	}
	if got := SynUnexpectedToken.ID(); got != "E2001" {
		t.Fatalf("ID = %q", got)
	}
}
