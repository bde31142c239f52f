package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	d := out.Diagnostics[0]
	if d.Code != "E0422" || d.Severity != "ERROR" || d.Symbol != "helper" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location == nil || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Fatalf("notes = %d, fixes = %d", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].Edits[0].OldText != "helper" {
		t.Fatalf("old text = %q", d.Fixes[0].Edits[0].OldText)
	}
}

func TestJSONTruncation(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Merge(bag) // duplicate to get two items
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("count = %d, want truncated to 1", out.Count)
	}
	if bag.Len() != 2 {
		t.Fatalf("truncation must not modify the bag")
	}
}
