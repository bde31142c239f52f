// Package fix applies the suggested edits carried by diagnostics back to
// the source files they point at.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options configures an apply run.
type Options struct {
	// DryRun stages the edits but leaves the files on disk untouched.
	DryRun bool
}

// Applied records one successfully applied fix.
type Applied struct {
	Title     string
	Code      diag.Code
	Path      string
	EditCount int
}

// Skipped captures a fix that could not be applied, with the reason.
type Skipped struct {
	Title  string
	Reason string
}

// FileChange summarises the modifications staged for one file.
type FileChange struct {
	Path       string
	EditCount  int
	NewContent []byte
}

// Result aggregates applied fixes, skipped ones, and file changes.
type Result struct {
	Applied []Applied
	Skipped []Skipped
	Changes []FileChange
}

type candidate struct {
	d   diag.Diagnostic
	fix diag.Fix
}

// Apply collects every fix attached to the diagnostics and applies the
// ones whose edits do not conflict. Edits address original file offsets;
// conflicting fixes lose to the earlier one in source order.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: file set is nil")
	}
	result := &Result{}

	var candidates []candidate
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, Skipped{Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			candidates = append(candidates, candidate{d: d, fix: f})
		}
	}
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].d, candidates[j].d
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		return di.Code < dj.Code
	})

	// Stage edits per file, first come wins on overlap.
	staged := make(map[source.FileID][]diag.FixEdit)
	for _, cand := range candidates {
		if reason := stageFix(fs, staged, cand.fix); reason != "" {
			result.Skipped = append(result.Skipped, Skipped{Title: cand.fix.Title, Reason: reason})
			continue
		}
		file := fs.Get(cand.fix.Edits[0].Span.File)
		result.Applied = append(result.Applied, Applied{
			Title:     cand.fix.Title,
			Code:      cand.d.Code,
			Path:      file.Path,
			EditCount: len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for fileID, edits := range staged {
		file := fs.Get(fileID)
		result.Changes = append(result.Changes, FileChange{
			Path:       file.Path,
			EditCount:  len(edits),
			NewContent: rewrite(file.Content, edits),
		})
	}
	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Path < result.Changes[j].Path
	})

	if opts.DryRun {
		return result, nil
	}
	for _, change := range result.Changes {
		if err := os.WriteFile(change.Path, change.NewContent, 0o600); err != nil {
			return result, fmt.Errorf("fix: write %s: %w", change.Path, err)
		}
	}
	return result, nil
}

// stageFix validates one fix against the file set and the edits already
// staged; it returns a non-empty skip reason on failure.
func stageFix(fs *source.FileSet, staged map[source.FileID][]diag.FixEdit, f diag.Fix) string {
	for _, edit := range f.Edits {
		file := fs.Get(edit.Span.File)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if int(edit.Span.End) > len(file.Content) || edit.Span.End < edit.Span.Start {
			return "edit span out of range"
		}
		for _, prev := range staged[edit.Span.File] {
			if edit.Span.Start < prev.Span.End && prev.Span.Start < edit.Span.End {
				return "conflicts with a previously staged edit"
			}
		}
	}
	for _, edit := range f.Edits {
		staged[edit.Span.File] = append(staged[edit.Span.File], edit)
	}
	return ""
}

// rewrite applies the staged edits to a copy of the content, highest
// offset first so earlier spans stay valid.
func rewrite(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	out := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		suffix := append([]byte(nil), out[end:]...)
		out = append(append(out[:start], []byte(edit.NewText)...), suffix...)
	}
	return out
}
