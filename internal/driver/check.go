// Package driver orchestrates the front end: it loads .cn sources, parses
// them, builds the shared symbol table, and runs the analyzers. Table
// construction is sequential; analysis runs one goroutine per file against
// the read-only table.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/observ"
	"cinder/internal/parser"
	"cinder/internal/project"
	"cinder/internal/sema"
	"cinder/internal/source"
	"cinder/internal/symtab"
)

// Options tunes a check run.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Cache          *DiskCache
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// FileResult is the outcome for one translation unit.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Bindings map[string]string
}

// Result is the outcome of a whole check run.
type Result struct {
	FileSet   *source.FileSet
	Table     *symtab.Table
	Files     []FileResult
	Conflicts []diag.Diagnostic
	Timings   observ.Report
	// ProjectDigest combines every unit's content digest in path order;
	// callers can compare it across runs to skip unchanged projects.
	ProjectDigest project.Digest
}

// HasErrors reports whether any unit or the conflict pass produced errors.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	for _, d := range r.Conflicts {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

// CallbackBindings merges the per-unit callback bindings, keyed by bound
// function name. Later files in path order win when two units bind the
// same function.
func (r *Result) CallbackBindings() map[string]string {
	merged := make(map[string]string)
	for _, f := range r.Files {
		for name, fn := range f.Bindings {
			merged[name] = fn
		}
	}
	return merged
}

// ErrorCount sums error diagnostics across all units and conflicts.
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		for _, d := range f.Bag.Items() {
			if d.Severity == diag.SevError {
				n++
			}
		}
	}
	for _, d := range r.Conflicts {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// listSources returns the sorted list of .cn files under dir.
func listSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cn") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every .cn file under dir.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := listSources(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles checks the given source files as one project.
func CheckFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	fset := source.NewFileSet()
	table := symtab.NewTable()
	result := &Result{FileSet: fset, Table: table}

	type unitEntry struct {
		path   string
		fileID source.FileID
		unit   *ast.Unit
		bag    *diag.Bag
	}
	units := make([]unitEntry, 0, len(paths))
	digests := make([]project.Digest, 0, len(paths))

	timer := observ.NewTimer()
	collectPhase := timer.Begin("collect")

	// Load, parse, and collect in deterministic path order. The table only
	// grows here; analysis below never mutates it.
	for _, path := range paths {
		bag := diag.NewBag(opts.maxDiagnostics())
		fileID, err := fset.Load(path)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadFile, source.Span{},
				"failed to load file: "+err.Error()))
			result.Files = append(result.Files, FileResult{Path: path, Bag: bag})
			continue
		}
		file := fset.Get(fileID)
		unit := parser.ParseFile(file, bag)
		units = append(units, unitEntry{path: path, fileID: fileID, unit: unit, bag: bag})

		digest := project.Digest(file.Hash)
		digests = append(digests, digest)
		if snap, ok := opts.Cache.Lookup(digest); ok {
			// Unchanged file: merge the cached symbols instead of walking
			// the declarations again.
			if err := table.RestoreSnapshot(snap); err == nil {
				continue
			}
		}
		scratch := symtab.NewTable()
		sema.NewCollector(scratch, fset).Collect(unit)
		snap := scratch.Snapshot()
		_ = table.RestoreSnapshot(snap) // same schema by construction
		opts.Cache.Store(digest, snap)
	}

	timer.End(collectPhase, fmt.Sprintf("%d files, %d symbols", len(units), table.Len()))
	if len(digests) > 0 {
		result.ProjectDigest = project.Combine(digests[0], digests[1:]...)
	}

	conflictPhase := timer.Begin("conflicts")
	result.Conflicts = symtab.ConflictDiagnostics(table.Conflicts())
	timer.End(conflictPhase, "")

	analyzePhase := timer.Begin("analyze")

	// Per-unit analysis: a fresh analyzer pair per goroutine, shared table.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(units), 1)))
	analyzed := make([]FileResult, len(units))
	for i, entry := range units {
		i, entry := i, entry
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res := sema.NewCallAnalyzer(table, fset).Analyze(entry.unit, entry.bag)
			sema.NewInitAnalyzer(table).Analyze(entry.unit, entry.bag)
			entry.bag.Sort()
			analyzed[i] = FileResult{
				Path:     entry.path,
				FileID:   entry.fileID,
				Bag:      entry.bag,
				Bindings: res.CallbackBindings,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	timer.End(analyzePhase, "")

	result.Files = append(result.Files, analyzed...)
	result.Timings = timer.Report()
	return result, nil
}
