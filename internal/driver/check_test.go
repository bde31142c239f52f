package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cinder/internal/diag"
	"cinder/internal/project"
	"cinder/internal/symtab"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func countAll(r *Result, code diag.Code) int {
	n := 0
	for _, f := range r.Files {
		for _, d := range f.Bag.Items() {
			if d.Code == code {
				n++
			}
		}
	}
	return n
}

func TestCheckDirCleanProject(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cn", `
#include <stdio.h>
void setup() {
}
void main() {
    setup();
    printf("ready");
}
`)
	res, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		for _, f := range res.Files {
			for _, d := range f.Bag.Items() {
				t.Logf("%s: %s: %s", f.Path, d.Code.ID(), d.Message)
			}
		}
		t.Fatalf("clean project reported errors")
	}

	if res.ProjectDigest == (project.Digest{}) {
		t.Fatalf("project digest not computed")
	}
	again, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if again.ProjectDigest != res.ProjectDigest {
		t.Fatalf("project digest not stable across runs")
	}
}

func TestCheckDirOrderViolation(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cn", `
void main() {
    helper();
}
void helper() {
}
`)
	res, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := countAll(res, diag.SemaCallBeforeDef); got != 1 {
		t.Fatalf("got %d order violations, want 1", got)
	}
	if res.ErrorCount() != 1 {
		t.Fatalf("error count = %d", res.ErrorCount())
	}
}

func TestCheckDirSymbolsVisibleAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "lib.cn", `
u8 shared_counter = 0;
void tick() {
}
`)
	writeSource(t, dir, "main.cn", `
void main() {
}
`)
	res, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Table.HasSymbol(symtab.DialectCinder, "tick") {
		t.Fatalf("symbol from lib.cn missing in shared table")
	}
	if !res.Table.HasSymbol(symtab.DialectCinder, "shared_counter") {
		t.Fatalf("global from lib.cn missing in shared table")
	}
}

func TestCheckDirCrossDialectConflict(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cn", `
void init() {
}
void main() {
    init();
}
`)
	res, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Simulate a header-declared name colliding with a Cinder definition.
	res.Table.AddSymbol(&symtab.Symbol{
		Name:    "init",
		Kind:    symtab.SymbolFunction,
		Dialect: symtab.DialectC,
		File:    "vendor.h",
		Line:    10,
	})
	conflicts := res.Table.Conflicts()
	if len(conflicts) != 1 || conflicts[0].SymbolName != "init" {
		t.Fatalf("conflicts = %+v", conflicts)
	}
}

func TestCheckDirCallbackBindings(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cn", `
void onTick() {
}
void main() {
    isr handler = onTick;
    handler();
}
`)
	res, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var bindings map[string]string
	for _, f := range res.Files {
		bindings = f.Bindings
	}
	if bindings["onTick"] != "isr" {
		t.Fatalf("bindings = %v", bindings)
	}
	if merged := res.CallbackBindings(); merged["onTick"] != "isr" {
		t.Fatalf("merged bindings = %v", merged)
	}
}

func TestCheckDirUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "main.cn", `
void main() {
}
`)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Table.Len() != second.Table.Len() {
		t.Fatalf("cached run collected %d symbols, first run %d",
			second.Table.Len(), first.Table.Len())
	}
	if second.HasErrors() {
		t.Fatalf("cached run reported errors")
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	res, err := CheckFiles(context.Background(), []string{"/does/not/exist.cn"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if countAll(res, diag.IOLoadFile) != 1 {
		t.Fatalf("expected one load diagnostic")
	}
}
