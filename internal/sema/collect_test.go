package sema

import (
	"testing"

	"cinder/internal/symtab"
)

func TestCollectFunctionsAndParams(t *testing.T) {
	table, _, _ := parseSnippet(t, `
u8 add(u8 a, u8 b) {
    return a + b;
}
void reset();
`)
	sym, ok := table.GetSymbol(symtab.DialectCinder, "add")
	if !ok || sym.Kind != symtab.SymbolFunction {
		t.Fatalf("add not collected as function")
	}
	if sym.Signature != "(u8,u8)" {
		t.Fatalf("signature = %q", sym.Signature)
	}
	if sym.Type != "u8" || len(sym.Params) != 2 {
		t.Fatalf("return type %q, %d params", sym.Type, len(sym.Params))
	}

	param, ok := table.GetSymbol(symtab.DialectCinder, "a")
	if !ok || param.Parent != "add" {
		t.Fatalf("parameter a should carry its function as parent")
	}

	proto, ok := table.GetSymbol(symtab.DialectCinder, "reset")
	if !ok || !proto.DeclOnly {
		t.Fatalf("prototype should be collected as declaration only")
	}
}

func TestCollectContainerMangling(t *testing.T) {
	table, _, _ := parseSnippet(t, `
scope Motor {
    u16 rpm;
    void start() {
    }
}
`)
	if sym, ok := table.GetSymbol(symtab.DialectCinder, "Motor"); !ok || sym.Kind != symtab.SymbolContainer {
		t.Fatalf("container Motor not collected")
	}
	start, ok := table.GetSymbol(symtab.DialectCinder, "Motor_start")
	if !ok || start.Parent != "Motor" {
		t.Fatalf("member function should be mangled with its container as parent")
	}
	rpm, ok := table.GetSymbol(symtab.DialectCinder, "Motor_rpm")
	if !ok || rpm.Kind != symtab.SymbolVariable {
		t.Fatalf("member variable should be mangled")
	}
}

func TestCollectStructAndEnum(t *testing.T) {
	table, _, _ := parseSnippet(t, `
struct Frame {
    u8 id;
    u8 data[8];
}
enum Color : 8 {
    Red,
    Green,
}
`)
	order, ok := table.GetStructFields("Frame")
	if !ok || len(order) != 2 || order[0] != "id" {
		t.Fatalf("struct fields = %v", order)
	}
	data, _ := table.GetStructFieldType("Frame", "data")
	if len(data.Dims) != 1 || data.Dims[0].Length != 8 {
		t.Fatalf("array field dims = %v", data.Dims)
	}
	if table.IsOpaqueType("Frame") {
		t.Fatalf("defined struct must not be opaque")
	}

	bits, ok := table.GetEnumBitWidth("Color")
	if !ok || bits != 8 {
		t.Fatalf("enum bit width = %d", bits)
	}
	member, ok := table.GetSymbol(symtab.DialectCinder, "Green")
	if !ok || member.Kind != symtab.SymbolEnumMember || member.Type != "Color" {
		t.Fatalf("enum member not collected")
	}
}

func TestCollectGlobalArrayDims(t *testing.T) {
	table, _, _ := parseSnippet(t, `
const u8 BUF_SIZE = 32;
u8 buffer[BUF_SIZE];
`)
	buf, ok := table.GetSymbol(symtab.DialectCinder, "buffer")
	if !ok || len(buf.Dims) != 1 {
		t.Fatalf("buffer dims missing")
	}
	if buf.Dims[0].IsLiteral() || buf.Dims[0].Name != "BUF_SIZE" {
		t.Fatalf("named dimension should stay unresolved: %+v", buf.Dims[0])
	}
}
