package symtab

import (
	"testing"

	"cinder/internal/diag"
)

func sym(name string, d Dialect, kind SymbolKind, file string, line uint32) *Symbol {
	return &Symbol{Name: name, Dialect: d, Kind: kind, File: file, Line: line}
}

func TestAddSymbolDedupByTriple(t *testing.T) {
	table := NewTable()
	if !table.AddSymbol(sym("init", DialectCinder, SymbolFunction, "main.cn", 3)) {
		t.Fatalf("first add rejected")
	}
	if table.AddSymbol(sym("init", DialectCinder, SymbolFunction, "main.cn", 3)) {
		t.Fatalf("duplicate triple accepted")
	}
	if !table.AddSymbol(sym("init", DialectCinder, SymbolFunction, "main.cn", 9)) {
		t.Fatalf("same name at another line rejected")
	}
	if got := len(table.GetOverloads(DialectCinder, "init")); got != 2 {
		t.Fatalf("overloads = %d, want 2", got)
	}
}

func TestLookupAcrossDialects(t *testing.T) {
	table := NewTable()
	table.AddSymbol(sym("uart_send", DialectC, SymbolFunction, "uart.h", 12))

	if table.HasSymbol(DialectCinder, "uart_send") {
		t.Fatalf("name leaked into the wrong dialect")
	}
	found, ok := table.GetSymbolAny("uart_send")
	if !ok || found.Dialect != DialectC {
		t.Fatalf("GetSymbolAny = %v, %v", found, ok)
	}
	if !table.HasFunction("uart_send") {
		t.Fatalf("HasFunction missed a C function")
	}
}

func TestGetSymbolsByFile(t *testing.T) {
	table := NewTable()
	table.AddSymbol(sym("a", DialectCinder, SymbolVariable, "one.cn", 1))
	table.AddSymbol(sym("b", DialectCinder, SymbolVariable, "one.cn", 2))
	table.AddSymbol(sym("c", DialectCinder, SymbolVariable, "two.cn", 1))

	if got := len(table.GetSymbolsByFile(DialectCinder, "one.cn")); got != 2 {
		t.Fatalf("symbols in one.cn = %d, want 2", got)
	}
}

func TestCrossDialectConflict(t *testing.T) {
	table := NewTable()
	table.AddSymbol(sym("delay", DialectCinder, SymbolFunction, "main.cn", 4))
	table.AddSymbol(sym("delay", DialectC, SymbolFunction, "util.h", 30))

	conflicts := table.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.SymbolName != "delay" || c.Severity != diag.SevError || len(c.Definitions) != 2 {
		t.Fatalf("unexpected conflict: %+v", c)
	}
}

func TestParameterNamesNeverConflict(t *testing.T) {
	table := NewTable()
	a := sym("value", DialectCinder, SymbolVariable, "main.cn", 4)
	a.Parent = "read"
	b := sym("value", DialectC, SymbolVariable, "util.h", 9)
	b.Parent = "write"
	table.AddSymbol(a)
	table.AddSymbol(b)

	if got := table.Conflicts(); len(got) != 0 {
		t.Fatalf("parameter collision reported: %+v", got)
	}
}

func TestPrototypePlusDefinitionIsNotAConflict(t *testing.T) {
	table := NewTable()
	proto := sym("tick", DialectCinder, SymbolFunction, "main.cn", 2)
	proto.DeclOnly = true
	table.AddSymbol(proto)
	table.AddSymbol(sym("tick", DialectCinder, SymbolFunction, "main.cn", 10))

	if got := table.Conflicts(); len(got) != 0 {
		t.Fatalf("prototype+definition flagged: %+v", got)
	}
}

func TestSameDialectDuplicateDefinition(t *testing.T) {
	table := NewTable()
	table.AddSymbol(sym("tick", DialectCinder, SymbolFunction, "main.cn", 2))
	table.AddSymbol(sym("tick", DialectCinder, SymbolFunction, "main.cn", 20))

	conflicts := table.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(conflicts))
	}
}

func TestOverloadsDoNotConflict(t *testing.T) {
	table := NewTable()
	a := sym("min", DialectCPP, SymbolFunction, "algo.hpp", 3)
	a.Signature = "(u8,u8)"
	b := sym("min", DialectCPP, SymbolFunction, "algo.hpp", 8)
	b.Signature = "(u16,u16)"
	table.AddSymbol(a)
	table.AddSymbol(b)

	if got := table.Conflicts(); len(got) != 0 {
		t.Fatalf("overloads flagged: %+v", got)
	}
}

func TestStructFieldCatalog(t *testing.T) {
	table := NewTable()
	table.RegisterStructFields("Packet", []string{"id", "payload"}, map[string]FieldInfo{
		"id":      {Type: "u8"},
		"payload": {Type: "u8", Dims: []DimInfo{{Length: 16}}},
	})

	order, ok := table.GetStructFields("Packet")
	if !ok || len(order) != 2 || order[0] != "id" {
		t.Fatalf("order = %v, %v", order, ok)
	}
	f, ok := table.GetStructFieldType("Packet", "payload")
	if !ok || f.Type != "u8" || f.Dims[0].Length != 16 {
		t.Fatalf("field = %+v, %v", f, ok)
	}
	if _, ok := table.GetStructFieldType("Packet", "missing"); ok {
		t.Fatalf("missing field reported present")
	}
}

func TestOpaqueTypeEitherOrder(t *testing.T) {
	// Alias first, body later.
	table := NewTable()
	table.AddTagAlias("device_s", "device_t")
	if !table.IsOpaqueType("device_t") {
		t.Fatalf("typedef with bodyless tag must be opaque")
	}
	table.MarkTagHasBody("device_s")
	if table.IsOpaqueType("device_t") {
		t.Fatalf("typedef stays opaque after the tag got a body")
	}

	// Body first, alias later.
	table = NewTable()
	table.MarkTagHasBody("config_s")
	table.AddTagAlias("config_s", "config_t")
	if table.IsOpaqueType("config_t") {
		t.Fatalf("order of facts must not matter")
	}

	if table.IsOpaqueType("unknown_t") {
		t.Fatalf("unknown typedef must not be opaque")
	}
}

func TestEnumBitWidth(t *testing.T) {
	table := NewTable()
	table.RegisterEnumBitWidth("Mode", 8)
	if bits, ok := table.GetEnumBitWidth("Mode"); !ok || bits != 8 {
		t.Fatalf("bits = %d, %v", bits, ok)
	}
	if _, ok := table.GetEnumBitWidth("Other"); ok {
		t.Fatalf("unknown enum has a width")
	}
}

func TestClear(t *testing.T) {
	table := NewTable()
	table.AddSymbol(sym("x", DialectCinder, SymbolVariable, "a.cn", 1))
	table.RegisterEnumBitWidth("Mode", 8)
	table.Clear()

	if table.Len() != 0 || table.HasSymbolAny("x") {
		t.Fatalf("clear left symbols behind")
	}
	if _, ok := table.GetEnumBitWidth("Mode"); ok {
		t.Fatalf("clear left registries behind")
	}
}
