package sema

import (
	"strings"

	"cinder/internal/ast"
	"cinder/internal/source"
	"cinder/internal/symtab"
)

// Collector walks a parsed unit and records its declarations in the shared
// symbol table. Collection runs file by file before any analysis starts;
// the table only grows, so the order in which units arrive does not matter.
type Collector struct {
	table *symtab.Table
	fset  *source.FileSet
}

func NewCollector(table *symtab.Table, fset *source.FileSet) *Collector {
	return &Collector{table: table, fset: fset}
}

// Collect registers every top-level declaration of the unit under the
// Cinder dialect.
func (c *Collector) Collect(unit *ast.Unit) {
	for _, decl := range unit.Decls {
		c.collectDecl(unit.Path, "", decl)
	}
}

func (c *Collector) line(sp source.Span) uint32 {
	start, _ := c.fset.Resolve(sp)
	return start.Line
}

func (c *Collector) collectDecl(path, parent string, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		c.collectFunc(path, parent, d)
	case *ast.VarDecl:
		c.collectVar(path, parent, d)
	case *ast.StructDecl:
		c.collectStruct(path, d)
	case *ast.EnumDecl:
		c.collectEnum(path, d)
	case *ast.ScopeDecl:
		c.collectScope(path, d)
	case *ast.TypeAliasDecl:
		c.table.AddSymbol(&symtab.Symbol{
			Name:     d.Name.Name,
			Kind:     symtab.SymbolTypeAlias,
			Dialect:  symtab.DialectCinder,
			File:     path,
			Line:     c.line(d.Name.Pos),
			Exported: true,
			Type:     d.Target.Name,
		})
	}
}

// mangle joins a container and member name the way the C backend will.
func mangle(container, member string) string {
	if container == "" {
		return member
	}
	return container + "_" + member
}

func (c *Collector) collectFunc(path, parent string, d *ast.FuncDecl) {
	name := mangle(parent, d.Name.Name)
	params := make([]symtab.ParamInfo, 0, len(d.Params))
	for _, p := range d.Params {
		params = append(params, symtab.ParamInfo{
			Name:    p.Name.Name,
			Type:    p.Type.Name,
			Const:   p.Type.Const,
			IsArray: len(p.Type.Dims) > 0,
		})
	}
	c.table.AddSymbol(&symtab.Symbol{
		Name:      name,
		Kind:      symtab.SymbolFunction,
		Dialect:   symtab.DialectCinder,
		File:      path,
		Line:      c.line(d.Name.Pos),
		Exported:  parent == "",
		DeclOnly:  d.IsPrototype(),
		Parent:    parent,
		Signature: signatureOf(d.Params),
		Type:      d.Ret.Name,
		Params:    params,
	})
	for _, p := range d.Params {
		c.table.AddSymbol(&symtab.Symbol{
			Name:    p.Name.Name,
			Kind:    symtab.SymbolVariable,
			Dialect: symtab.DialectCinder,
			File:    path,
			Line:    c.line(p.Name.Pos),
			Parent:  name,
			Type:    p.Type.Name,
		})
	}
}

func (c *Collector) collectVar(path, parent string, d *ast.VarDecl) {
	c.table.AddSymbol(&symtab.Symbol{
		Name:     mangle(parent, d.Name.Name),
		Kind:     symtab.SymbolVariable,
		Dialect:  symtab.DialectCinder,
		File:     path,
		Line:     c.line(d.Name.Pos),
		Exported: parent == "",
		Parent:   parent,
		Type:     d.Type.Name,
		Dims:     dimInfos(d.Type.Dims),
	})
}

func (c *Collector) collectStruct(path string, d *ast.StructDecl) {
	name := d.Name.Name
	c.table.AddSymbol(&symtab.Symbol{
		Name:     name,
		Kind:     symtab.SymbolStruct,
		Dialect:  symtab.DialectCinder,
		File:     path,
		Line:     c.line(d.Name.Pos),
		Exported: true,
	})
	order := make([]string, 0, len(d.Fields))
	fields := make(map[string]symtab.FieldInfo, len(d.Fields))
	for _, f := range d.Fields {
		order = append(order, f.Name.Name)
		fields[f.Name.Name] = symtab.FieldInfo{
			Type: f.Type.Name,
			Dims: dimInfos(f.Type.Dims),
		}
	}
	c.table.RegisterStructFields(name, order, fields)
	c.table.MarkTagHasBody(name)
}

func (c *Collector) collectEnum(path string, d *ast.EnumDecl) {
	name := d.Name.Name
	c.table.AddSymbol(&symtab.Symbol{
		Name:     name,
		Kind:     symtab.SymbolEnum,
		Dialect:  symtab.DialectCinder,
		File:     path,
		Line:     c.line(d.Name.Pos),
		Exported: true,
	})
	if d.Bits > 0 {
		c.table.RegisterEnumBitWidth(name, d.Bits)
	}
	for _, m := range d.Members {
		c.table.AddSymbol(&symtab.Symbol{
			Name:     m.Name.Name,
			Kind:     symtab.SymbolEnumMember,
			Dialect:  symtab.DialectCinder,
			File:     path,
			Line:     c.line(m.Name.Pos),
			Exported: true,
			Type:     name,
		})
	}
}

func (c *Collector) collectScope(path string, d *ast.ScopeDecl) {
	name := d.Name.Name
	c.table.AddSymbol(&symtab.Symbol{
		Name:     name,
		Kind:     symtab.SymbolContainer,
		Dialect:  symtab.DialectCinder,
		File:     path,
		Line:     c.line(d.Name.Pos),
		Exported: true,
	})
	for _, member := range d.Decls {
		c.collectDecl(path, name, member)
	}
}

func dimInfos(dims []ast.ArrayDim) []symtab.DimInfo {
	if len(dims) == 0 {
		return nil
	}
	out := make([]symtab.DimInfo, len(dims))
	for i, d := range dims {
		out[i] = symtab.DimInfo{Length: d.Length, Name: d.Name}
	}
	return out
}

// signatureOf renders the parameter type list, e.g. "(u8,u8[])". Two
// declarations with the same rendering are the same signature for conflict
// and overload purposes.
func signatureOf(params []ast.Param) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Type.Name)
		if len(p.Type.Dims) > 0 {
			sb.WriteString("[]")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
