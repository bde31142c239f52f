package sema

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/symtab"
)

// CallResult carries the per-unit facts the analyzer discovers besides
// diagnostics. CallbackBindings maps a function name to the callback
// typedef it was bound through, whether by variable initialization,
// assignment, or being passed where a function pointer is expected; the C
// backend uses it to emit pointer typedefs and registration tables.
type CallResult struct {
	CallbackBindings map[string]string
}

// CallAnalyzer enforces define-before-use for function calls within one
// translation unit. A call site is accepted when any exemption applies:
// compiler intrinsics, the `global.` raw escape, C standard-library names
// whose header is included, callback-typed variables in scope, symbols
// declared by a foreign dialect, functions already defined or prototyped
// above the call, and bare member calls inside the same container.
// Everything else is reported as a call before definition; a function
// calling itself is reported as recursion.
//
// Analyze resets all analyzer state, so one instance may be reused
// sequentially, and separate instances may run in parallel over a shared
// table.
type CallAnalyzer struct {
	table *symtab.Table
	fset  *source.FileSet

	includes map[string]bool
	defined  map[string]bool
	laterDef map[string]source.Span
	bindings map[string]string

	// per-function state
	current   string
	container string
	callables map[string]string

	bag *diag.Bag
}

func NewCallAnalyzer(table *symtab.Table, fset *source.FileSet) *CallAnalyzer {
	return &CallAnalyzer{table: table, fset: fset}
}

// Analyze walks the unit in declaration order and reports call-order
// violations into bag.
func (a *CallAnalyzer) Analyze(unit *ast.Unit, bag *diag.Bag) CallResult {
	a.includes = make(map[string]bool, len(unit.Includes))
	a.defined = make(map[string]bool)
	a.laterDef = make(map[string]source.Span)
	a.bindings = make(map[string]string)
	a.current = ""
	a.container = ""
	a.callables = nil
	a.bag = bag

	for _, inc := range unit.Includes {
		a.includes[inc.Name] = true
	}
	a.indexDefinitions("", unit.Decls)

	for _, decl := range unit.Decls {
		a.checkDecl("", decl)
	}
	return CallResult{CallbackBindings: a.bindings}
}

// indexDefinitions records where every function of the unit is defined, so
// an order violation can point at the later definition site.
func (a *CallAnalyzer) indexDefinitions(container string, decls []ast.Decl) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := mangle(container, d.Name.Name)
			if _, ok := a.laterDef[name]; !ok {
				a.laterDef[name] = d.Name.Pos
			}
		case *ast.ScopeDecl:
			a.indexDefinitions(d.Name.Name, d.Decls)
		}
	}
}

func (a *CallAnalyzer) checkDecl(container string, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		a.checkFunc(container, d)
	case *ast.VarDecl:
		a.recordBinding(d.Type, d.Init)
		if d.Init != nil {
			a.checkExpr(d.Init)
		}
	case *ast.ScopeDecl:
		for _, member := range d.Decls {
			a.checkDecl(d.Name.Name, member)
		}
	}
}

func (a *CallAnalyzer) checkFunc(container string, d *ast.FuncDecl) {
	name := mangle(container, d.Name.Name)
	if d.IsPrototype() {
		// A prototype promises the definition; later calls are in order.
		a.defined[name] = true
		return
	}

	a.current = name
	a.container = container
	a.callables = make(map[string]string)
	for _, p := range d.Params {
		if a.isCallbackType(p.Type.Name) {
			a.callables[p.Name.Name] = p.Type.Name
		}
	}
	a.checkBlock(d.Body)
	a.current = ""
	a.container = ""
	a.callables = nil

	a.defined[name] = true
}

func (a *CallAnalyzer) checkBlock(b *ast.BlockStmt) {
	for _, stmt := range b.Stmts {
		a.checkStmt(stmt)
	}
}

func (a *CallAnalyzer) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		a.checkBlock(s)
	case *ast.DeclStmt:
		if a.isCallbackType(s.Decl.Type.Name) {
			a.callables[s.Decl.Name.Name] = s.Decl.Type.Name
		}
		a.recordBinding(s.Decl.Type, s.Decl.Init)
		if s.Decl.Init != nil {
			a.checkExpr(s.Decl.Init)
		}
	case *ast.AssignStmt:
		if target, ok := s.Target.(*ast.IdentExpr); ok {
			if typ, isCb := a.callables[target.Name]; isCb {
				if fn, ok := a.boundFunction(s.Value); ok {
					a.bindings[fn] = typ
				}
			}
		}
		a.checkExpr(s.Target)
		a.checkExpr(s.Value)
	case *ast.IfStmt:
		a.checkExpr(s.Cond)
		a.checkBlock(s.Then)
		if s.Else != nil {
			a.checkStmt(s.Else)
		}
	case *ast.WhileStmt:
		a.checkExpr(s.Cond)
		a.checkBlock(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			a.checkStmt(s.Init)
		}
		if s.Cond != nil {
			a.checkExpr(s.Cond)
		}
		if s.Post != nil {
			a.checkStmt(s.Post)
		}
		a.checkBlock(s.Body)
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.checkExpr(s.Value)
		}
	case *ast.ExprStmt:
		a.checkExpr(s.X)
	}
}

func (a *CallAnalyzer) checkExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.CallExpr:
		a.checkCall(e)
	case *ast.MemberExpr:
		a.checkExpr(e.X)
	case *ast.IndexExpr:
		a.checkExpr(e.X)
		a.checkExpr(e.Index)
	case *ast.UnaryExpr:
		a.checkExpr(e.X)
	case *ast.BinaryExpr:
		a.checkExpr(e.X)
		a.checkExpr(e.Y)
	}
}

func (a *CallAnalyzer) checkCall(call *ast.CallExpr) {
	if callee, ok := call.Callee.(*ast.IdentExpr); ok {
		a.recordArgBindings(callee.Name, call.Args)
	}
	for _, arg := range call.Args {
		a.checkExpr(arg)
	}

	switch callee := call.Callee.(type) {
	case *ast.IdentExpr:
		a.checkCallName(callee.Name, true, callee.Pos)
	case *ast.MemberExpr:
		root, ok := callee.X.(*ast.IdentExpr)
		if !ok {
			// Deep chains resolve through field types; out of scope here.
			a.checkExpr(callee.X)
			return
		}
		switch {
		case root.Name == "global":
			// Raw C escape: emitted verbatim, never checked.
		case root.Name == "this" && a.container != "":
			a.checkCallName(mangle(a.container, callee.Sel.Name), false, callee.Sel.Pos)
		case a.isContainer(root.Name):
			a.checkCallName(mangle(root.Name, callee.Sel.Name), false, callee.Sel.Pos)
		default:
			// Struct-field function pointers and unknown roots pass through.
			a.checkExpr(callee.X)
		}
	default:
		a.checkExpr(call.Callee)
	}
}

// checkCallName applies the exemption ladder to one resolved callee name.
func (a *CallAnalyzer) checkCallName(name string, bare bool, pos source.Span) {
	if name == a.current {
		a.report(diag.SemaSelfRecursion, pos, name,
			fmt.Sprintf("function '%s' calls itself", name))
		return
	}
	if a.defined[name] {
		return
	}
	if isIntrinsic(name) {
		return
	}
	if header, ok := StdlibHeaderFor(name); ok && a.includes[header] {
		return
	}
	if a.isExternalFunction(name) {
		return
	}
	if _, ok := a.callables[name]; ok {
		return
	}
	if bare && a.container != "" {
		mangled := mangle(a.container, name)
		if mangled == a.current {
			a.report(diag.SemaSelfRecursion, pos, name,
				fmt.Sprintf("function '%s' calls itself", mangled))
			return
		}
		// An unqualified sibling call resolves only once the sibling is
		// defined or prototyped above; order applies inside containers too.
		if a.defined[mangled] {
			return
		}
	}

	d := diag.NewError(diag.SemaCallBeforeDef, pos,
		fmt.Sprintf("call to '%s' before its definition", name)).
		WithSymbol(name)
	if defPos, ok := a.laterDef[name]; ok {
		start, _ := a.fset.Resolve(defPos)
		d = d.WithNote(defPos, fmt.Sprintf("'%s' is defined later, at line %d",
			name, start.Line))
	}
	if header, ok := StdlibHeaderFor(name); ok {
		d = d.WithNote(source.Span{}, fmt.Sprintf("'%s' is declared by <%s>, which is not included",
			name, header))
	}
	if bare {
		d = d.WithFix(fmt.Sprintf("emit the call as raw C with 'global.%s()'", name),
			diag.FixEdit{Span: pos, NewText: "global." + name})
	}
	a.bag.Add(d)
}

func (a *CallAnalyzer) report(code diag.Code, pos source.Span, symbol, msg string) {
	a.bag.Add(diag.NewError(code, pos, msg).WithSymbol(symbol))
}

// isCallbackType reports whether a type name can hold a function: the
// interrupt-handler type, a typedef chain ending in it, or a function name.
// Every function definition implicitly declares a pointer typedef under its
// own name, so `tick t;` after `void tick()` is a callback variable.
func (a *CallAnalyzer) isCallbackType(name string) bool {
	for depth := 0; depth < 16; depth++ {
		if name == "isr" {
			return true
		}
		if _, ok := a.laterDef[name]; ok {
			return true
		}
		sym, ok := a.table.GetSymbolAny(name)
		if !ok {
			return false
		}
		if sym.Kind == symtab.SymbolFunction {
			return true
		}
		if sym.Kind != symtab.SymbolTypeAlias || sym.Type == "" {
			return false
		}
		name = sym.Type
	}
	return false
}

func (a *CallAnalyzer) isContainer(name string) bool {
	sym, ok := a.table.GetSymbol(symtab.DialectCinder, name)
	return ok && sym.Kind == symtab.SymbolContainer
}

// isExternalFunction reports whether the table knows the name as a
// function that this unit does not define itself. Imported symbols carry
// no position in this unit, so declaration order never applies to them;
// a local function stays ordered even when a header declares the same
// name.
func (a *CallAnalyzer) isExternalFunction(name string) bool {
	if _, local := a.laterDef[name]; local {
		return false
	}
	return a.table.HasFunction(name)
}

// recordBinding notes `isr handler = someFunc;` style initializations.
func (a *CallAnalyzer) recordBinding(typ ast.TypeRef, init ast.Expr) {
	if init == nil || !a.isCallbackType(typ.Name) {
		return
	}
	if fn, ok := a.boundFunction(init); ok {
		a.bindings[fn] = typ.Name
	}
}

// recordArgBindings matches bare function arguments against the callee's
// declared parameters; passing a function where a pointer typedef is
// expected binds it the same way an initialization does.
func (a *CallAnalyzer) recordArgBindings(callee string, args []ast.Expr) {
	sym, ok := a.table.GetSymbolAny(callee)
	if !ok || sym.Kind != symtab.SymbolFunction {
		return
	}
	for i, arg := range args {
		if i >= len(sym.Params) {
			break
		}
		if !a.isCallbackType(sym.Params[i].Type) {
			continue
		}
		if fn, ok := a.boundFunction(arg); ok {
			a.bindings[fn] = sym.Params[i].Type
		}
	}
}

// boundFunction reports the function a value expression names, if any.
func (a *CallAnalyzer) boundFunction(value ast.Expr) (string, bool) {
	id, ok := value.(*ast.IdentExpr)
	if !ok {
		return "", false
	}
	if _, ok := a.laterDef[id.Name]; ok || a.defined[id.Name] {
		return id.Name, true
	}
	if a.table.HasFunction(id.Name) {
		return id.Name, true
	}
	return "", false
}
