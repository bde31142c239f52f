package sema

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/scopes"
	"cinder/internal/source"
	"cinder/internal/symtab"
	"cinder/internal/token"
)

// VarState is the per-variable fact the init analyzer tracks: where the
// variable was declared and how much of it has been assigned. Fields is nil
// for scalars; for struct locals it records per-field assignment so a
// struct filled field by field counts as initialized.
type VarState struct {
	Decl        source.Span
	TypeName    string
	Initialized bool
	Fields      map[string]bool
	// FixedString marks string<N> locals. Their length property only
	// becomes meaningful on whole-value assignment, so element writes do
	// not count as initialization.
	FixedString bool
}

func (v *VarState) clone() *VarState {
	cp := *v
	if v.Fields != nil {
		cp.Fields = make(map[string]bool, len(v.Fields))
		for k, b := range v.Fields {
			cp.Fields[k] = b
		}
	}
	return &cp
}

func (v *VarState) allFieldsSet() bool {
	if v.Fields == nil {
		return false
	}
	for _, set := range v.Fields {
		if !set {
			return false
		}
	}
	return true
}

// InitAnalyzer performs definite-assignment checking over local variables.
// Parameters and globals always count as initialized; only function locals
// are tracked. Branch handling is deliberately optimistic where the
// embedded style warrants it: an if with an else keeps assignments made in
// either arm, and a counted for loop with a literal zero start and a
// positive literal bound is known to run at least once. An if without an
// else and a while loop may be skipped entirely, so their effects are
// rolled back.
//
// Passing a variable to a function is treated as potential initialization:
// the read is not flagged and the variable counts as assigned afterward,
// matching C out-parameter conventions.
type InitAnalyzer struct {
	table *symtab.Table
	vars  *scopes.Stack[*VarState]
	bag   *diag.Bag
	// inArgs is set while walking call arguments, where reads are never
	// flagged (the callee may be about to fill the value in).
	inArgs bool
	// reported dedupes diagnostics per declaration. Branch rollback
	// restores assignment state but must not resurrect a report.
	reported map[reportKey]bool
}

// reportKey identifies one diagnostic site: the declaration span, plus the
// field name for per-field struct reports.
type reportKey struct {
	decl  source.Span
	field string
}

func NewInitAnalyzer(table *symtab.Table) *InitAnalyzer {
	return &InitAnalyzer{table: table}
}

// Analyze checks every function body of the unit.
func (a *InitAnalyzer) Analyze(unit *ast.Unit, bag *diag.Bag) {
	a.bag = bag
	a.inArgs = false
	for _, decl := range unit.Decls {
		a.analyzeDecl(decl)
	}
}

func (a *InitAnalyzer) analyzeDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if !d.IsPrototype() {
			a.analyzeFunc(d)
		}
	case *ast.ScopeDecl:
		for _, member := range d.Decls {
			a.analyzeDecl(member)
		}
	}
}

func (a *InitAnalyzer) analyzeFunc(d *ast.FuncDecl) {
	a.reported = make(map[reportKey]bool)
	a.vars = scopes.New[*VarState]()
	a.vars.EnterScope()
	for _, p := range d.Params {
		a.vars.Declare(p.Name.Name, &VarState{
			Decl:        p.Name.Pos,
			TypeName:    p.Type.Name,
			Initialized: true,
		})
	}
	a.walkBlock(d.Body)
	a.vars.ExitScope()
	a.vars = nil
}

func (a *InitAnalyzer) walkBlock(b *ast.BlockStmt) {
	a.vars.EnterScope()
	for _, stmt := range b.Stmts {
		a.walkStmt(stmt)
	}
	a.vars.ExitScope()
}

func (a *InitAnalyzer) walkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		a.walkBlock(s)
	case *ast.DeclStmt:
		a.declare(s.Decl)
	case *ast.AssignStmt:
		a.useExpr(s.Value)
		a.assignTo(s.Target)
	case *ast.IfStmt:
		a.useExpr(s.Cond)
		if s.Else == nil {
			// The branch may be skipped; its assignments do not survive.
			saved := a.snapshot()
			a.walkBlock(s.Then)
			a.restore(saved)
			return
		}
		// With an else present both arms contribute assignments. This keeps
		// a variable assigned in only one arm optimistically initialized; the
		// C compiler downstream still catches the truly dead paths.
		a.walkBlock(s.Then)
		a.walkStmt(s.Else)
	case *ast.WhileStmt:
		a.useExpr(s.Cond)
		saved := a.snapshot()
		a.walkBlock(s.Body)
		a.restore(saved)
	case *ast.ForStmt:
		a.vars.EnterScope()
		if s.Init != nil {
			a.walkStmt(s.Init)
		}
		if s.Cond != nil {
			a.useExpr(s.Cond)
		}
		if isCountedLoop(s) {
			// Zero start and a positive literal bound: the body runs at
			// least once, so its assignments stand.
			a.walkBlock(s.Body)
			if s.Post != nil {
				a.walkStmt(s.Post)
			}
		} else {
			saved := a.snapshot()
			a.walkBlock(s.Body)
			if s.Post != nil {
				a.walkStmt(s.Post)
			}
			a.restore(saved)
		}
		a.vars.ExitScope()
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.useExpr(s.Value)
		}
	case *ast.ExprStmt:
		a.useExpr(s.X)
	}
}

func (a *InitAnalyzer) declare(d *ast.VarDecl) {
	state := &VarState{
		Decl:        d.Name.Pos,
		TypeName:    d.Type.Name,
		FixedString: d.Type.IsFixedString(),
	}
	if fieldOrder, ok := a.table.GetStructFields(d.Type.Name); ok {
		state.Fields = make(map[string]bool, len(fieldOrder))
		for _, f := range fieldOrder {
			state.Fields[f] = false
		}
	}
	if d.Init != nil {
		a.useExpr(d.Init)
		state.Initialized = true
	} else if a.defaultConstructed(d.Type.Name) {
		state.Initialized = true
	}
	a.vars.Declare(d.Name.Name, state)
}

// defaultConstructed reports whether the type is a C++ class or struct,
// whose default constructor runs at declaration.
func (a *InitAnalyzer) defaultConstructed(typeName string) bool {
	sym, ok := a.table.GetSymbol(symtab.DialectCPP, typeName)
	if !ok {
		return false
	}
	return sym.Kind == symtab.SymbolStruct || sym.Kind == symtab.SymbolContainer
}

func (a *InitAnalyzer) assignTo(target ast.Expr) {
	switch t := target.(type) {
	case *ast.IdentExpr:
		if state, ok := a.vars.Lookup(t.Name); ok {
			state.Initialized = true
		}
	case *ast.MemberExpr:
		root, ok := t.X.(*ast.IdentExpr)
		if !ok {
			a.markRoot(t)
			return
		}
		state, ok := a.vars.Lookup(root.Name)
		if !ok {
			return
		}
		if state.Fields != nil {
			state.Fields[t.Sel.Name] = true
			if state.allFieldsSet() {
				state.Initialized = true
			}
			return
		}
		state.Initialized = true
	case *ast.IndexExpr:
		a.useExpr(t.Index)
		a.markRoot(t)
	}
}

// markRoot marks the base variable of a member or index chain assigned.
// Fixed-capacity strings are excluded: writing single characters leaves
// the length property undefined until a whole-value assignment.
func (a *InitAnalyzer) markRoot(e ast.Expr) {
	if root := ast.RootIdent(e); root != nil {
		if state, ok := a.vars.Lookup(root.Name); ok && !state.FixedString {
			state.Initialized = true
		}
	}
}

func (a *InitAnalyzer) useExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IdentExpr:
		a.checkRead(e.Name, e.Pos)
	case *ast.MemberExpr:
		a.checkMemberRead(e)
	case *ast.IndexExpr:
		a.useExpr(e.Index)
		if root := ast.RootIdent(e.X); root != nil {
			a.checkRead(root.Name, root.Pos)
		} else {
			a.useExpr(e.X)
		}
	case *ast.UnaryExpr:
		a.useExpr(e.X)
	case *ast.BinaryExpr:
		a.useExpr(e.X)
		a.useExpr(e.Y)
	case *ast.CallExpr:
		a.useCall(e)
	}
}

// useCall applies out-parameter optimism: a bare variable handed to a call
// is not a read, and it counts as assigned once the call returns.
func (a *InitAnalyzer) useCall(call *ast.CallExpr) {
	if id, ok := call.Callee.(*ast.IdentExpr); ok {
		// A callee identifier is only a variable read when it names a
		// tracked local (a callback variable being invoked).
		if _, tracked := a.vars.Lookup(id.Name); tracked {
			a.checkRead(id.Name, id.Pos)
		}
	}

	var outs []*VarState
	saved := a.inArgs
	a.inArgs = true
	for _, arg := range call.Args {
		if state, ok := a.byRefArg(arg); ok {
			outs = append(outs, state)
			continue
		}
		a.useExpr(arg)
	}
	a.inArgs = saved
	for _, state := range outs {
		state.Initialized = true
	}
}

// byRefArg reports the tracked variable an argument passes by reference:
// a bare identifier, or an explicit address-of.
func (a *InitAnalyzer) byRefArg(arg ast.Expr) (*VarState, bool) {
	if u, ok := arg.(*ast.UnaryExpr); ok {
		arg = u.X
	}
	id, ok := arg.(*ast.IdentExpr)
	if !ok {
		return nil, false
	}
	state, ok := a.vars.Lookup(id.Name)
	return state, ok
}

func (a *InitAnalyzer) checkRead(name string, pos source.Span) {
	state, ok := a.vars.Lookup(name)
	if !ok {
		return // globals, constants, and functions are not tracked
	}
	if state.Initialized {
		return
	}
	if state.allFieldsSet() {
		state.Initialized = true
		return
	}
	if a.inArgs {
		return
	}
	a.reportUninit(name, pos, state)
	state.Initialized = true // one report per variable, not per use
}

func (a *InitAnalyzer) checkMemberRead(e *ast.MemberExpr) {
	root, ok := e.X.(*ast.IdentExpr)
	if !ok {
		a.useExpr(e.X)
		return
	}
	state, ok := a.vars.Lookup(root.Name)
	if !ok {
		return
	}
	if state.Initialized || a.inArgs {
		return
	}
	if state.Fields != nil {
		if state.Fields[e.Sel.Name] {
			return
		}
		key := reportKey{decl: state.Decl, field: e.Sel.Name}
		if !a.reported[key] {
			a.reported[key] = true
			a.bag.Add(diag.NewError(diag.SemaUseBeforeInit, e.Sel.Pos,
				fmt.Sprintf("field '%s.%s' is read before it is assigned", root.Name, e.Sel.Name)).
				WithSymbol(root.Name).
				WithNote(state.Decl, fmt.Sprintf("'%s' declared here without an initializer", root.Name)))
		}
		state.Fields[e.Sel.Name] = true
		return
	}
	a.reportUninit(root.Name, root.Pos, state)
	state.Initialized = true
}

func (a *InitAnalyzer) reportUninit(name string, pos source.Span, state *VarState) {
	key := reportKey{decl: state.Decl}
	if a.reported[key] {
		return
	}
	a.reported[key] = true
	a.bag.Add(diag.NewError(diag.SemaUseBeforeInit, pos,
		fmt.Sprintf("variable '%s' is used before it is initialized", name)).
		WithSymbol(name).
		WithNote(state.Decl, fmt.Sprintf("'%s' declared here without an initializer", name)))
}

func (a *InitAnalyzer) snapshot() map[string]*VarState {
	return a.vars.CloneState(func(s *VarState) *VarState { return s.clone() })
}

func (a *InitAnalyzer) restore(saved map[string]*VarState) {
	a.vars.RestoreState(saved, func(_, saved *VarState) *VarState { return saved })
}

// isCountedLoop recognizes `for (i = 0; i < N; ...)` with a literal
// positive N, the deterministic loop shape guaranteed to execute.
func isCountedLoop(s *ast.ForStmt) bool {
	var loopVar string
	switch init := s.Init.(type) {
	case *ast.AssignStmt:
		id, ok := init.Target.(*ast.IdentExpr)
		if !ok || !isZeroLiteral(init.Value) {
			return false
		}
		loopVar = id.Name
	case *ast.DeclStmt:
		if init.Decl.Init == nil || !isZeroLiteral(init.Decl.Init) {
			return false
		}
		loopVar = init.Decl.Name.Name
	default:
		return false
	}

	cond, ok := s.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != token.Lt {
		return false
	}
	id, ok := cond.X.(*ast.IdentExpr)
	if !ok || id.Name != loopVar {
		return false
	}
	bound, ok := ast.IntLiteralValue(cond.Y)
	return ok && bound > 0
}

func isZeroLiteral(e ast.Expr) bool {
	v, ok := ast.IntLiteralValue(e)
	return ok && v == 0
}
