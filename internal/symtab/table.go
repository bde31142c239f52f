// Package symtab implements the unified multi-dialect symbol table: one
// namespace merging declarations that originate from Cinder sources, C
// headers, and C++ headers.
//
// The table is populated incrementally while files are processed (add
// operations only; Clear resets everything for a fresh run) and is strictly
// read-only during analysis, so analyzer instances for different translation
// units may share it concurrently. Mutation is not thread-safe and must
// finish before the first read.
package symtab

// store is one dialect's collection, indexed by name and by source file.
type store struct {
	byName map[string][]*Symbol
	byFile map[string][]*Symbol
}

func newStore() store {
	return store{
		byName: make(map[string][]*Symbol),
		byFile: make(map[string][]*Symbol),
	}
}

func (st *store) add(sym *Symbol) bool {
	for _, existing := range st.byName[sym.Name] {
		if existing.Key() == sym.Key() {
			return false // (name, file, line) already present
		}
	}
	st.byName[sym.Name] = append(st.byName[sym.Name], sym)
	st.byFile[sym.File] = append(st.byFile[sym.File], sym)
	return true
}

// Table owns the three per-dialect symbol collections and the auxiliary
// registries (struct field catalog, enum bit widths, struct-keyword markers,
// and the additive tag/typedef fact store).
type Table struct {
	stores [dialectCount]store

	structs       map[string]*StructInfo
	structKeyword map[string]struct{}
	enumBits      map[string]uint8

	// Additive-only typedef facts: aliases from a forward-declared tag to
	// its typedef name, and the set of tags that have since received a full
	// body. Opaqueness is derived at query time from these facts; entries
	// are never removed or rewritten.
	tagToTypedef map[string]string
	typedefToTag map[string]string
	tagHasBody   map[string]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	t := &Table{}
	t.reset()
	return t
}

func (t *Table) reset() {
	for i := range t.stores {
		t.stores[i] = newStore()
	}
	t.structs = make(map[string]*StructInfo)
	t.structKeyword = make(map[string]struct{})
	t.enumBits = make(map[string]uint8)
	t.tagToTypedef = make(map[string]string)
	t.typedefToTag = make(map[string]string)
	t.tagHasBody = make(map[string]struct{})
}

// Clear resets every collection and registry for a fresh run.
func (t *Table) Clear() {
	t.reset()
}

// AddSymbol records one symbol in its dialect's collection. It reports
// false when a symbol with the same (name, file, line) triple is already
// present, which keeps restore operations idempotent.
func (t *Table) AddSymbol(sym *Symbol) bool {
	if sym == nil || sym.Dialect >= dialectCount {
		return false
	}
	return t.stores[sym.Dialect].add(sym)
}

// AddSymbols records a batch of symbols and returns how many were new.
func (t *Table) AddSymbols(syms []*Symbol) int {
	added := 0
	for _, sym := range syms {
		if t.AddSymbol(sym) {
			added++
		}
	}
	return added
}

// GetSymbol returns the first symbol with the given name in one dialect.
func (t *Table) GetSymbol(d Dialect, name string) (*Symbol, bool) {
	if d >= dialectCount {
		return nil, false
	}
	syms := t.stores[d].byName[name]
	if len(syms) == 0 {
		return nil, false
	}
	return syms[0], true
}

// GetOverloads returns every symbol sharing the name in one dialect.
// The returned slice is read-only.
func (t *Table) GetOverloads(d Dialect, name string) []*Symbol {
	if d >= dialectCount {
		return nil
	}
	return t.stores[d].byName[name]
}

// HasSymbol reports whether a name is known to one dialect.
func (t *Table) HasSymbol(d Dialect, name string) bool {
	_, ok := t.GetSymbol(d, name)
	return ok
}

// GetSymbolAny searches every dialect in priority order (Cinder, C, C++).
func (t *Table) GetSymbolAny(name string) (*Symbol, bool) {
	for _, d := range Dialects {
		if sym, ok := t.GetSymbol(d, name); ok {
			return sym, true
		}
	}
	return nil, false
}

// HasSymbolAny reports whether any dialect knows the name.
func (t *Table) HasSymbolAny(name string) bool {
	_, ok := t.GetSymbolAny(name)
	return ok
}

// OverloadsAcross collects the name's symbols from every dialect.
func (t *Table) OverloadsAcross(name string) []*Symbol {
	var out []*Symbol
	for _, d := range Dialects {
		out = append(out, t.stores[d].byName[name]...)
	}
	return out
}

// HasFunction reports whether any dialect declares the name as a function.
func (t *Table) HasFunction(name string) bool {
	for _, sym := range t.OverloadsAcross(name) {
		if sym.Kind == SymbolFunction {
			return true
		}
	}
	return false
}

// GetSymbolsByFile returns every symbol declared in one source file within
// one dialect.
func (t *Table) GetSymbolsByFile(d Dialect, file string) []*Symbol {
	if d >= dialectCount {
		return nil
	}
	return t.stores[d].byFile[file]
}

// Len returns the total number of symbols across all dialects.
func (t *Table) Len() int {
	n := 0
	for i := range t.stores {
		for _, syms := range t.stores[i].byName {
			n += len(syms)
		}
	}
	return n
}
