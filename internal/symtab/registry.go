package symtab

// FieldInfo describes one struct field: its type name and, for array
// fields, the declared dimensions.
type FieldInfo struct {
	Type string    `msgpack:"type"`
	Dims []DimInfo `msgpack:"dims,omitempty"`
}

// StructInfo is the ordered field catalog of one structure.
type StructInfo struct {
	Name   string               `msgpack:"name"`
	Order  []string             `msgpack:"order"`
	Fields map[string]FieldInfo `msgpack:"fields"`
}

// RegisterStructFields records (or extends) a struct's field catalog.
// Re-registering an existing field is a no-op: the catalog is additive.
func (t *Table) RegisterStructFields(name string, order []string, fields map[string]FieldInfo) {
	info, ok := t.structs[name]
	if !ok {
		info = &StructInfo{Name: name, Fields: make(map[string]FieldInfo)}
		t.structs[name] = info
	}
	for _, fieldName := range order {
		if _, exists := info.Fields[fieldName]; exists {
			continue
		}
		info.Fields[fieldName] = fields[fieldName]
		info.Order = append(info.Order, fieldName)
	}
}

// GetStructFields returns the ordered field names of a struct.
func (t *Table) GetStructFields(name string) ([]string, bool) {
	info, ok := t.structs[name]
	if !ok {
		return nil, false
	}
	return info.Order, true
}

// GetStructFieldType returns the declared type of one field.
func (t *Table) GetStructFieldType(structName, field string) (FieldInfo, bool) {
	info, ok := t.structs[structName]
	if !ok {
		return FieldInfo{}, false
	}
	f, ok := info.Fields[field]
	return f, ok
}

// IsStruct reports whether the name has a registered field catalog.
func (t *Table) IsStruct(name string) bool {
	_, ok := t.structs[name]
	return ok
}

// MarkNeedsStructKeyword records that emitting this type in C requires an
// explicit `struct` keyword (tag not covered by a typedef).
func (t *Table) MarkNeedsStructKeyword(name string) {
	t.structKeyword[name] = struct{}{}
}

// CheckNeedsStructKeyword reports whether the marker is set for the name.
func (t *Table) CheckNeedsStructKeyword(name string) bool {
	_, ok := t.structKeyword[name]
	return ok
}

// RegisterEnumBitWidth records an enum's explicit bit width.
func (t *Table) RegisterEnumBitWidth(name string, bits uint8) {
	t.enumBits[name] = bits
}

// GetEnumBitWidth returns an enum's bit width, if one was declared.
func (t *Table) GetEnumBitWidth(name string) (uint8, bool) {
	bits, ok := t.enumBits[name]
	return bits, ok
}

// AddTagAlias records that a forward-declared tag is aliased by a typedef
// name. Facts only accumulate; a later full definition does not rewrite the
// alias, it just lands in the has-body set.
func (t *Table) AddTagAlias(tag, typedef string) {
	if _, ok := t.tagToTypedef[tag]; !ok {
		t.tagToTypedef[tag] = typedef
	}
	if _, ok := t.typedefToTag[typedef]; !ok {
		t.typedefToTag[typedef] = tag
	}
}

// MarkTagHasBody records that the tag has received a full body. Entries are
// never removed; opacity queries reinterpret them.
func (t *Table) MarkTagHasBody(tag string) {
	t.tagHasBody[tag] = struct{}{}
}

// IsOpaqueType reports whether a typedef still refers to a tag without a
// visible body. The answer is derived from the accumulated facts at query
// time, so declaration and definition may arrive in either order across
// files without producing a stale flag.
func (t *Table) IsOpaqueType(typedef string) bool {
	tag, ok := t.typedefToTag[typedef]
	if !ok {
		return false
	}
	_, hasBody := t.tagHasBody[tag]
	return !hasBody
}
