package symtab

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version; bump when the Snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the serializable image of a table, written to and read from
// the persistent cache with msgpack. Restore operations merge a snapshot
// into the live table; they never overwrite existing entries.
type Snapshot struct {
	Schema uint16 `msgpack:"schema"`

	Symbols       []Symbol          `msgpack:"symbols"`
	Structs       []StructInfo      `msgpack:"structs"`
	StructKeyword []string          `msgpack:"struct_keyword,omitempty"`
	EnumBits      map[string]uint8  `msgpack:"enum_bits,omitempty"`
	TagAliases    map[string]string `msgpack:"tag_aliases,omitempty"`
	TagHasBody    []string          `msgpack:"tag_has_body,omitempty"`
}

// Snapshot captures the full current state for caching.
func (t *Table) Snapshot() *Snapshot {
	snap := &Snapshot{
		Schema:   snapshotSchemaVersion,
		EnumBits: make(map[string]uint8, len(t.enumBits)),
	}
	for d := range t.stores {
		for _, syms := range t.stores[d].byName {
			for _, sym := range syms {
				snap.Symbols = append(snap.Symbols, *sym)
			}
		}
	}
	for _, info := range t.structs {
		snap.Structs = append(snap.Structs, *info)
	}
	for name := range t.structKeyword {
		snap.StructKeyword = append(snap.StructKeyword, name)
	}
	for name, bits := range t.enumBits {
		snap.EnumBits[name] = bits
	}
	if len(t.tagToTypedef) > 0 {
		snap.TagAliases = make(map[string]string, len(t.tagToTypedef))
		for tag, typedef := range t.tagToTypedef {
			snap.TagAliases[tag] = typedef
		}
	}
	for tag := range t.tagHasBody {
		snap.TagHasBody = append(snap.TagHasBody, tag)
	}
	return snap
}

// RestoreSnapshot merges a snapshot into the table.
func (t *Table) RestoreSnapshot(snap *Snapshot) error {
	if snap == nil {
		return nil
	}
	if snap.Schema != snapshotSchemaVersion {
		return fmt.Errorf("symtab: snapshot schema %d, want %d", snap.Schema, snapshotSchemaVersion)
	}
	t.RestoreSymbols(snap.Symbols)
	t.RestoreStructFields(snap.Structs)
	for _, name := range snap.StructKeyword {
		t.MarkNeedsStructKeyword(name)
	}
	t.RestoreEnumBitWidths(snap.EnumBits)
	for tag, typedef := range snap.TagAliases {
		t.AddTagAlias(tag, typedef)
	}
	for _, tag := range snap.TagHasBody {
		t.MarkTagHasBody(tag)
	}
	return nil
}

// RestoreSymbols merges previously serialized symbols; entries whose
// (name, file, line) triple is already present are skipped.
func (t *Table) RestoreSymbols(syms []Symbol) {
	for i := range syms {
		sym := syms[i]
		t.AddSymbol(&sym)
	}
}

// RestoreStructFields merges serialized struct catalogs.
func (t *Table) RestoreStructFields(infos []StructInfo) {
	for _, info := range infos {
		t.RegisterStructFields(info.Name, info.Order, info.Fields)
	}
}

// RestoreEnumBitWidths merges serialized enum bit widths.
func (t *Table) RestoreEnumBitWidths(bits map[string]uint8) {
	for name, width := range bits {
		if _, ok := t.enumBits[name]; ok {
			continue
		}
		t.RegisterEnumBitWidth(name, width)
	}
}

// Encode writes the snapshot as msgpack.
func (snap *Snapshot) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(snap)
}

// DecodeSnapshot reads a msgpack snapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
