// Package schema implements the catalog metadata types named in §3:
// FieldMeta and TableMeta. Table and Catalog (the Db) live in pkg/catalog
// because they additionally own storage handles.
package schema

import "github.com/kgcyyds/miniob-2024/pkg/types"

// FieldMeta describes one column: its name, declared type, physical
// offset and length within a record, nullability, a stable field ID, and
// whether it is a system field (row header, txn markers) rather than a
// user-visible column. System fields are laid out before user fields;
// TableMeta.SysFieldNum separates the two ranges.
type FieldMeta struct {
	Name     string
	Type     types.Type
	Offset   int
	Length   int // declared capacity for CHARS, byte width otherwise
	Nullable bool
	FieldID  int
	System   bool
}

func NewFieldMeta(name string, t types.Type, offset, length int, nullable bool, fieldID int) FieldMeta {
	return FieldMeta{Name: name, Type: t, Offset: offset, Length: length, Nullable: nullable, FieldID: fieldID}
}

// SystemFieldMeta is like NewFieldMeta but marks the field as a system
// field (excluded from user-visible arity/`*` expansion).
func SystemFieldMeta(name string, t types.Type, offset, length, fieldID int) FieldMeta {
	fm := NewFieldMeta(name, t, offset, length, false, fieldID)
	fm.System = true
	return fm
}
