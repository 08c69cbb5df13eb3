package schema

import "github.com/kgcyyds/miniob-2024/pkg/errkind"

// TableMeta is the ordered schema of a relation: its fields (system
// fields first, then user fields), the relation name, and a storage
// format hint (an opaque string handed to the record manager, e.g.
// "heap" or "PAX" — the core never interprets it).
type TableMeta struct {
	RelationName  string
	Fields        []FieldMeta
	StorageFormat string
	SysFieldNum   int
	// BitmapLen is the size, in bytes, of the leading null bitmap that
	// prefixes every physical record: one bit per field (fields laid out
	// system-first), rounded up to a whole byte. Field offsets are
	// computed relative to the record's start, i.e. they already include
	// this header.
	BitmapLen int
}

// NewTableMeta lays fields out into a physical record: a leading null
// bitmap (one bit per field) followed by each field's fixed-width slot in
// declaration order. Caller-supplied Offset values are overwritten.
func NewTableMeta(relationName string, userFields []FieldMeta, storageFormat string) *TableMeta {
	if storageFormat == "" {
		storageFormat = "heap"
	}
	tm := &TableMeta{
		RelationName:  relationName,
		Fields:        userFields,
		StorageFormat: storageFormat,
		SysFieldNum:   0,
	}
	tm.relayout()
	return tm
}

func (tm *TableMeta) relayout() {
	tm.BitmapLen = (len(tm.Fields) + 7) / 8
	offset := tm.BitmapLen
	for i := range tm.Fields {
		tm.Fields[i].Offset = offset
		offset += tm.Fields[i].Length
	}
}

// FieldCount returns the total field count, system fields included.
func (tm *TableMeta) FieldCount() int { return len(tm.Fields) }

// UserFieldCount returns the user-visible field count: total minus
// SysFieldNum, per §3's invariant.
func (tm *TableMeta) UserFieldCount() int { return len(tm.Fields) - tm.SysFieldNum }

// Field returns the FieldMeta at the given absolute index (system fields
// included).
func (tm *TableMeta) Field(i int) (*FieldMeta, error) {
	if i < 0 || i >= len(tm.Fields) {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "field index out of range")
	}
	return &tm.Fields[i], nil
}

// UserField returns the ith user-visible FieldMeta (0-based, skipping
// system fields).
func (tm *TableMeta) UserField(i int) (*FieldMeta, error) {
	return tm.Field(tm.SysFieldNum + i)
}

// FieldByName looks up a field (system fields included) by name.
// Returns nil, false if not found.
func (tm *TableMeta) FieldByName(name string) (*FieldMeta, bool) {
	for i := range tm.Fields {
		if tm.Fields[i].Name == name {
			return &tm.Fields[i], true
		}
	}
	return nil, false
}

// UserFieldNames returns the user-visible field names in declaration
// order, used to expand a bare `*`.
func (tm *TableMeta) UserFieldNames() []string {
	names := make([]string, 0, tm.UserFieldCount())
	for i := tm.SysFieldNum; i < len(tm.Fields); i++ {
		names = append(names, tm.Fields[i].Name)
	}
	return names
}

// RecordLength returns the total byte width of one physical record,
// bitmap header plus every field (system fields included), used by the
// heap file to size fixed-width pages.
func (tm *TableMeta) RecordLength() int {
	total := tm.BitmapLen
	for _, f := range tm.Fields {
		total += f.Length
	}
	return total
}
