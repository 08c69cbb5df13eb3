// Package catalog implements the Db handle named in §3: a process-global
// mapping from relation name to owned Table, threaded explicitly through
// the resolver and executor rather than reached via a package-level
// singleton (§9 decision -- the teacher's SystemCatalog is itself an
// explicit handle passed around rather than a global, and we follow the
// same shape).
package catalog

import (
	"github.com/kgcyyds/miniob-2024/pkg/schema"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
)

// Table owns one relation's schema, its record manager, and its indexes.
type Table struct {
	Meta    *schema.TableMeta
	Records storage.RecordManager
	indexes map[string]storage.Index
}

// NewTable wraps a schema and a record manager into a catalog Table with
// no indexes.
func NewTable(meta *schema.TableMeta, rm storage.RecordManager) *Table {
	return &Table{Meta: meta, Records: rm, indexes: make(map[string]storage.Index)}
}

// AddIndex registers idx under its own name. Overwrites any existing
// index of the same name.
func (t *Table) AddIndex(idx storage.Index) {
	t.indexes[idx.Name()] = idx
}

// RemoveIndex drops the named index, if present.
func (t *Table) RemoveIndex(name string) {
	delete(t.indexes, name)
}

// Index returns the named index, if present.
func (t *Table) Index(name string) (storage.Index, bool) {
	idx, ok := t.indexes[name]
	return idx, ok
}

// Indexes returns every index on this table, in no particular order.
func (t *Table) Indexes() []storage.Index {
	out := make([]storage.Index, 0, len(t.indexes))
	for _, idx := range t.indexes {
		out = append(out, idx)
	}
	return out
}

// IndexOnField returns the first index (if any) covering fieldID as its
// leading column, used by the physical planner to pick an IndexScan.
func (t *Table) IndexOnField(fieldID int) (storage.Index, bool) {
	for _, idx := range t.indexes {
		if len(idx.FieldIDs()) > 0 && idx.FieldIDs()[0] == fieldID {
			return idx, true
		}
	}
	return nil, false
}
