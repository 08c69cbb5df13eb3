// Package storage specifies the record-manager collaborator contract
// named in §4.6/§6: scan/insert/delete/update over raw records identified
// by a stable RID, plus index management sufficient to answer point and
// range equality scans. The concrete implementation (pkg/storage/heap,
// pkg/storage/index/hash) treats on-disk page layout as opaque to the
// core, per §1.
package storage

import (
	"errors"

	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// ErrEOF is the RECORD_EOF sentinel: a normal end-of-stream signal, never
// treated as an error by callers (§7).
var ErrEOF = errors.New("RECORD_EOF")

// Record is the opaque physical tuple delivered by the record manager: a
// decoded field-value slice is produced by the schema-aware caller, not
// by the record manager itself, which only knows raw bytes plus a RID.
type Record struct {
	RID  primitives.RID
	Data []byte
}

// RecordIterator yields Records in record-manager order (stable within a
// transaction, otherwise unspecified per §5). Next returns ErrEOF when
// exhausted.
type RecordIterator interface {
	Open() error
	Next() (*Record, error)
	Close() error
}

// RecordManager is the storage collaborator interface. One RecordManager
// implementation instance backs one table.
type RecordManager interface {
	// Scan opens an iterator over every live record. predicateHint may be
	// nil; when non-nil it names an equality predicate the record manager
	// is free to use to narrow the scan (e.g. via an index) but is never
	// required to honor exactly -- callers still evaluate the full
	// predicate themselves.
	Scan(tx *txn.Transaction, predicateHint *EqualityHint) (RecordIterator, error)
	InsertRecord(tx *txn.Transaction, data []byte) (primitives.RID, error)
	DeleteRecord(tx *txn.Transaction, rid primitives.RID) error
	UpdateRecord(tx *txn.Transaction, rid primitives.RID, newData []byte) error
	// Fetch retrieves one record directly by RID, used by IndexScan to
	// turn an index lookup into a record without a full table scan.
	Fetch(tx *txn.Transaction, rid primitives.RID) (*Record, error)
	RecordLength() int
}

// PageRangeScanner is an optional RecordManager capability exposing its
// page count and letting a caller scan one contiguous range of pages
// directly. pkg/physicalplan.ParallelTableScan fans a CREATE INDEX
// build's full-table-scan out across whatever ranges this reports,
// falling back to a single Scan when a RecordManager doesn't implement
// it.
type PageRangeScanner interface {
	PageCount() int
	ScanRange(tx *txn.Transaction, lo, hi int) (RecordIterator, error)
}

// EqualityHint names a field-value equality condition a Scan may exploit
// via an index.
type EqualityHint struct {
	FieldID int
	Value   []byte
}

// Index answers point/range equality lookups for a set of columns.
type Index interface {
	Name() string
	Unique() bool
	FieldIDs() []int
	Insert(key []byte, rid primitives.RID) error
	Delete(key []byte, rid primitives.RID) error
	Lookup(key []byte) ([]primitives.RID, error)
	// Build populates the index from a full scan of its owning table,
	// the only index-creation strategy in scope per §1's non-goals.
	Build(tx *txn.Transaction, rm RecordManager, keyOf func(data []byte) ([]byte, error)) error
}
