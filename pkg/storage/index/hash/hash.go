// Package hash implements an in-memory hash index over encoded field keys,
// used for both unique and non-unique secondary indexes (§4.6). It plays
// the same IndexEntry/bucket role as the teacher's
// pkg/storage/index/hash.HashFile, but keeps buckets as an in-process map
// rather than paged/on-disk buckets: the on-disk index format is opaque to
// the core per spec.md §1, and CREATE INDEX only ever builds an index from
// a full table scan (§1 non-goal: no incremental/background index build),
// so nothing in this codebase needs the index to survive a process
// restart.
package hash

import (
	"sort"
	"sync"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/primitives"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
)

// entry mirrors the teacher's IndexEntry: an encoded key paired with the
// RID of the tuple it locates.
type entry struct {
	rid primitives.RID
}

// Index is a hash index keyed on the byte-encoded value of one or more
// fields. Encoding the composite key into a single []byte is the caller's
// job (see pkg/catalog), matching the interface boundary drawn in
// pkg/storage.Index.
type Index struct {
	mu       sync.RWMutex
	name     string
	unique   bool
	fieldIDs []int
	buckets  map[string][]entry
}

// New creates an empty hash index. unique enforces at most one RID per
// key on Insert, per §4.6's UNIQUE index semantics.
func New(name string, unique bool, fieldIDs []int) *Index {
	return &Index{
		name:     name,
		unique:   unique,
		fieldIDs: fieldIDs,
		buckets:  make(map[string][]entry),
	}
}

func (idx *Index) Name() string    { return idx.name }
func (idx *Index) Unique() bool    { return idx.unique }
func (idx *Index) FieldIDs() []int { return idx.fieldIDs }

// Insert adds a key/RID entry to the appropriate bucket. For a unique
// index, inserting a key that already maps to a different RID fails with
// a Schema-kind error (duplicate key violation).
func (idx *Index) Insert(key []byte, rid primitives.RID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	k := string(key)
	bucket := idx.buckets[k]
	if idx.unique && len(bucket) > 0 {
		return errkind.New(errkind.Schema, errkind.CodeIndexExists,
			"duplicate key value violates unique index "+idx.name)
	}
	bucket = append(bucket, entry{rid: rid})
	idx.buckets[k] = bucket
	return nil
}

// Delete removes the entry matching key and rid, if present. Deleting a
// key/RID pair that is not in the index is a no-op, mirroring the
// teacher's tolerant delete semantics for already-vacuumed slots.
func (idx *Index) Delete(key []byte, rid primitives.RID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	k := string(key)
	bucket := idx.buckets[k]
	for i, e := range bucket {
		if e.rid == rid {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(idx.buckets, k)
	} else {
		idx.buckets[k] = bucket
	}
	return nil
}

// Lookup returns every RID stored under key, in insertion order.
func (idx *Index) Lookup(key []byte) ([]primitives.RID, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bucket := idx.buckets[string(key)]
	out := make([]primitives.RID, len(bucket))
	for i, e := range bucket {
		out[i] = e.rid
	}
	return out, nil
}

// Build populates the index from a full scan of rm, the only index
// construction strategy the core supports (§1: no incremental maintenance
// during a bulk build). keyOf extracts and encodes the indexed field(s)
// from a raw record.
func (idx *Index) Build(tx *txn.Transaction, rm storage.RecordManager, keyOf func(data []byte) ([]byte, error)) error {
	it, err := rm.Scan(tx, nil)
	if err != nil {
		return err
	}
	if err := it.Open(); err != nil {
		return err
	}
	defer it.Close()

	for {
		rec, err := it.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			return err
		}
		key, err := keyOf(rec.Data)
		if err != nil {
			return err
		}
		if err := idx.Insert(key, rec.RID); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns every distinct key currently stored, sorted lexically by
// encoded byte value. Nothing in this module calls it; not part of the
// storage.Index contract.
func (idx *Index) Keys() [][]byte {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, len(idx.buckets))
	for k := range idx.buckets {
		out = append(out, k)
	}
	sort.Strings(out)
	keys := make([][]byte, len(out))
	for i, k := range out {
		keys[i] = []byte(k)
	}
	return keys
}
