package execution

import (
	"sort"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
	"github.com/kgcyyds/miniob-2024/pkg/expr"
	"github.com/kgcyyds/miniob-2024/pkg/storage"
	"github.com/kgcyyds/miniob-2024/pkg/tuple"
	"github.com/kgcyyds/miniob-2024/pkg/txn"
	"github.com/kgcyyds/miniob-2024/pkg/types"
)

// SortKey is one ORDER BY term: the expression to sort by and its
// direction.
type SortKey struct {
	Expr expr.Expression
	Desc bool
}

// Sort implements the top-level ORDER BY of §4.4: a blocking operator
// that materializes every row from its child, orders them by the given
// keys (NULLs sort first, matching the ascending-order convention
// original_source's row comparator uses), then streams the result.
// Grounded on the teacher's execution.Sort, generalized from a single
// field index to a list of arbitrary sort-key expressions.
type Sort struct {
	baseIterator
	child Operator
	keys  []SortKey

	rows         []tuple.Tuple
	materialized bool
	next         int
}

func NewSort(child Operator, keys []SortKey) *Sort {
	return &Sort{child: child, keys: keys}
}

func (s *Sort) Open(tx *txn.Transaction) error {
	if err := s.child.Open(tx); err != nil {
		return err
	}
	s.rows = nil
	s.materialized = false
	s.next = 0
	s.markOpened()
	return nil
}

func (s *Sort) SetParentTuple(row tuple.Tuple) {
	s.baseIterator.SetParentTuple(row)
	s.child.SetParentTuple(row)
}

func (s *Sort) Next() (tuple.Tuple, error) {
	if !s.isOpen() {
		return nil, errkind.New(errkind.Internal, "INTERNAL", "Sort.Next called before Open")
	}
	if !s.materialized {
		if err := s.materialize(); err != nil {
			return nil, err
		}
		s.materialized = true
	}
	if s.next >= len(s.rows) {
		return nil, storage.ErrEOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *Sort) materialize() error {
	for {
		row, err := s.child.Next()
		if err == storage.ErrEOF {
			break
		}
		if err != nil {
			return err
		}
		s.rows = append(s.rows, row)
	}

	var sortErr error
	sort.SliceStable(s.rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := s.less(s.rows[i], s.rows[j])
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	return sortErr
}

// less compares two rows key by key, NULL sorting before any non-NULL
// value regardless of direction.
func (s *Sort) less(a, b tuple.Tuple) (bool, error) {
	for _, k := range s.keys {
		va, err := k.Expr.GetValue(a)
		if err != nil {
			return false, err
		}
		vb, err := k.Expr.GetValue(b)
		if err != nil {
			return false, err
		}
		cmp, err := compareForSort(va, vb)
		if err != nil {
			return false, err
		}
		if k.Desc && !va.IsNull() && !vb.IsNull() {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0, nil
		}
	}
	return false, nil
}

func compareForSort(a, b types.Value) (int, error) {
	if a.IsNull() && b.IsNull() {
		return 0, nil
	}
	if a.IsNull() {
		return -1, nil
	}
	if b.IsNull() {
		return 1, nil
	}
	return types.Compare(a, b)
}

func (s *Sort) Close() error {
	s.markClosed()
	return s.child.Close()
}
