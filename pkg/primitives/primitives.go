// Package primitives holds small shared value types used throughout the
// query core: comparison operators, record identifiers, and hash codes.
// Keeping them here avoids import cycles between types, tuple, and
// storage.
package primitives

// CompOp enumerates the ordinary (non-NULL-aware, non-LIKE) comparison
// operators. LIKE/NOT LIKE and IS [NOT] NULL are handled separately since
// they are not total orderings.
type CompOp int

const (
	Equals CompOp = iota
	NotEqual
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
)

func (op CompOp) String() string {
	switch op {
	case Equals:
		return "="
	case NotEqual:
		return "<>"
	case LessThan:
		return "<"
	case LessEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// FromCompareResult turns the tri-state result of a Compare call
// (negative/zero/positive) into a boolean under this operator.
func (op CompOp) FromCompareResult(cmp int) bool {
	switch op {
	case Equals:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case LessThan:
		return cmp < 0
	case LessEqual:
		return cmp <= 0
	case GreaterThan:
		return cmp > 0
	case GreaterEqual:
		return cmp >= 0
	default:
		return false
	}
}

// RID identifies a physical record within a transaction. It is stable
// only while the owning transaction is live.
type RID struct {
	PageNo uint64
	Slot   uint32
}

// HashCode is a 32-bit hash used by hash indexes and hash-based grouping.
type HashCode uint32

// FieldID identifies a column within a table, including system columns.
type FieldID int
