package types

import (
	"strings"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
)

// Compare orders two non-NULL values, returning a negative, zero, or
// positive int per the usual convention. Numeric types (Int/Float) are
// promoted to float for the comparison; CHARS compares lexicographically
// by byte; DATE compares by its integer encoding. Comparing values of
// unrelated types (e.g. CHARS vs INT) is a Schema error; the resolver
// inserts no casts, so such a comparison reports this error when it is
// evaluated.
//
// Compare must not be called with either operand NULL; the NULL-aware
// caller (expr.ComparisonExpr) special-cases NULL before reaching here,
// matching the source's rule that ordinary comparison against NULL never
// yields SUCCESS/true, only "false" at the predicate layer.
func Compare(a, b Value) (int, error) {
	if a.IsNull() || b.IsNull() {
		return 0, errkind.New(errkind.Internal, "INTERNAL", "Compare called with a NULL operand")
	}

	if a.Type().IsNumeric() && b.Type().IsNumeric() {
		af, bf := asFloat64(a), asFloat64(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if a.Type() == Chars && b.Type() == Chars {
		ac, bc := a.(CharsValue), b.(CharsValue)
		return strings.Compare(ac.V, bc.V), nil
	}

	if a.Type() == Date && b.Type() == Date {
		ad, bd := a.(DateValue), b.(DateValue)
		switch {
		case ad.V < bd.V:
			return -1, nil
		case ad.V > bd.V:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if a.Type() == Bool && b.Type() == Bool {
		ab, bb := a.(BoolValue), b.(BoolValue)
		if ab.V == bb.V {
			return 0, nil
		}
		if !ab.V && bb.V {
			return -1, nil
		}
		return 1, nil
	}

	return 0, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
		"cannot compare "+a.Type().String()+" with "+b.Type().String())
}

func asFloat64(v Value) float64 {
	switch t := v.(type) {
	case IntValue:
		return float64(t.V)
	case FloatValue:
		return float64(t.V)
	default:
		return 0
	}
}

// Like implements the LIKE predicate over two CHARS values: '%' matches
// any sequence including empty, '_' matches exactly one character, every
// other character matches itself literally, case-sensitive. It is a
// total function on CHARS operands; any other type combination is a
// Schema error.
func Like(value, pattern Value) (bool, error) {
	vc, ok1 := value.(CharsValue)
	pc, ok2 := pattern.(CharsValue)
	if !ok1 || !ok2 {
		return false, errkind.New(errkind.Schema, errkind.CodeSchemaFieldTypeMismatch,
			"LIKE requires CHARS operands")
	}
	return likeMatch(vc.V, pc.V), nil
}

// likeMatch is a standard DP-free recursive matcher with memoized
// indices collapsed into an explicit two-pointer scan plus backtrack on
// the last seen '%', which keeps it O(n*m) worst case without recursion
// depth proportional to the pattern.
func likeMatch(s, p string) bool {
	si, pi := 0, 0
	starIdx, matchIdx := -1, 0
	for si < len(s) {
		if pi < len(p) && (p[pi] == '_' || p[pi] == s[si]) {
			si++
			pi++
		} else if pi < len(p) && p[pi] == '%' {
			starIdx = pi
			matchIdx = si
			pi++
		} else if starIdx != -1 {
			pi = starIdx + 1
			matchIdx++
			si = matchIdx
		} else {
			return false
		}
	}
	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}
