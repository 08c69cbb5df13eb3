package types

import (
	"strconv"
	"strings"

	"github.com/kgcyyds/miniob-2024/pkg/errkind"
)

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func lastDayOf(year, month int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// ParseDate parses a literal of the form YYYY-M-D (month/day may be one
// or two digits) into a DateValue. It rejects any other shape, any
// month/day out of range, and February 29 in a non-leap year. line/column
// are attached to the resulting error for the SCF_ERROR "is_date" framing
// described in §6/§7; pass 0,0 when no source position is available.
func ParseDate(s string, line, column int) (Value, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil, errkind.NewDateError("invalid date literal '"+s+"'", line, column)
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, errkind.NewDateError("invalid date literal '"+s+"'", line, column)
	}
	if len(parts[1]) < 1 || len(parts[1]) > 2 || len(parts[2]) < 1 || len(parts[2]) > 2 {
		return nil, errkind.NewDateError("invalid date literal '"+s+"'", line, column)
	}
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return nil, errkind.NewDateError("invalid date literal '"+s+"'", line, column)
	}
	if day > lastDayOf(year, month) {
		return nil, errkind.NewDateError("invalid date literal '"+s+"'", line, column)
	}

	return NewDate(int32(year*10000 + month*100 + day)), nil
}
