package parser

import (
	"strconv"
	"strings"
	"time"
)

// cellAt returns the trimmed value of a 1-based column within a row.
// Rows returned by excelize are ragged; out-of-range reads are empty.
func cellAt(row []string, col int) string {
	idx := col - 1
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloat converts a cell to a float, tolerating thousand separators.
// Empty or non-numeric cells read as 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// parseOptionalFloat reports whether the cell held a value at all;
// a literal 0 is still present, only an empty cell is absent.
func parseOptionalFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	return parseFloat(s), true
}

// NormalizePostCode canonicalizes a post code to its digit-string form.
// Source files store post codes as float ("10110.0"), int or text; all
// three must hit the same price-table key. Non-numeric values are kept
// as-is so that text keys still match exactly.
func NormalizePostCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	clean := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return strconv.Itoa(int(f))
	}
	return s
}

// DaysInMonth returns the number of calendar days in (year, month).
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ConstructDate builds a Gregorian date, rejecting triples that
// time.Date would silently roll over (e.g. Feb 30).
func ConstructDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
