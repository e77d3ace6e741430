package parser

import (
	"strconv"
	"strings"
	"time"
)

// Buddhist-era years run 543 ahead of the Gregorian calendar.
const buddhistEraOffset = 543

// thaiMonths maps Thai month names (full and abbreviated) to month numbers.
var thaiMonths = map[string]int{
	"มกราคม":     1,
	"กุมภาพันธ์": 2,
	"มีนาคม":     3,
	"เมษายน":     4,
	"พฤษภาคม":    5,
	"มิถุนายน":   6,
	"กรกฎาคม":    7,
	"สิงหาคม":    8,
	"กันยายน":    9,
	"ตุลาคม":     10,
	"พฤศจิกายน":  11,
	"ธันวาคม":    12,
	"ม.ค.":       1,
	"ก.พ.":       2,
	"มี.ค.":      3,
	"เม.ย.":      4,
	"พ.ค.":       5,
	"มิ.ย.":      6,
	"ก.ค.":       7,
	"ส.ค.":       8,
	"ก.ย.":       9,
	"ต.ค.":       10,
	"พ.ย.":       11,
	"ธ.ค.":       12,
}

// dateLabels are prefixes stripped before parsing ("วันที่ 5 พฤษภาคม 2567").
var dateLabels = []string{"วันที่", "ประจำวันที่"}

// ParseThaiDate parses a localized Thai date token into a Gregorian date.
// Buddhist-era years are converted (2567 -> 2024); a leading date label is
// removed. Returns false on anything it cannot parse.
func ParseThaiDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, label := range dateLabels {
		s = strings.TrimSpace(strings.TrimPrefix(s, label))
	}
	if s == "" {
		return time.Time{}, false
	}

	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := thaiMonths[fields[1]]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, false
	}
	year = GregorianYear(year)

	return ConstructDate(year, month, day)
}

// GregorianYear converts a possibly Buddhist-era year to Gregorian.
// Years beyond 2400 cannot be Gregorian in this domain.
func GregorianYear(year int) int {
	if year > 2400 {
		return year - buddhistEraOffset
	}
	return year
}
