package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Workbook wraps an open billing workbook.
type Workbook struct {
	file *excelize.File
	id   string
}

// OpenWorkbook opens a workbook from a reader (uploaded file).
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: f, id: uuid.New().String()}, nil
}

// OpenWorkbookFile opens a workbook from disk.
func OpenWorkbookFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: f, id: uuid.New().String()}, nil
}

// NewWorkbookFromFile wraps an already open excelize file (used by tests
// and by callers that build workbooks in memory).
func NewWorkbookFromFile(f *excelize.File) *Workbook {
	return &Workbook{file: f, id: uuid.New().String()}
}

// ID returns the workbook handle ID.
func (w *Workbook) ID() string {
	return w.id
}

// File returns the underlying workbook (read-only use).
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Close closes the underlying file.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// HasSheet reports whether a sheet with the given name exists.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// DaySheetNames returns the numeric sheet names present in the workbook,
// restricted to days valid for (year, month). Missing days are not an
// error; the workbook only carries sheets for days that shipped.
func (w *Workbook) DaySheetNames(year, month int) []int {
	maxDay := DaysInMonth(year, month)
	days := make([]int, 0, maxDay)
	for _, name := range w.file.GetSheetList() {
		day, err := strconv.Atoi(strings.TrimSpace(name))
		if err != nil {
			continue
		}
		if day < 1 || day > maxDay {
			continue
		}
		days = append(days, day)
	}
	return days
}

// BillingPeriod reads the billing year/month from the optional Main sheet.
// Buddhist-era years are converted. Returns ok=false when the sheet or
// either cell is absent or not numeric.
func (w *Workbook) BillingPeriod() (year, month int, ok bool) {
	if !w.HasSheet(MainSheetName) {
		return 0, 0, false
	}

	yearText, err := w.file.GetCellValue(MainSheetName, mainYearCell)
	if err != nil {
		return 0, 0, false
	}
	monthText, err := w.file.GetCellValue(MainSheetName, mainMonthCell)
	if err != nil {
		return 0, 0, false
	}

	year, err = strconv.Atoi(strings.TrimSpace(yearText))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(strings.TrimSpace(monthText))
	if err != nil {
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}

	return GregorianYear(year), month, true
}
