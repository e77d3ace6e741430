package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// addWeightSheet writes (part, weight) pairs at the fixed columns.
func addWeightSheet(t *testing.T, wb *Workbook, entries [][2]string) {
	t.Helper()
	if _, err := wb.File().NewSheet(WeightSheetName); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for i, e := range entries {
		row := WeightDataStartRow + i
		partCell, _ := excelize.CoordinatesToCellName(weightColPartNo, row)
		weightCell, _ := excelize.CoordinatesToCellName(weightColWeight, row)
		if err := wb.File().SetCellValue(WeightSheetName, partCell, e[0]); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
		if e[1] != "" {
			if err := wb.File().SetCellValue(WeightSheetName, weightCell, e[1]); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
}

// addPriceSheet writes (postcode, area, min, rate) rows at the fixed columns.
func addPriceSheet(t *testing.T, wb *Workbook, entries [][4]string) {
	t.Helper()
	if _, err := wb.File().NewSheet(PriceSheetName); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	for i, e := range entries {
		row := PriceDataStartRow + i
		cols := map[int]string{
			priceColPostCode:  e[0],
			priceColArea:      e[1],
			priceColMinCharge: e[2],
			priceColRate:      e[3],
		}
		for col, v := range cols {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			if err := wb.File().SetCellValue(PriceSheetName, cell, v); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}
}

func TestLoadWeightTable(t *testing.T) {
	t.Parallel()

	wb := newTestWorkbook(t)
	addWeightSheet(t, wb, [][2]string{
		{"P1", "2.5"},
		{"P2", "0"},  // explicit zero weight is still found
		{"P3", ""},   // absent weight: unusable, behaves as not-found
		{"P1", "99"}, // duplicate: first occurrence wins
	})

	weights, err := LoadWeightTable(wb)
	if err != nil {
		t.Fatalf("LoadWeightTable: %v", err)
	}

	if e, ok := weights["P1"]; !ok || e.WeightKg != 2.5 {
		t.Fatalf("P1 want 2.5 got %+v (ok=%v)", e, ok)
	}
	if e, ok := weights["P2"]; !ok || e.WeightKg != 0 {
		t.Fatalf("P2 must be found with weight 0, got %+v (ok=%v)", e, ok)
	}
	if _, ok := weights["P3"]; ok {
		t.Fatalf("P3 with absent weight must be unusable")
	}
}

func TestLoadWeightTable_StopsAtEmptyKey(t *testing.T) {
	t.Parallel()

	wb := newTestWorkbook(t)
	addWeightSheet(t, wb, [][2]string{
		{"P1", "1"},
		{"", ""},
		{"P9", "9"}, // beyond the sentinel, must not be read
	})

	weights, err := LoadWeightTable(wb)
	if err != nil {
		t.Fatalf("LoadWeightTable: %v", err)
	}
	if len(weights) != 1 {
		t.Fatalf("want 1 entry got %d", len(weights))
	}
}

func TestLoadWeightTable_MissingSheetIsFatal(t *testing.T) {
	t.Parallel()

	wb := newTestWorkbook(t)
	if _, err := LoadWeightTable(wb); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestLoadPriceTable_NormalizesKeys(t *testing.T) {
	t.Parallel()

	wb := newTestWorkbook(t)
	addPriceSheet(t, wb, [][4]string{
		{"10110.0", "BKK", "50", "5"}, // float-form key
		{"50000", "CNX", "80", "7"},
		{"10110", "DUP", "1", "1"}, // duplicate after normalization
	})

	prices, err := LoadPriceTable(wb)
	if err != nil {
		t.Fatalf("LoadPriceTable: %v", err)
	}

	e, ok := prices["10110"]
	if !ok {
		t.Fatalf("10110 not found")
	}
	if e.Area != "BKK" || e.MinCharge != 50 || e.RatePerKg != 5 {
		t.Fatalf("first occurrence must win: %+v", e)
	}
	if _, ok := prices["50000"]; !ok {
		t.Fatalf("50000 not found")
	}
}

func TestLoadPriceTable_MissingSheetIsFatal(t *testing.T) {
	t.Parallel()

	wb := newTestWorkbook(t)
	if _, err := LoadPriceTable(wb); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}
