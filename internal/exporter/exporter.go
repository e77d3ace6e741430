package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

// SheetName is the output sheet, named as in the customer's template.
const SheetName = "Merged"

// ExcelExporter renders assembled summary blocks into a styled workbook.
//
// Presentation follows the customer's format: bold filled header, the
// Order Date and DU-Order cells merged vertically over their runs, and an
// alternating fill that toggles on each date change.
type ExcelExporter struct{}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export builds the output workbook from assembled blocks and run totals.
func (e *ExcelExporter) Export(blocks []GroupBlock, totals model.ReportTotals) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	if err := e.writeHeader(f); err != nil {
		return nil, err
	}

	lastDataRow, err := e.writeBlocks(f, blocks)
	if err != nil {
		return nil, err
	}

	if err := e.writeTotals(f, lastDataRow+2, totals); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *ExcelExporter) writeHeader(f *excelize.File) error {
	for i, h := range Columns() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFD966"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	return f.SetRowStyle(SheetName, 1, 1, headerStyle)
}

// writeBlocks writes the data rows and applies the merge/fill presentation.
// Returns the last written row number.
func (e *ExcelExporter) writeBlocks(f *excelize.File, blocks []GroupBlock) (int, error) {
	fill1, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFFFFF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return 0, err
	}
	fill2, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return 0, err
	}

	row := 2
	currentFill := fill1
	prevDate := ""
	dateRunStart := 2

	endDateRun := func(endRow int) error {
		if endRow > dateRunStart {
			start, _ := excelize.CoordinatesToCellName(1, dateRunStart)
			end, _ := excelize.CoordinatesToCellName(1, endRow)
			if err := f.MergeCell(SheetName, start, end); err != nil {
				return err
			}
		}
		return nil
	}

	for _, block := range blocks {
		date := groupDate(block.Group)
		if date != prevDate {
			if err := endDateRun(row - 1); err != nil {
				return 0, err
			}
			if prevDate != "" {
				if currentFill == fill1 {
					currentFill = fill2
				} else {
					currentFill = fill1
				}
			}
			dateRunStart = row
			prevDate = date
		}

		blockStart := row
		for _, r := range block.Rows() {
			for col, v := range r {
				if v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return 0, err
				}
				if err := f.SetCellValue(SheetName, cell, v); err != nil {
					return 0, err
				}
			}
			row++
		}

		// Merge the DU-Order key down the whole block.
		if row-1 > blockStart {
			start, _ := excelize.CoordinatesToCellName(3, blockStart)
			end, _ := excelize.CoordinatesToCellName(3, row-1)
			if err := f.MergeCell(SheetName, start, end); err != nil {
				return 0, err
			}
		}

		startCell, _ := excelize.CoordinatesToCellName(1, blockStart)
		endCell, _ := excelize.CoordinatesToCellName(NumColumns, row-1)
		if err := f.SetCellStyle(SheetName, startCell, endCell, currentFill); err != nil {
			return 0, err
		}
	}

	if err := endDateRun(row - 1); err != nil {
		return 0, err
	}

	return row - 1, nil
}

// writeTotals writes the aggregate block below the data.
func (e *ExcelExporter) writeTotals(f *excelize.File, startRow int, totals model.ReportTotals) error {
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	entries := []struct {
		label string
		value string
	}{
		{"Total Pick Q'TY", formatQuantity(totals.TotalQuantity)},
		{"Ship Total WT", formatWeight(totals.TotalWeightKg)},
		{"All Charge", formatMoney(totals.TotalCharge)},
		{"Fuel Surcharge 13.62%", formatMoney(totals.FuelSurcharge)},
		{"Grand Total", formatMoney(totals.GrandTotal)},
	}

	for i, entry := range entries {
		labelCell, err := excelize.CoordinatesToCellName(17, startRow+i)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(18, startRow+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, labelCell, entry.label); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, valueCell, entry.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, labelCell, labelCell, labelStyle); err != nil {
			return err
		}
	}

	return nil
}

// SaveTo writes the workbook to disk.
func (e *ExcelExporter) SaveTo(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
