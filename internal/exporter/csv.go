package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

// WriteCSV writes the assembled rows and a totals footer as CSV. Column
// count is constant across every data row; the footer block is label/value
// pairs after one separator row.
func WriteCSV(w io.Writer, blocks []GroupBlock, totals model.ReportTotals) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns()); err != nil {
		return err
	}
	for _, row := range Flatten(blocks) {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	footer := [][]string{
		{"", ""},
		{"Total Pick Q'TY", formatQuantity(totals.TotalQuantity)},
		{"Ship Total WT", formatWeight(totals.TotalWeightKg)},
		{"All Charge", formatMoney(totals.TotalCharge)},
		{"Fuel Surcharge 13.62%", formatMoney(totals.FuelSurcharge)},
		{"Grand Total", formatMoney(totals.GrandTotal)},
	}
	for _, row := range footer {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the CSV output to disk.
func SaveCSV(path string, blocks []GroupBlock, totals model.ReportTotals) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, blocks, totals); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
