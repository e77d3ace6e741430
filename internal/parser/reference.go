package parser

import (
	"fmt"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

// LoadWeightTable loads the Cargo and Weight reference sheet into a
// part-number keyed map. The sheet is required; its absence is fatal for
// the run. Scanning stops at the first row with an empty part cell.
// Duplicate part numbers keep the first occurrence.
func LoadWeightTable(wb *Workbook) (map[string]model.WeightEntry, error) {
	if !wb.HasSheet(WeightSheetName) {
		return nil, fmt.Errorf("required sheet %q not found", WeightSheetName)
	}

	rows, err := wb.File().GetRows(WeightSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", WeightSheetName, err)
	}

	weights := make(map[string]model.WeightEntry)
	for rowIdx := WeightDataStartRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		partNo := cellAt(row, weightColPartNo)
		if partNo == "" {
			break
		}
		if _, exists := weights[partNo]; exists {
			continue
		}
		// A part row with a literally empty weight cell is unusable and
		// must behave as not-found; an explicit 0 is still a valid weight.
		weight, present := parseOptionalFloat(cellAt(row, weightColWeight))
		if !present {
			continue
		}
		weights[partNo] = model.WeightEntry{
			PartNo:   partNo,
			WeightKg: weight,
		}
	}

	return weights, nil
}

// LoadPriceTable loads the Sell Price reference sheet into a map keyed by
// normalized post code. The sheet is required. Scanning stops at the first
// row with an empty post-code cell; duplicate keys keep the first
// occurrence.
func LoadPriceTable(wb *Workbook) (map[string]model.PriceEntry, error) {
	if !wb.HasSheet(PriceSheetName) {
		return nil, fmt.Errorf("required sheet %q not found", PriceSheetName)
	}

	rows, err := wb.File().GetRows(PriceSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", PriceSheetName, err)
	}

	prices := make(map[string]model.PriceEntry)
	for rowIdx := PriceDataStartRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		rawKey := cellAt(row, priceColPostCode)
		if rawKey == "" {
			break
		}
		postCode := NormalizePostCode(rawKey)
		if _, exists := prices[postCode]; exists {
			continue
		}
		prices[postCode] = model.PriceEntry{
			PostCode:  postCode,
			Area:      cellAt(row, priceColArea),
			MinCharge: parseFloat(cellAt(row, priceColMinCharge)),
			RatePerKg: parseFloat(cellAt(row, priceColRate)),
		}
	}

	return prices, nil
}
