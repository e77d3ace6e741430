package exporter

import (
	"strconv"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

// Presentation labels for unresolved lookups. The engine never carries
// these strings; they exist only in assembled output.
const (
	PartNotFound     = "Part Not Found"
	PostCodeNotFound = "Post Code Not Found"
)

// NumColumns is the fixed output width; every row has exactly this many
// cells, blanks included.
const NumColumns = 25

// Columns returns the fixed output header.
func Columns() []string {
	return []string{
		"Order Date", "DU", "DU-Order", "CM Code.", "Sold To",
		"Destination Code", "Ship To", "Address 1", "Address 2", "Province",
		"Post Code", "Area", "Total Pick Q'TY", "Ship Total WT",
		"Up 10KG/Chg", "Rate/KG", "Min/Charge", "All Charge", "Pick Date",
		"Transport", "Premium", "Remark", "Part No.", "Pick Q'TY",
		"Total Weight",
	}
}

// GroupBlock is one group's slice of the assembled output: a summary row
// followed by that group's detail rows. Exporters need the block
// boundaries for cell merging; flat consumers can just concatenate.
type GroupBlock struct {
	Group   *model.ShipmentGroup
	Summary []string
	Details [][]string
}

// Rows returns the block's rows in output order.
func (b GroupBlock) Rows() [][]string {
	rows := make([][]string, 0, 1+len(b.Details))
	rows = append(rows, b.Summary)
	rows = append(rows, b.Details...)
	return rows
}

// Assemble expands each group into its summary and detail rows, in group
// order. Summary rows carry the group-level fields with blank detail
// columns; detail rows carry part, quantity and line weight with blank
// group columns.
func Assemble(groups []*model.ShipmentGroup) []GroupBlock {
	blocks := make([]GroupBlock, 0, len(groups))
	for _, g := range groups {
		blocks = append(blocks, GroupBlock{
			Group:   g,
			Summary: summaryRow(g),
			Details: detailRows(g),
		})
	}
	return blocks
}

// Flatten concatenates the blocks into the flat record sequence.
func Flatten(blocks []GroupBlock) [][]string {
	var rows [][]string
	for _, b := range blocks {
		rows = append(rows, b.Rows()...)
	}
	return rows
}

// groupDate renders the group's order date, empty when absent. The Excel
// writer keys its merge runs on the same value.
func groupDate(g *model.ShipmentGroup) string {
	if !g.Header.HasDate {
		return ""
	}
	return g.Header.OrderDate.Format("2006-01-02")
}

func summaryRow(g *model.ShipmentGroup) []string {
	row := make([]string, NumColumns)

	row[0] = groupDate(g)
	row[1] = g.Header.DU
	row[2] = g.DUOrder
	row[3] = g.Header.CMCode
	row[4] = g.Header.SoldTo
	row[5] = g.Header.DestinationCode
	row[6] = g.Header.ShipTo
	row[7] = g.Header.Address1
	row[8] = g.Header.Address2
	row[9] = g.Header.Province
	row[10] = g.Header.PostCode

	if g.Price.Found {
		row[11] = g.Price.Area
	} else {
		row[11] = PostCodeNotFound
	}

	row[12] = formatQuantity(g.TotalQuantity)
	row[13] = formatWeight(g.TotalWeightKg)
	row[14] = formatWeight(g.Up10Chg)
	row[15] = formatMoney(g.Price.RatePerKg)
	row[16] = formatMoney(g.Price.MinCharge)
	row[17] = formatMoney(g.AllCharge)
	// row[18] Pick Date: filled by the warehouse after delivery, blank here.
	row[19] = g.Transport
	// row[20] Premium: blank, reserved column in the customer's format.
	row[21] = g.Header.Remark

	return row
}

func detailRows(g *model.ShipmentGroup) [][]string {
	rows := make([][]string, 0, len(g.Lines))
	for i, line := range g.Lines {
		row := make([]string, NumColumns)
		row[22] = line.PartNo
		row[23] = line.PickQtyRaw
		if g.LineWeights[i].Found {
			row[24] = formatWeight(g.LineWeights[i].WeightKg)
		} else {
			row[24] = PartNotFound
		}
		rows = append(rows, row)
	}
	return rows
}

// formatQuantity renders a quantity without trailing zeros (5, not 5.00).
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatWeight renders a weight without trailing zeros.
func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatMoney renders charges with two decimals, matching the customer's
// billing format.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
