package parser

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

// DayParser reads shipment lines out of the numeric day sheets.
type DayParser struct {
	wb    *Workbook
	year  int
	month int
}

// NewDayParser creates a day-sheet parser for one billing period.
func NewDayParser(wb *Workbook, year, month int) *DayParser {
	return &DayParser{wb: wb, year: year, month: month}
}

// ParseAll reads every present day sheet in day order and returns the flat
// line sequence. A workbook with zero day sheets yields an empty, valid
// result.
func (p *DayParser) ParseAll() ([]model.ShipmentLine, error) {
	days := p.wb.DaySheetNames(p.year, p.month)
	sort.Ints(days)

	var lines []model.ShipmentLine
	for _, day := range days {
		dayLines, err := p.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("day sheet %d: %w", day, err)
		}
		lines = append(lines, dayLines...)
	}
	return lines, nil
}

// ParseDay reads one day sheet. Rows are read from the fixed header offset
// while the DU cell is non-empty; the first empty DU cell terminates the
// sheet (there is no declared row count in the source format).
func (p *DayParser) ParseDay(day int) ([]model.ShipmentLine, error) {
	sheetName := strconv.Itoa(day)
	rows, err := p.wb.File().GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	orderDate, hasDate := p.resolveDate(sheetName, day)

	var lines []model.ShipmentLine
	for rowIdx := DaySheetDataStartRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if cellAt(row, colDU) == "" {
			break
		}
		lines = append(lines, p.parseRow(row, rowIdx+1, day, orderDate, hasDate))
	}
	return lines, nil
}

// resolveDate computes the sheet's calendar date. The date embedded in the
// sheet's title cell wins when it parses; otherwise the date is built from
// the externally supplied period. Both failing leaves the date absent;
// the rows are still kept.
func (p *DayParser) resolveDate(sheetName string, day int) (orderDate time.Time, hasDate bool) {
	if title, err := p.wb.File().GetCellValue(sheetName, DaySheetTitleCell); err == nil {
		if d, ok := ParseThaiDate(title); ok {
			return d, true
		}
	}
	if d, ok := ConstructDate(p.year, p.month, day); ok {
		return d, true
	}
	return time.Time{}, false
}

func (p *DayParser) parseRow(row []string, rowNo, day int, orderDate time.Time, hasDate bool) model.ShipmentLine {
	qtyRaw := cellAt(row, colPickQty)
	return model.ShipmentLine{
		RowNo:           rowNo,
		Day:             day,
		OrderDate:       orderDate,
		HasDate:         hasDate,
		DU:              cellAt(row, colDU),
		Order:           cellAt(row, colOrder),
		DUOrder:         cellAt(row, colDUOrder),
		CMCode:          cellAt(row, colCMCode),
		SoldTo:          cellAt(row, colSoldTo),
		DestinationCode: cellAt(row, colDestinationCode),
		ShipTo:          cellAt(row, colShipTo),
		Address1:        cellAt(row, colAddress1),
		Address2:        cellAt(row, colAddress2),
		Province:        cellAt(row, colProvince),
		PostCode:        cellAt(row, colPostCode),
		Tel:             cellAt(row, colTel),
		PartNo:          cellAt(row, colPartNo),
		PickQtyRaw:      qtyRaw,
		PickQty:         parseFloat(qtyRaw),
		FreeGift:        cellAt(row, colFreeGift),
		Remark:          cellAt(row, colRemark),
	}
}
