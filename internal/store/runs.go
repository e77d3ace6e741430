package store

import (
	"database/sql"
	"fmt"
)

// Run is one summary-generation run.
type Run struct {
	ID                  int64   `json:"id"`
	Filename            string  `json:"filename"`
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	DaySheets           int     `json:"daySheets"`
	LineCount           int     `json:"lineCount"`
	ShipmentCount       int     `json:"shipmentCount"`
	UnresolvedParts     int     `json:"unresolvedParts"`
	UnresolvedPostCodes int     `json:"unresolvedPostCodes"`
	TotalQuantity       float64 `json:"totalQuantity"`
	TotalWeight         float64 `json:"totalWeight"`
	TotalCharge         float64 `json:"totalCharge"`
	FuelSurcharge       float64 `json:"fuelSurcharge"`
	GrandTotal          float64 `json:"grandTotal"`
	XLSXPath            string  `json:"xlsxPath"`
	CSVPath             string  `json:"csvPath"`
	Status              string  `json:"status"` // processing / done / failed
	ErrorMessage        string  `json:"errorMessage"`
	CreatedAt           string  `json:"createdAt"`
	CompletedAt         string  `json:"completedAt"`
}

// CreateRun records a run in "processing" state and returns its ID.
func (s *Store) CreateRun(filename string, year, month int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO runs (filename, year, month, status)
		VALUES (?, ?, ?, 'processing')
	`, filename, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// FinishRun completes a run record with its counters and totals.
func (s *Store) FinishRun(run *Run) error {
	_, err := s.db.Exec(`
		UPDATE runs SET
			day_sheets = ?,
			line_count = ?,
			shipment_count = ?,
			unresolved_parts = ?,
			unresolved_postcodes = ?,
			total_quantity = ?,
			total_weight = ?,
			total_charge = ?,
			fuel_surcharge = ?,
			grand_total = ?,
			xlsx_path = ?,
			csv_path = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, run.DaySheets, run.LineCount, run.ShipmentCount,
		run.UnresolvedParts, run.UnresolvedPostCodes,
		run.TotalQuantity, run.TotalWeight, run.TotalCharge,
		run.FuelSurcharge, run.GrandTotal,
		run.XLSXPath, run.CSVPath, run.Status, run.ErrorMessage, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// GetRun loads one run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, filename, year, month, day_sheets, line_count,
		       shipment_count, unresolved_parts, unresolved_postcodes,
		       total_quantity, total_weight, total_charge, fuel_surcharge,
		       grand_total, xlsx_path, csv_path, status, error_message,
		       created_at, COALESCE(completed_at, '')
		FROM runs WHERE id = ?
	`, id)
	return scanRun(row)
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, filename, year, month, day_sheets, line_count,
		       shipment_count, unresolved_parts, unresolved_postcodes,
		       total_quantity, total_weight, total_charge, fuel_surcharge,
		       grand_total, xlsx_path, csv_path, status, error_message,
		       created_at, COALESCE(completed_at, '')
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountRuns returns the total number of recorded runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{}
	err := row.Scan(
		&run.ID, &run.Filename, &run.Year, &run.Month,
		&run.DaySheets, &run.LineCount, &run.ShipmentCount,
		&run.UnresolvedParts, &run.UnresolvedPostCodes,
		&run.TotalQuantity, &run.TotalWeight, &run.TotalCharge,
		&run.FuelSurcharge, &run.GrandTotal,
		&run.XLSXPath, &run.CSVPath, &run.Status, &run.ErrorMessage,
		&run.CreatedAt, &run.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found")
		}
		return nil, err
	}
	return run, nil
}
