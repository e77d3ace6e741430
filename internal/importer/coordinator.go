package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/calculator"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/config"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/exporter"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/parser"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/store"
)

// Coordinator runs the whole pipeline for one uploaded workbook:
// references, day sheets, aggregation, assembly, export, run record.
type Coordinator struct {
	store *store.Store
	cfg   *config.AppConfig
}

// NewCoordinator creates a run coordinator.
func NewCoordinator(st *store.Store, cfg *config.AppConfig) *Coordinator {
	return &Coordinator{store: st, cfg: cfg}
}

// tariffOptions resolves the billing rules: persisted overrides win over
// the config defaults.
func (c *Coordinator) tariffOptions() calculator.Options {
	opts := calculator.Options{
		AllowanceKg:       c.cfg.Business.AllowanceKg,
		FuelSurchargeRate: c.cfg.Business.FuelSurchargeRate,
	}
	if v, err := c.store.GetSettingFloat(store.SettingAllowanceKg); err == nil {
		opts.AllowanceKg = v
	}
	if v, err := c.store.GetSettingFloat(store.SettingFuelSurchargeRate); err == nil {
		opts.FuelSurchargeRate = v
	}
	return opts
}

// RunOptions describe one summary run.
type RunOptions struct {
	FilePath string
	Filename string
	Year     int // 0 = take from the workbook's Main sheet
	Month    int // 0 = take from the workbook's Main sheet
}

// ProgressEvent is one progress message of a run.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/step/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// RunResult is the payload of the final "done" event.
type RunResult struct {
	RunID               int64   `json:"runId"`
	WorkbookID          string  `json:"workbookId"`
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
}

// Run executes the pipeline asynchronously and returns the progress
// channel. The channel is closed when the run ends, either way.
func (c *Coordinator) Run(opts RunOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)

	go func() {
		defer close(progress)
		c.doRun(opts, progress)
	}()

	return progress
}

func (c *Coordinator) doRun(opts RunOptions, progress chan<- ProgressEvent) {
	send := func(eventType, message string, data interface{}) {
		progress <- ProgressEvent{
			Type:      eventType,
			Message:   message,
			Data:      data,
			Timestamp: time.Now(),
		}
	}
	fail := func(runID int64, err error) {
		if runID > 0 {
			_ = c.store.FinishRun(&store.Run{
				ID:           runID,
				Status:       "failed",
				ErrorMessage: err.Error(),
			})
		}
		send("error", err.Error(), nil)
	}

	send("start", "opening workbook", map[string]any{"filename": opts.Filename})

	wb, err := parser.OpenWorkbookFile(opts.FilePath)
	if err != nil {
		fail(0, err)
		return
	}
	defer wb.Close()
	send("step", "workbook opened", map[string]any{"workbookId": wb.ID()})

	year, month := opts.Year, opts.Month
	if year == 0 || month == 0 {
		wbYear, wbMonth, ok := wb.BillingPeriod()
		if !ok {
			fail(0, fmt.Errorf("billing period not given and not found in workbook"))
			return
		}
		year, month = wbYear, wbMonth
	}
	send("step", fmt.Sprintf("billing period %d-%02d", year, month), nil)

	runID, err := c.store.CreateRun(opts.Filename, year, month)
	if err != nil {
		fail(0, err)
		return
	}

	// Reference tables are the only fatal inputs; day sheets may be
	// entirely absent and the run still produces an empty summary.
	weights, err := parser.LoadWeightTable(wb)
	if err != nil {
		fail(runID, err)
		return
	}
	prices, err := parser.LoadPriceTable(wb)
	if err != nil {
		fail(runID, err)
		return
	}
	send("step", fmt.Sprintf("loaded %d part weights, %d price rows", len(weights), len(prices)), nil)

	days := wb.DaySheetNames(year, month)
	lines, err := parser.NewDayParser(wb, year, month).ParseAll()
	if err != nil {
		fail(runID, err)
		return
	}
	send("step", fmt.Sprintf("read %d lines from %d day sheets", len(lines), len(days)), nil)

	calc := calculator.New(weights, prices, c.tariffOptions())
	groups := calc.Aggregate(lines)
	totals := calc.Totals(groups)

	unresolvedParts := 0
	unresolvedPostCodes := 0
	for _, g := range groups {
		if !g.Price.Found {
			unresolvedPostCodes++
		}
		for _, lw := range g.LineWeights {
			if !lw.Found {
				unresolvedParts++
			}
		}
	}
	send("step", fmt.Sprintf("aggregated %d shipments", len(groups)), nil)

	blocks := exporter.Assemble(groups)

	exportDir, err := config.EnsureDataDir(c.cfg)
	if err != nil {
		fail(runID, err)
		return
	}
	baseName := fmt.Sprintf("summary_%d-%02d_run%d", year, month, runID)
	xlsxPath := filepath.Join(exportDir, "exports", baseName+".xlsx")
	csvPath := filepath.Join(exportDir, "exports", baseName+".csv")

	excel := exporter.NewExcelExporter()
	wbOut, err := excel.Export(blocks, totals)
	if err != nil {
		fail(runID, err)
		return
	}
	if err := excel.SaveTo(wbOut, xlsxPath); err != nil {
		fail(runID, err)
		return
	}
	_ = wbOut.Close()

	if err := exporter.SaveCSV(csvPath, blocks, totals); err != nil {
		fail(runID, err)
		return
	}
	send("step", "exported summary workbook and csv", nil)

	result := RunResult{
		RunID:               runID,
		WorkbookID:          wb.ID(),
		Year:                year,
		Month:               month,
		DaySheets:           len(days),
		LineCount:           len(lines),
		ShipmentCount:       len(groups),
		UnresolvedParts:     unresolvedParts,
		UnresolvedPostCodes: unresolvedPostCodes,
		TotalQuantity:       totals.TotalQuantity,
		TotalWeight:         totals.TotalWeightKg,
		TotalCharge:         totals.TotalCharge,
		FuelSurcharge:       totals.FuelSurcharge,
		GrandTotal:          totals.GrandTotal,
		XLSXPath:            xlsxPath,
		CSVPath:             csvPath,
	}

	if err := c.store.FinishRun(&store.Run{
		ID:                  runID,
		DaySheets:           result.DaySheets,
		LineCount:           result.LineCount,
		ShipmentCount:       result.ShipmentCount,
		UnresolvedParts:     result.UnresolvedParts,
		UnresolvedPostCodes: result.UnresolvedPostCodes,
		TotalQuantity:       result.TotalQuantity,
		TotalWeight:         result.TotalWeight,
		TotalCharge:         result.TotalCharge,
		FuelSurcharge:       result.FuelSurcharge,
		GrandTotal:          result.GrandTotal,
		XLSXPath:            xlsxPath,
		CSVPath:             csvPath,
		Status:              "done",
	}); err != nil {
		fail(runID, err)
		return
	}

	if err := c.store.SetBillingPeriod(year, month); err != nil {
		// Not fatal; the summary is already produced.
		send("step", "failed to persist billing period: "+err.Error(), nil)
	}

	send("done", "summary generated", result)
}
