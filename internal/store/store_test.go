package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "billing.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.GetSetting("missing"); err == nil {
		t.Fatalf("expected error for missing key")
	}

	if err := s.SetSetting("k", "v1"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting("k", "v2"); err != nil {
		t.Fatalf("SetSetting upsert: %v", err)
	}
	v, err := s.GetSetting("k")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if v != "v2" {
		t.Fatalf("want v2 got %q", v)
	}
}

func TestSettingsFloat(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.GetSettingFloat(SettingFuelSurchargeRate); err == nil {
		t.Fatalf("expected error for unset override")
	}

	if err := s.SetSettingFloat(SettingFuelSurchargeRate, 0.15); err != nil {
		t.Fatalf("SetSettingFloat: %v", err)
	}
	v, err := s.GetSettingFloat(SettingFuelSurchargeRate)
	if err != nil {
		t.Fatalf("GetSettingFloat: %v", err)
	}
	if v != 0.15 {
		t.Fatalf("want 0.15 got %v", v)
	}
}

func TestBillingPeriod(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, _, err := s.GetBillingPeriod(); err == nil {
		t.Fatalf("expected error before any period is set")
	}

	if err := s.SetBillingPeriod(2024, 5); err != nil {
		t.Fatalf("SetBillingPeriod: %v", err)
	}
	year, month, err := s.GetBillingPeriod()
	if err != nil {
		t.Fatalf("GetBillingPeriod: %v", err)
	}
	if year != 2024 || month != 5 {
		t.Fatalf("want 2024/5 got %d/%d", year, month)
	}
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	id, err := s.CreateRun("may.xlsx", 2024, 5)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	run, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != "processing" {
		t.Fatalf("new run status want processing got %q", run.Status)
	}
	if run.Filename != "may.xlsx" || run.Year != 2024 || run.Month != 5 {
		t.Fatalf("run fields wrong: %+v", run)
	}

	run.DaySheets = 3
	run.LineCount = 42
	run.ShipmentCount = 17
	run.TotalCharge = 1234.5
	run.GrandTotal = 1402.64
	run.XLSXPath = "/tmp/out.xlsx"
	run.Status = "done"
	if err := s.FinishRun(run); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun after finish: %v", err)
	}
	if got.Status != "done" || got.ShipmentCount != 17 || got.GrandTotal != 1402.64 {
		t.Fatalf("finished run wrong: %+v", got)
	}
	if got.CompletedAt == "" {
		t.Fatalf("completed_at must be set")
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.CreateRun("f.xlsx", 2024, i+1); err != nil {
			t.Fatalf("CreateRun: %v", err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 runs got %d", len(runs))
	}
	// Newest first.
	if runs[0].Month != 3 || runs[1].Month != 2 {
		t.Fatalf("order wrong: %d, %d", runs[0].Month, runs[1].Month)
	}

	n, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if n != 3 {
		t.Fatalf("count want 3 got %d", n)
	}

	if _, err := s.GetRun(999); err == nil {
		t.Fatalf("expected error for unknown run")
	}
}
