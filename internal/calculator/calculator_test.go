package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testWeights() map[string]model.WeightEntry {
	return map[string]model.WeightEntry{
		"P1": {PartNo: "P1", WeightKg: 2.0},
		"P3": {PartNo: "P3", WeightKg: 1.5},
	}
}

func testPrices() map[string]model.PriceEntry {
	return map[string]model.PriceEntry{
		"10110": {PostCode: "10110", Area: "BKK", MinCharge: 50, RatePerKg: 5},
		"50000": {PostCode: "50000", Area: "CNX", MinCharge: 80, RatePerKg: 7},
	}
}

func line(duOrder, partNo, postCode string, qty float64, day int) model.ShipmentLine {
	return model.ShipmentLine{
		DUOrder:   duOrder,
		PartNo:    partNo,
		PostCode:  postCode,
		PickQty:   qty,
		Day:       day,
		OrderDate: time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		HasDate:   true,
	}
}

func TestAggregate_UnresolvedPartExcludedFromWeight(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU1-A", "P1", "10110", 3, 1), // 3 * 2.0 = 6.0
		line("DU1-A", "P2", "10110", 2, 1), // unknown part, no weight
	})

	if len(groups) != 1 {
		t.Fatalf("want 1 group got %d", len(groups))
	}
	g := groups[0]
	if !approxEqual(g.TotalWeightKg, 6.0) {
		t.Fatalf("total weight want 6.0 got %v", g.TotalWeightKg)
	}
	// Quantity still counts the unresolved line.
	if !approxEqual(g.TotalQuantity, 5) {
		t.Fatalf("total quantity want 5 got %v", g.TotalQuantity)
	}
	if g.LineWeights[0].Found != true || g.LineWeights[1].Found != false {
		t.Fatalf("line weight resolution flags wrong: %+v", g.LineWeights)
	}
}

func TestAggregate_UnresolvedPostCode(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU2-B", "P1", "99999", 10, 2), // 20kg, post code absent from table
	})

	g := groups[0]
	if g.Price.Found {
		t.Fatalf("price must be unresolved")
	}
	if !approxEqual(g.Up10Chg, 10) {
		t.Fatalf("Up10Chg want 10 got %v", g.Up10Chg)
	}
	// Unresolved pricing contributes zero rate and zero minimum.
	if !approxEqual(g.AllCharge, 0) {
		t.Fatalf("AllCharge want 0 got %v", g.AllCharge)
	}
	if g.Transport != CarrierUpcountry {
		t.Fatalf("unresolved area must ship upcountry, got %q", g.Transport)
	}
}

func TestAggregate_ChargeAboveAllowance(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU3-C", "P1", "10110", 6, 3), // 12kg
	})

	g := groups[0]
	if !approxEqual(g.Up10Chg, 2) {
		t.Fatalf("Up10Chg want 2 got %v", g.Up10Chg)
	}
	// 2 excess kg * 5/kg + 50 minimum.
	if !approxEqual(g.AllCharge, 60) {
		t.Fatalf("AllCharge want 60 got %v", g.AllCharge)
	}
	if g.Transport != CarrierBKK {
		t.Fatalf("BKK area must ship STL, got %q", g.Transport)
	}
}

func TestAggregate_ChargeWithinAllowance(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU4-D", "P1", "50000", 4, 4), // 8kg, under the 10kg allowance
	})

	g := groups[0]
	if !approxEqual(g.Up10Chg, 0) {
		t.Fatalf("Up10Chg want 0 got %v", g.Up10Chg)
	}
	if !approxEqual(g.AllCharge, 80) {
		t.Fatalf("within allowance the charge is exactly the minimum, got %v", g.AllCharge)
	}
	if g.Transport != CarrierUpcountry {
		t.Fatalf("CNX area must ship DASH, got %q", g.Transport)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate(nil)
	if len(groups) != 0 {
		t.Fatalf("want no groups got %d", len(groups))
	}

	totals := c.Totals(groups)
	if totals.GrandTotal != 0 || totals.FuelSurcharge != 0 {
		t.Fatalf("empty totals must be zero: %+v", totals)
	}
}

func TestAggregate_SortAndGroupOrder(t *testing.T) {
	t.Parallel()

	noDate := line("DU-Z", "P1", "10110", 1, 1)
	noDate.HasDate = false
	noDate.OrderDate = time.Time{}

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU-B", "P1", "10110", 1, 5),
		noDate,
		line("DU-A", "P1", "10110", 1, 5),
		line("DU-C", "P1", "10110", 1, 2),
	})

	var order []string
	for _, g := range groups {
		order = append(order, g.DUOrder)
	}
	// Date ascending, DU-Order within the same date, dateless last.
	want := []string{"DU-C", "DU-A", "DU-B", "DU-Z"}
	if len(order) != len(want) {
		t.Fatalf("want %d groups got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("group order want %v got %v", want, order)
		}
	}
}

func TestAggregate_InputNotModified(t *testing.T) {
	t.Parallel()

	in := []model.ShipmentLine{
		line("DU-B", "P1", "10110", 1, 9),
		line("DU-A", "P1", "10110", 1, 1),
	}

	c := New(testWeights(), testPrices(), DefaultOptions())
	c.Aggregate(in)

	if in[0].DUOrder != "DU-B" || in[1].DUOrder != "DU-A" {
		t.Fatalf("input slice was reordered: %v, %v", in[0].DUOrder, in[1].DUOrder)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	in := []model.ShipmentLine{
		line("DU-B", "P1", "10110", 2, 3),
		line("DU-A", "P3", "50000", 4, 1),
		line("DU-B", "P2", "10110", 1, 3),
	}

	c := New(testWeights(), testPrices(), DefaultOptions())
	first := c.Aggregate(in)
	second := c.Aggregate(in)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.DUOrder != b.DUOrder || a.AllCharge != b.AllCharge || a.TotalWeightKg != b.TotalWeightKg {
			t.Fatalf("runs differ at group %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	c := New(testWeights(), testPrices(), DefaultOptions())
	groups := c.Aggregate([]model.ShipmentLine{
		line("DU3-C", "P1", "10110", 6, 3), // charge 60
		line("DU4-D", "P1", "50000", 4, 4), // charge 80
	})

	totals := c.Totals(groups)
	if !approxEqual(totals.TotalCharge, 140) {
		t.Fatalf("total charge want 140 got %v", totals.TotalCharge)
	}
	if !approxEqual(totals.FuelSurcharge, 140*0.1362) {
		t.Fatalf("fuel surcharge want %v got %v", 140*0.1362, totals.FuelSurcharge)
	}
	if !approxEqual(totals.GrandTotal, 140+140*0.1362) {
		t.Fatalf("grand total wrong: %v", totals.GrandTotal)
	}
	if !approxEqual(totals.TotalQuantity, 10) {
		t.Fatalf("total quantity want 10 got %v", totals.TotalQuantity)
	}
	if !approxEqual(totals.TotalWeightKg, 20) {
		t.Fatalf("total weight want 20 got %v", totals.TotalWeightKg)
	}
}
