package calculator

import (
	"sort"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/model"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/parser"
)

// Transport carrier assignment by destination area.
const (
	AreaBKK          = "BKK"
	CarrierBKK       = "STL"
	CarrierUpcountry = "DASH"
)

// AreaNotFound is the presentation label for an unresolved post code.
// The engine itself carries misses as PriceResult.Found=false; this label
// only matters to assemblers.
const AreaNotFound = "Post Code Not Found"

// Options are the billing rules that are fixed by tariff but kept
// adjustable in configuration.
type Options struct {
	AllowanceKg       float64 // weight per shipment not subject to the per-kg rate
	FuelSurchargeRate float64 // applied to total charge at report level
}

// DefaultOptions returns the current tariff values.
func DefaultOptions() Options {
	return Options{
		AllowanceKg:       10,
		FuelSurchargeRate: 0.1362,
	}
}

// Calculator groups shipment lines and derives the billing figures.
type Calculator struct {
	weights map[string]model.WeightEntry
	prices  map[string]model.PriceEntry
	opts    Options
}

// New creates a calculator over the two loaded reference tables.
func New(weights map[string]model.WeightEntry, prices map[string]model.PriceEntry, opts Options) *Calculator {
	return &Calculator{
		weights: weights,
		prices:  prices,
		opts:    opts,
	}
}

// Aggregate sorts the lines, groups them by DU-Order and computes every
// derived field. The input slice is not modified. Group order is the
// first-seen order of keys over the sorted lines, which makes two runs on
// identical input byte-identical.
func (c *Calculator) Aggregate(lines []model.ShipmentLine) []*model.ShipmentGroup {
	sorted := make([]model.ShipmentLine, len(lines))
	copy(sorted, lines)

	// Primary: order date, absent dates last. Secondary: DU-Order.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		if a.HasDate && !a.OrderDate.Equal(b.OrderDate) {
			return a.OrderDate.Before(b.OrderDate)
		}
		return a.DUOrder < b.DUOrder
	})

	byKey := make(map[string]*model.ShipmentGroup)
	var groups []*model.ShipmentGroup
	for _, line := range sorted {
		g, ok := byKey[line.DUOrder]
		if !ok {
			g = &model.ShipmentGroup{
				DUOrder: line.DUOrder,
				Header:  line,
			}
			byKey[line.DUOrder] = g
			groups = append(groups, g)
		}
		g.Lines = append(g.Lines, line)
	}

	for _, g := range groups {
		c.resolveGroup(g)
	}
	return groups
}

// resolveGroup computes weights, pricing and charges for one group.
// Derivation order matters for reproducibility: excess weight first, then
// total charge, then carrier.
func (c *Calculator) resolveGroup(g *model.ShipmentGroup) {
	g.LineWeights = make([]model.LineWeight, len(g.Lines))
	g.TotalQuantity = 0
	g.TotalWeightKg = 0

	for i, line := range g.Lines {
		g.TotalQuantity += line.PickQty

		entry, ok := c.weights[line.PartNo]
		if !ok {
			g.LineWeights[i] = model.LineWeight{Found: false}
			continue
		}
		w := line.PickQty * entry.WeightKg
		g.LineWeights[i] = model.LineWeight{Found: true, WeightKg: w}
		g.TotalWeightKg += w
	}

	g.Price = c.resolvePrice(g.Header.PostCode)

	g.Up10Chg = g.TotalWeightKg - c.opts.AllowanceKg
	if g.Up10Chg < 0 {
		g.Up10Chg = 0
	}
	g.AllCharge = g.Up10Chg*g.Price.RatePerKg + g.Price.MinCharge
	g.Transport = TransportFor(g.Price)
}

// resolvePrice looks up the group's representative post code.
func (c *Calculator) resolvePrice(rawPostCode string) model.PriceResult {
	key := parser.NormalizePostCode(rawPostCode)
	entry, ok := c.prices[key]
	if !ok {
		return model.PriceResult{Found: false}
	}
	return model.PriceResult{
		Found:     true,
		Area:      entry.Area,
		MinCharge: entry.MinCharge,
		RatePerKg: entry.RatePerKg,
	}
}

// TransportFor assigns the carrier: STL inside the BKK area, DASH
// everywhere else including unresolved post codes.
func TransportFor(price model.PriceResult) string {
	if price.Found && price.Area == AreaBKK {
		return CarrierBKK
	}
	return CarrierUpcountry
}

// Totals computes the aggregate report figures over all groups, including
// the fuel surcharge and grand total.
func (c *Calculator) Totals(groups []*model.ShipmentGroup) model.ReportTotals {
	var t model.ReportTotals
	for _, g := range groups {
		t.TotalQuantity += g.TotalQuantity
		t.TotalWeightKg += g.TotalWeightKg
		t.TotalCharge += g.AllCharge
	}
	t.FuelSurcharge = t.TotalCharge * c.opts.FuelSurchargeRate
	t.GrandTotal = t.TotalCharge + t.FuelSurcharge
	return t
}
