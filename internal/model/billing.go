package model

import "time"

// ShipmentLine is one physical row read from a day sheet.
type ShipmentLine struct {
	RowNo int `json:"rowNo"` // 1-based row within the source sheet
	Day   int `json:"day"`   // day-of-month of the source sheet

	OrderDate time.Time `json:"orderDate"`
	HasDate   bool      `json:"hasDate"` // false when date construction/parsing failed

	DU              string  `json:"du"`
	Order           string  `json:"order"`
	DUOrder         string  `json:"duOrder"` // shipment group key
	CMCode          string  `json:"cmCode"`
	SoldTo          string  `json:"soldTo"`
	DestinationCode string  `json:"destinationCode"`
	ShipTo          string  `json:"shipTo"`
	Address1        string  `json:"address1"`
	Address2        string  `json:"address2"`
	Province        string  `json:"province"`
	PostCode        string  `json:"postCode"` // raw cell text, normalized at lookup time
	Tel             string  `json:"tel"`
	PartNo          string  `json:"partNo"`
	PickQtyRaw      string  `json:"pickQtyRaw"` // preserved for display in detail rows
	PickQty         float64 `json:"pickQty"`    // parsed quantity, 0 when unparseable
	FreeGift        string  `json:"freeGift"`
	Remark          string  `json:"remark"`
}

// WeightEntry is one row of the Cargo and Weight reference table.
type WeightEntry struct {
	PartNo   string  `json:"partNo"`
	WeightKg float64 `json:"weightKg"` // weight per unit
}

// PriceEntry is one row of the Sell Price reference table.
type PriceEntry struct {
	PostCode  string  `json:"postCode"` // normalized digit string
	Area      string  `json:"area"`
	MinCharge float64 `json:"minCharge"`
	RatePerKg float64 `json:"ratePerKg"`
}

// LineWeight is the weight resolution result for a single line.
// A miss is carried as Found=false rather than a zero weight so that
// unresolved parts stay distinct from genuinely weightless ones.
type LineWeight struct {
	Found    bool    `json:"found"`
	WeightKg float64 `json:"weightKg"` // quantity × unit weight, valid only when Found
}

// PriceResult is the price resolution result for a shipment group.
type PriceResult struct {
	Found     bool    `json:"found"`
	Area      string  `json:"area"`
	MinCharge float64 `json:"minCharge"`
	RatePerKg float64 `json:"ratePerKg"`
}

// ShipmentGroup is all lines sharing one DU-Order key, billed as one shipment.
type ShipmentGroup struct {
	DUOrder string `json:"duOrder"`

	// Header is the group's first line in sorted order; address and
	// customer fields are taken from it verbatim, never aggregated.
	Header ShipmentLine `json:"header"`

	Lines       []ShipmentLine `json:"lines"`
	LineWeights []LineWeight   `json:"lineWeights"` // parallel to Lines

	TotalQuantity float64 `json:"totalQuantity"`
	TotalWeightKg float64 `json:"totalWeightKg"` // unresolved lines excluded

	Price     PriceResult `json:"price"`
	Up10Chg   float64     `json:"up10Chg"` // chargeable weight above the allowance
	AllCharge float64     `json:"allCharge"`
	Transport string      `json:"transport"` // STL or DASH
}

// ReportTotals are the aggregate figures over a whole summary run.
type ReportTotals struct {
	TotalQuantity float64 `json:"totalQuantity"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	TotalCharge   float64 `json:"totalCharge"`
	FuelSurcharge float64 `json:"fuelSurcharge"`
	GrandTotal    float64 `json:"grandTotal"`
}
