package parser

// Workbook layout contract. Column positions are part of the source file
// format and must match it exactly; they are 1-based.
const (
	// Day sheets are named "1".."31"; data starts at row 9.
	DaySheetDataStartRow = 9

	colDU              = 1
	colOrder           = 2
	colDUOrder         = 3
	colCMCode          = 4
	colSoldTo          = 5
	colDestinationCode = 6
	colShipTo          = 7
	colAddress1        = 8
	colAddress2        = 9
	colProvince        = 10
	colPostCode        = 11
	colTel             = 12
	colPartNo          = 13
	colPickQty         = 14
	colFreeGift        = 15
	colRemark          = 16

	// DaySheetTitleCell may carry a localized date for the sheet
	// ("วันที่ 5 พฤษภาคม 2567"); it wins over the computed date when valid.
	DaySheetTitleCell = "B2"
)

// Cargo and Weight reference table layout.
const (
	WeightSheetName    = "Cargo and Weight"
	WeightDataStartRow = 3
	weightColPartNo    = 2
	weightColWeight    = 5
)

// Sell Price reference table layout.
const (
	PriceSheetName    = "Sell Price"
	PriceDataStartRow = 2
	priceColPostCode  = 1
	priceColArea      = 3
	priceColMinCharge = 4
	priceColRate      = 5
)

// Optional front sheet carrying the billing period.
const (
	MainSheetName = "Main"
	mainYearCell  = "B1"
	mainMonthCell = "B2"
)
