package models

// Ingredient represents a tracked ingredient in the back-of-house inventory.
// The controller's in-memory copy of these records is a cache of the remote
// store; only confirmed remote operations mutate it.
type Ingredient struct {
	ID         string  `json:"id"`
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Stock      int     `json:"stock"`
	Price      float64 `json:"price"`
	Unit       Unit    `json:"unit"`
	CustomUnit string  `json:"customUnit"`
	Threshold  int     `json:"threshold"`
	// ExpiryDate is an ISO YYYY-MM-DD date. Required for new records;
	// legacy rows from the store may not carry one.
	ExpiryDate string `json:"expiryDate"`

	// Sales columns maintained by the store and shown read-only on the
	// tracker view. Never set on client-created drafts.
	Orders        int    `json:"orders,omitempty"`
	MonthIncrease string `json:"monthIncrease,omitempty"`
	YearIncrease  string `json:"yearIncrease,omitempty"`
}

// Unit represents the measurement unit of an ingredient's stock
type Unit string

const (
	// Known measurement units
	UnitIndividual Unit = "individual"
	UnitBags       Unit = "bags"
	UnitBunches    Unit = "bunches"
	UnitCartons    Unit = "cartons"
	UnitKgs        Unit = "kgs"

	// UnitCustom marks a free-text unit carried in CustomUnit
	UnitCustom Unit = "custom"
)

var knownUnits = map[string]Unit{
	string(UnitIndividual): UnitIndividual,
	string(UnitBags):       UnitBags,
	string(UnitBunches):    UnitBunches,
	string(UnitCartons):    UnitCartons,
	string(UnitKgs):        UnitKgs,
}

// ClassifyMeasurement maps a raw stock measurement from the store into a
// unit. Values outside the known set become UnitCustom with the raw value
// preserved as the custom label.
func ClassifyMeasurement(raw string) (Unit, string) {
	if u, ok := knownUnits[raw]; ok {
		return u, ""
	}
	return UnitCustom, raw
}

// Measurement returns the effective display unit: the custom label when the
// unit is custom, otherwise the unit name itself.
func (i Ingredient) Measurement() string {
	if i.Unit == UnitCustom {
		return i.CustomUnit
	}
	return string(i.Unit)
}

// LowStock reports whether the stock level has fallen below the warning
// threshold.
func (i Ingredient) LowStock() bool {
	return i.Stock < i.Threshold
}
