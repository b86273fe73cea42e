package models

import (
	"github.com/shopspring/decimal"
)

// Equipment categories as stored in the catalog.
const (
	CategoryBoiler     = "boiler"
	CategoryBurner     = "burner"
	CategoryPump       = "pump"
	CategoryValve      = "valve"
	CategoryFlowmeter  = "flowmeter"
	CategoryAutomation = "automation"
)

// Fuel types accepted by boilers and burners.
const (
	FuelGas    = "gas"
	FuelDiesel = "diesel"
	FuelOther  = "other"
)

// KnownCategory reports whether c is one of the catalog categories.
func KnownCategory(c string) bool {
	switch c {
	case CategoryBoiler, CategoryBurner, CategoryPump, CategoryValve, CategoryFlowmeter, CategoryAutomation:
		return true
	}
	return false
}

// KnownFuelType reports whether f is a supported fuel type.
func KnownFuelType(f string) bool {
	switch f {
	case FuelGas, FuelDiesel, FuelOther:
		return true
	}
	return false
}

// Equipment is one priced catalog entry. Range bounds and DN/fuel/connection
// attributes are optional; an absent power or flow bound means unbounded in
// that direction.
type Equipment struct {
	ID            string              `json:"id"`
	Category      string              `json:"category"`
	Brand         string              `json:"brand"`
	Model         string              `json:"model"`
	Active        bool                `json:"active"`
	PowerMinKw    decimal.NullDecimal `json:"power_min_kw,omitempty"`
	PowerMaxKw    decimal.NullDecimal `json:"power_max_kw,omitempty"`
	FlowMinM3h    decimal.NullDecimal `json:"flow_min_m3h,omitempty"`
	FlowMaxM3h    decimal.NullDecimal `json:"flow_max_m3h,omitempty"`
	DNSize        *int                `json:"dn_size,omitempty"`
	FuelType      string              `json:"fuel_type,omitempty"`
	ConnectionKey string              `json:"connection_key,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	DeliveryDays  int                 `json:"delivery_days"`
}

// BoilerBurnerPair is the projection returned by the compatible-pair query:
// a boiler and a burner sharing a connection key, cheapest combined price first.
type BoilerBurnerPair struct {
	BoilerID      string
	BurnerID      string
	PairPrice     decimal.Decimal
	ConnectionKey string
	DNSize        *int
}
