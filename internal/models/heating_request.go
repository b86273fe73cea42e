package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Heating request lifecycle statuses.
const (
	RequestStatusCreated  = "created"
	RequestStatusProposed = "proposed"
	RequestStatusSelected = "selected"
)

// KnownRequestStatus reports whether s is a valid lifecycle status.
func KnownRequestStatus(s string) bool {
	switch s {
	case RequestStatusCreated, RequestStatusProposed, RequestStatusSelected:
		return true
	}
	return false
}

// HeatingRequestSpec is the selection input: required thermal power and the
// supply/return temperatures of the heating loop.
type HeatingRequestSpec struct {
	PowerKw     decimal.Decimal `json:"power_kw"`
	SupplyTempC decimal.Decimal `json:"t_supply_c"`
	ReturnTempC decimal.Decimal `json:"t_return_c"`
	FuelType    string          `json:"fuel_type"`
}

// HeatingRequest is a durable customer request for a heating configuration.
type HeatingRequest struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id,omitempty"`
	PowerKw     decimal.Decimal `json:"power_kw"`
	SupplyTempC decimal.Decimal `json:"t_supply_c"`
	ReturnTempC decimal.Decimal `json:"t_return_c"`
	FuelType    string          `json:"fuel_type"`
	Notes       string          `json:"notes,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Spec extracts the selection input from a stored request.
func (r HeatingRequest) Spec() HeatingRequestSpec {
	return HeatingRequestSpec{
		PowerKw:     r.PowerKw,
		SupplyTempC: r.SupplyTempC,
		ReturnTempC: r.ReturnTempC,
		FuelType:    r.FuelType,
	}
}

// RequestFilter narrows heating-request listings.
type RequestFilter struct {
	CustomerID string
	Status     string
	FuelType   string
	Limit      int
	Offset     int
}
