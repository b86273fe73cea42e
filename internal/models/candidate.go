package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency this catalog is priced in.
const DefaultCurrency = "RUB"

// ConfigComponent is one catalog item placed into a candidate bundle.
// Subtotal is always Qty * UnitPrice, derived at assembly time.
type ConfigComponent struct {
	EquipmentID string          `json:"equipment_id"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Qty         decimal.Decimal `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ConfigCandidate is one fully-assembled priced bundle: exactly one boiler and
// one burner with matching connection keys, one pump, one valve, one flow-meter
// and at most one automation unit. MaxDeliveryDays, ConnectionKey and DNSize
// are fixed at assembly time and persisted with the candidate.
type ConfigCandidate struct {
	ID              string            `json:"id,omitempty"`
	RequestID       string            `json:"request_id,omitempty"`
	TotalPrice      decimal.Decimal   `json:"total_price"`
	Currency        string            `json:"currency"`
	MaxDeliveryDays int               `json:"max_delivery_days"`
	ConnectionKey   string            `json:"connection_key,omitempty"`
	DNSize          *int              `json:"dn_size,omitempty"`
	CreatedAt       time.Time         `json:"created_at,omitempty"`
	Components      []ConfigComponent `json:"components,omitempty"`
}
