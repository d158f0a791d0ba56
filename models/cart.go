package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one entry in the live cart. Lines are owned exclusively by the
// cart engine and destroyed on removal or clear.
type CartLine struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	VariationID string          `json:"variation_id,omitempty"`
	UnitID      string          `json:"unit_id,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Modifiers   []string        `json:"modifiers,omitempty"`

	// ConversionFactor comes from the selected unit (1 when sold by the
	// piece). BaseQuantity = Quantity x ConversionFactor is display-only;
	// pricing always uses the unit's own price.
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	BaseQuantity     decimal.Decimal `json:"base_quantity"`
}

// CartTotals is the derived money summary for the live cart.
type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is the wire representation returned to the terminal.
type Cart struct {
	Lines       []CartLine `json:"lines"`
	TableNumber string     `json:"table_number,omitempty"`
	CartTotals
}

// HoldSnapshot freezes an in-progress order so the terminal can start a new
// one. Immutable once written; deleted on recall.
type HoldSnapshot struct {
	ID          string     `json:"id"`
	Lines       []CartLine `json:"lines"`
	TableNumber string     `json:"table_number,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
