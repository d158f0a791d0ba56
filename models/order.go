package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is the read-only projection of an open order used by the
// order finder. Refreshing the list is the caller's responsibility.
type OrderSummary struct {
	ID            string          `json:"id" bson:"_id"`
	ReceiptNumber string          `json:"receipt_number" bson:"receipt_number"`
	TableNumber   string          `json:"table_number,omitempty" bson:"table_number,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	Total         decimal.Decimal `json:"total" bson:"total"`
	Items         []string        `json:"items" bson:"items"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
}

// CheckoutEvent is published when a finalized cart is handed to payment.
type CheckoutEvent struct {
	Event         string     `json:"event"`
	TerminalID    string     `json:"terminal_id"`
	ReceiptNumber string     `json:"receipt_number"`
	PaymentMethod string     `json:"payment_method"`
	TableNumber   string     `json:"table_number,omitempty"`
	Lines         []CartLine `json:"lines"`
	Totals        CartTotals `json:"totals"`
	Timestamp     time.Time  `json:"timestamp"`
}
