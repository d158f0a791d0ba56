package models

import "github.com/shopspring/decimal"

// Product is the catalog's view of a sellable item. It is read-only to the
// order-entry engine; the catalog service owns the records.
type Product struct {
	ID              string          `json:"id" bson:"_id"`
	SKU             string          `json:"sku" bson:"sku"`
	Barcode         string          `json:"barcode,omitempty" bson:"barcode,omitempty"`
	Name            string          `json:"name" bson:"name"`
	BasePrice       decimal.Decimal `json:"base_price" bson:"base_price"`
	HasVariations   bool            `json:"has_variations" bson:"has_variations"`
	HasSellingUnits bool            `json:"has_selling_units" bson:"has_selling_units"`
	IsActive        bool            `json:"is_active" bson:"is_active"`

	Variations   []Variation   `json:"variations,omitempty" bson:"variations,omitempty"`
	SellingUnits []SellingUnit `json:"selling_units,omitempty" bson:"selling_units,omitempty"`
}

// Variation is a concrete configuration of a product (size, flavor, ...).
type Variation struct {
	ID             string          `json:"id" bson:"id"`
	Name           string          `json:"name" bson:"name"`
	Price          decimal.Decimal `json:"price" bson:"price"`
	TrackInventory bool            `json:"track_inventory" bson:"track_inventory"`
	Stock          int             `json:"stock" bson:"stock"`
	IsActive       bool            `json:"is_active" bson:"is_active"`
}

// SellingUnit is an alternate unit of sale ("case" vs "piece") carrying its
// own price. ConversionFactor is the number of base units per selling unit
// and is always >= 1.
type SellingUnit struct {
	ID               string          `json:"id" bson:"id"`
	VariationID      string          `json:"variation_id,omitempty" bson:"variation_id,omitempty"`
	UnitName         string          `json:"unit_name" bson:"unit_name"`
	ConversionFactor decimal.Decimal `json:"conversion_factor" bson:"conversion_factor"`
	Price            decimal.Decimal `json:"price" bson:"price"`
	IsActive         bool            `json:"is_active" bson:"is_active"`
}

// SelectionResult is the normalized output of a completed selection flow,
// produced once by the orchestrator and consumed once by the cart engine.
type SelectionResult struct {
	Product   Product      `json:"product"`
	Variation *Variation   `json:"variation,omitempty"`
	Unit      *SellingUnit `json:"unit,omitempty"`
	Quantity  int          `json:"quantity"`
	Modifiers []string     `json:"modifiers,omitempty"`
}
