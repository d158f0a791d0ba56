package repository

import (
	"context"

	"github.com/princekenny23/primepos-sub004/models"
)

// CatalogReader is the read-only catalog surface the order-entry engine
// depends on. Implementations must return only active records.
type CatalogReader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	ListVariations(ctx context.Context, productID string) ([]models.Variation, error)
	ListUnits(ctx context.Context, productID, variationID string) ([]models.SellingUnit, error)
}

// OrderSource supplies open-order summaries for the order finder.
type OrderSource interface {
	ListOpen(ctx context.Context) ([]models.OrderSummary, error)
}
