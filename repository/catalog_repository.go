package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
)

// CatalogRepository reads the product catalog from mongo. Variations and
// selling units are embedded in the product document; active filtering
// happens here so the engine never sees retired records.
type CatalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{collection: db.Collection("products")}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id, "is_active": true})
}

func (r *CatalogRepository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"barcode": barcode, "is_active": true})
}

func (r *CatalogRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrUnknownProduct
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogRepository) ListVariations(ctx context.Context, productID string) ([]models.Variation, error) {
	product, err := r.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	variations := make([]models.Variation, 0, len(product.Variations))
	for _, v := range product.Variations {
		if v.IsActive {
			variations = append(variations, v)
		}
	}
	return variations, nil
}

// ListUnits returns the selling units for a product, scoped to a variation
// when the unit declares one.
func (r *CatalogRepository) ListUnits(ctx context.Context, productID, variationID string) ([]models.SellingUnit, error) {
	product, err := r.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	units := make([]models.SellingUnit, 0, len(product.SellingUnits))
	for _, u := range product.SellingUnits {
		if !u.IsActive {
			continue
		}
		if u.VariationID != "" && u.VariationID != variationID {
			continue
		}
		units = append(units, u)
	}
	return units, nil
}
