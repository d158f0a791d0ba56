package selection_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/selection"
)

// ---- fake catalog ----

type fakeCatalog struct {
	products   map[string]*models.Product
	variations map[string][]models.Variation
	units      map[string][]models.SellingUnit
}

func (f *fakeCatalog) GetProduct(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperrors.ErrUnknownProduct
	}
	return p, nil
}

func (f *fakeCatalog) ListVariations(_ context.Context, productID string) ([]models.Variation, error) {
	return f.variations[productID], nil
}

func (f *fakeCatalog) ListUnits(_ context.Context, productID, variationID string) ([]models.SellingUnit, error) {
	return f.units[productID], nil
}

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]*models.Product{
			"espresso": {ID: "espresso", Name: "Espresso", BasePrice: price("2.50")},
			"latte": {
				ID: "latte", Name: "Latte", BasePrice: price("4.00"),
				HasVariations: true,
			},
			"water": {
				ID: "water", Name: "Water", BasePrice: price("1.00"),
				HasSellingUnits: true,
			},
			"soda": {
				ID: "soda", Name: "Soda", BasePrice: price("1.50"),
				HasVariations: true, HasSellingUnits: true,
			},
		},
		variations: map[string][]models.Variation{
			"latte": {
				{ID: "small", Name: "Small", Price: price("4.00"), IsActive: true},
				{ID: "large", Name: "Large", Price: price("5.00"), IsActive: true},
			},
			"soda": {
				{ID: "cola", Name: "Cola", Price: price("1.50"), IsActive: true},
			},
		},
		units: map[string][]models.SellingUnit{
			"water": {
				{ID: "bottle", UnitName: "Bottle", ConversionFactor: price("1"), Price: price("1.00"), IsActive: true},
				{ID: "crate", UnitName: "Crate", ConversionFactor: price("12"), Price: price("10.00"), IsActive: true},
			},
			"soda": {
				{ID: "can", UnitName: "Can", ConversionFactor: price("1"), Price: price("1.50"), IsActive: true},
			},
		},
	}
}

// ---- tests ----

func TestPlainProductCompletesImmediately(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	tr, err := o.Start(context.Background(), "espresso")
	require.NoError(t, err)
	assert.Equal(t, selection.StateComplete, tr.State)

	result, err := o.Result()
	require.NoError(t, err)
	assert.Equal(t, "espresso", result.Product.ID)
	assert.Nil(t, result.Variation)
	assert.Nil(t, result.Unit)
	assert.Equal(t, 1, result.Quantity)
}

func TestVariationThenComplete(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	tr, err := o.Start(context.Background(), "latte")
	require.NoError(t, err)
	require.Equal(t, selection.StateVariation, tr.State)
	assert.Len(t, tr.Variations, 2)

	tr, err = o.ChooseVariation(context.Background(), "large")
	require.NoError(t, err)
	assert.Equal(t, selection.StateComplete, tr.State)

	result, err := o.Result()
	require.NoError(t, err)
	require.NotNil(t, result.Variation)
	assert.Equal(t, "large", result.Variation.ID)
	assert.Nil(t, result.Unit)
}

func TestUnitOnlyProduct(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	tr, err := o.Start(context.Background(), "water")
	require.NoError(t, err)
	require.Equal(t, selection.StateUnit, tr.State)
	assert.Len(t, tr.Units, 2)

	tr, err = o.ChooseUnit(context.Background(), "crate")
	require.NoError(t, err)
	assert.Equal(t, selection.StateComplete, tr.State)

	result, err := o.Result()
	require.NoError(t, err)
	assert.Nil(t, result.Variation)
	require.NotNil(t, result.Unit)
	assert.Equal(t, "crate", result.Unit.ID)
}

func TestVariationAndUnitPath(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	tr, err := o.Start(context.Background(), "soda")
	require.NoError(t, err)
	require.Equal(t, selection.StateVariation, tr.State)

	tr, err = o.ChooseVariation(context.Background(), "cola")
	require.NoError(t, err)
	require.Equal(t, selection.StateUnit, tr.State)

	tr, err = o.ChooseUnit(context.Background(), "can")
	require.NoError(t, err)
	assert.Equal(t, selection.StateComplete, tr.State)
}

func TestBackFromUnitReturnsToVariationWhenOneOccurred(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.Start(context.Background(), "soda")
	require.NoError(t, err)
	_, err = o.ChooseVariation(context.Background(), "cola")
	require.NoError(t, err)
	require.Equal(t, selection.StateUnit, o.State())

	tr, err := o.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, selection.StateVariation, tr.State)
}

func TestBackFromUnitReturnsToProductWithoutVariation(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.Start(context.Background(), "water")
	require.NoError(t, err)
	require.Equal(t, selection.StateUnit, o.State())

	tr, err := o.Back(context.Background())
	require.NoError(t, err)
	assert.Equal(t, selection.StateProduct, tr.State)
}

func TestCancelDiscardsAndIsIdempotent(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.Start(context.Background(), "latte")
	require.NoError(t, err)

	tr := o.Cancel()
	assert.Equal(t, selection.StateProduct, tr.State)

	// Cancelling again is harmless.
	tr = o.Cancel()
	assert.Equal(t, selection.StateProduct, tr.State)

	// No result escapes a cancelled flow.
	_, err = o.Result()
	assert.Error(t, err)
}

func TestResultConsumedExactlyOnce(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.Start(context.Background(), "espresso")
	require.NoError(t, err)

	_, err = o.Result()
	require.NoError(t, err)

	_, err = o.Result()
	assert.ErrorIs(t, err, apperrors.ErrSelectionStep)
}

func TestStartingNewFlowResetsState(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.Start(context.Background(), "latte")
	require.NoError(t, err)
	require.Equal(t, selection.StateVariation, o.State())

	tr, err := o.Start(context.Background(), "espresso")
	require.NoError(t, err)
	assert.Equal(t, selection.StateComplete, tr.State)

	result, err := o.Result()
	require.NoError(t, err)
	assert.Equal(t, "espresso", result.Product.ID)
}

func TestStepGuards(t *testing.T) {
	o := selection.NewOrchestrator(newCatalog())

	_, err := o.ChooseVariation(context.Background(), "large")
	assert.ErrorIs(t, err, apperrors.ErrSelectionStep)

	_, err = o.ChooseUnit(context.Background(), "crate")
	assert.ErrorIs(t, err, apperrors.ErrSelectionStep)

	_, err = o.Back(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSelectionStep)
}
