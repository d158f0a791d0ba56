package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princekenny23/primepos-sub004/cart"
	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func espresso() models.SelectionResult {
	return models.SelectionResult{
		Product:  models.Product{ID: "espresso", Name: "Espresso", BasePrice: dec("2.50")},
		Quantity: 1,
	}
}

func crateOfWater() models.SelectionResult {
	return models.SelectionResult{
		Product: models.Product{ID: "water", Name: "Water", BasePrice: dec("1.00")},
		Unit: &models.SellingUnit{
			ID: "crate", UnitName: "Crate",
			ConversionFactor: dec("12"), Price: dec("10.00"),
		},
		Quantity: 1,
	}
}

func newEngine() *cart.Engine {
	return cart.NewEngine(decimal.Zero)
}

func TestAddLineIdempotentMerge(t *testing.T) {
	e := newEngine()

	first := e.AddLine(espresso())
	second := e.AddLine(espresso())

	require.Len(t, e.Lines(), 1, "identical selections merge, never duplicate")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)
	assert.True(t, second.LineTotal.Equal(dec("5.00")))
}

func TestAddLineModifierSetOrderIndependent(t *testing.T) {
	e := newEngine()

	sel := espresso()
	sel.Modifiers = []string{"oat milk", "extra shot"}
	e.AddLine(sel)

	sel.Modifiers = []string{"extra shot", "oat milk"}
	e.AddLine(sel)

	require.Len(t, e.Lines(), 1)
	assert.Equal(t, 2, e.Lines()[0].Quantity)
}

func TestAddLineDistinguishesConfiguration(t *testing.T) {
	e := newEngine()

	e.AddLine(espresso())
	withMod := espresso()
	withMod.Modifiers = []string{"decaf"}
	e.AddLine(withMod)
	e.AddLine(crateOfWater())

	assert.Len(t, e.Lines(), 3)
}

func TestAddLineModifierTextCannotForgeMerge(t *testing.T) {
	e := newEngine()

	joined := espresso()
	joined.Modifiers = []string{"oat|decaf"}
	e.AddLine(joined)

	split := espresso()
	split.Modifiers = []string{"oat", "decaf"}
	e.AddLine(split)

	assert.Len(t, e.Lines(), 2, "free-text modifiers stay distinct configurations")
}

func TestUnitPricingNeverReconverts(t *testing.T) {
	e := newEngine()

	line := e.AddLine(crateOfWater())

	// The crate's own price applies; 12 base pieces is display only.
	assert.True(t, line.UnitPrice.Equal(dec("10.00")))
	assert.True(t, line.LineTotal.Equal(dec("10.00")))
	assert.True(t, line.BaseQuantity.Equal(dec("12")))

	line, err := e.UpdateQuantity(line.ID, 3)
	require.NoError(t, err)
	assert.True(t, line.LineTotal.Equal(dec("30.00")))
	assert.True(t, line.BaseQuantity.Equal(dec("36")))
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	e := newEngine()
	line := e.AddLine(espresso())

	line, err := e.UpdateQuantity(line.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	e := newEngine()
	e.AddLine(espresso())

	_, err := e.UpdateQuantity("missing", 2)
	assert.ErrorIs(t, err, apperrors.ErrLineNotFound)
	assert.Equal(t, 1, e.Lines()[0].Quantity, "no side effect")
}

func TestApplyDiscountPercentage(t *testing.T) {
	e := newEngine()
	line := e.AddLine(espresso())
	_, err := e.UpdateQuantity(line.ID, 4) // gross 10.00
	require.NoError(t, err)

	line, err = e.ApplyDiscount(line.ID, cart.DiscountPercentage, dec("25"))
	require.NoError(t, err)
	assert.True(t, line.Discount.Equal(dec("2.50")))
	assert.True(t, line.LineTotal.Equal(dec("7.50")))
}

func TestApplyDiscountRejectsOutOfRange(t *testing.T) {
	e := newEngine()
	line := e.AddLine(espresso())

	_, err := e.ApplyDiscount(line.ID, cart.DiscountPercentage, dec("150"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)

	_, err = e.ApplyDiscount(line.ID, cart.DiscountPercentage, dec("-5"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)

	_, err = e.ApplyDiscount(line.ID, cart.DiscountAmount, dec("-1"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)

	assert.True(t, e.Lines()[0].Discount.IsZero(), "state unchanged after rejection")
}

func TestApplyDiscountClampsAtZero(t *testing.T) {
	e := newEngine()
	line := e.AddLine(espresso()) // gross 2.50

	line, err := e.ApplyDiscount(line.ID, cart.DiscountAmount, dec("99.00"))
	require.NoError(t, err)
	assert.True(t, line.LineTotal.IsZero(), "line total never negative")
	assert.True(t, line.Discount.Equal(dec("2.50")), "discount clamped to gross")
}

func TestRemoveLineLeavesOthers(t *testing.T) {
	e := newEngine()
	a := e.AddLine(espresso())
	e.AddLine(crateOfWater())

	require.NoError(t, e.RemoveLine(a.ID))
	require.Len(t, e.Lines(), 1)
	assert.Equal(t, "water", e.Lines()[0].ProductID)

	assert.ErrorIs(t, e.RemoveLine(a.ID), apperrors.ErrLineNotFound)
}

func TestRemovedLineCanBeReAdded(t *testing.T) {
	e := newEngine()
	a := e.AddLine(espresso())
	require.NoError(t, e.RemoveLine(a.ID))

	b := e.AddLine(espresso())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 1, b.Quantity)
}

func TestClearResetsCartAndTable(t *testing.T) {
	e := newEngine()
	e.AddLine(espresso())
	e.SetTable("7")

	e.Clear()
	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.Table())
}

func TestTotalsInvariant(t *testing.T) {
	e := cart.NewEngine(dec("0.10"))

	a := e.AddLine(espresso())
	e.AddLine(crateOfWater())
	_, err := e.UpdateQuantity(a.ID, 2) // espresso gross 5.00, water 10.00
	require.NoError(t, err)
	_, err = e.ApplyDiscount(a.ID, cart.DiscountAmount, dec("1.00"))
	require.NoError(t, err)

	totals := e.Totals()
	assert.True(t, totals.Subtotal.Equal(dec("15.00")), "subtotal is pre-discount")
	assert.True(t, totals.Discount.Equal(dec("1.00")))
	assert.True(t, totals.Tax.Equal(dec("1.40")), "tax on discounted subtotal")
	assert.True(t, totals.Total.Equal(dec("15.40")))
}

func TestTotalsTrackEverySequence(t *testing.T) {
	e := newEngine()

	a := e.AddLine(espresso())
	b := e.AddLine(crateOfWater())
	_, err := e.UpdateQuantity(b.ID, 5)
	require.NoError(t, err)
	require.NoError(t, e.RemoveLine(a.ID))

	expected := decimal.Zero
	for _, l := range e.Lines() {
		expected = expected.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, e.Totals().Subtotal.Equal(expected))
}
