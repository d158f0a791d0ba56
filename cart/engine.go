package cart

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
)

// DiscountType selects how a line discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

var oneHundred = decimal.NewFromInt(100)

// Engine holds the ordered line collection for one terminal's live cart.
// Every operation either fully recomputes derived totals or fails before
// mutating anything. AddLine's merge-or-append decision is a read-then-write,
// so the engine carries its own mutex.
type Engine struct {
	mu      sync.Mutex
	lines   []*models.CartLine
	byKey   map[string]*models.CartLine
	byID    map[string]*models.CartLine
	table   string
	taxRate decimal.Decimal
}

func NewEngine(taxRate decimal.Decimal) *Engine {
	return &Engine{
		byKey:   make(map[string]*models.CartLine),
		byID:    make(map[string]*models.CartLine),
		taxRate: taxRate,
	}
}

// mergeKey derives the composite identity a line merges on. Parts are
// length-prefixed so free-text modifiers cannot collide across part
// boundaries. Modifier order never distinguishes two lines.
func mergeKey(productID, variationID, unitID string, modifiers []string) string {
	mods := append([]string(nil), modifiers...)
	sort.Strings(mods)

	var b strings.Builder
	for _, part := range append([]string{productID, variationID, unitID}, mods...) {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// recompute refreshes a line's derived fields, keeping the discount clamped
// to the gross so the line total never goes negative.
func recompute(line *models.CartLine) {
	gross := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	if line.Discount.GreaterThan(gross) {
		line.Discount = gross
	}
	line.LineTotal = gross.Sub(line.Discount)
	line.BaseQuantity = line.ConversionFactor.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// AddLine merges the selection into an existing line when product, variation,
// unit and modifier set all match, otherwise appends a new line. Returns the
// affected line.
func (e *Engine) AddLine(sel models.SelectionResult) models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	var variationID, unitID string
	name := sel.Product.Name
	price := sel.Product.BasePrice
	factor := decimal.NewFromInt(1)

	if sel.Variation != nil {
		variationID = sel.Variation.ID
		name = sel.Product.Name + " - " + sel.Variation.Name
		price = sel.Variation.Price
	}
	if sel.Unit != nil {
		unitID = sel.Unit.ID
		name = name + " (" + sel.Unit.UnitName + ")"
		// The unit carries its own price; never derive a per-piece price
		// from the conversion factor, that double-converts.
		price = sel.Unit.Price
		factor = sel.Unit.ConversionFactor
	}

	qty := sel.Quantity
	if qty < 1 {
		qty = 1
	}

	key := mergeKey(sel.Product.ID, variationID, unitID, sel.Modifiers)
	if line, ok := e.byKey[key]; ok {
		line.Quantity += qty
		recompute(line)
		return *line
	}

	line := &models.CartLine{
		ID:               uuid.NewString(),
		ProductID:        sel.Product.ID,
		VariationID:      variationID,
		UnitID:           unitID,
		Name:             name,
		UnitPrice:        price,
		Quantity:         qty,
		Discount:         decimal.Zero,
		Modifiers:        append([]string(nil), sel.Modifiers...),
		ConversionFactor: factor,
	}
	recompute(line)

	e.lines = append(e.lines, line)
	e.byKey[key] = line
	e.byID[line.ID] = line
	return *line
}

// UpdateQuantity sets a line's quantity, clamped to at least 1. Removing a
// line goes through RemoveLine, never through a zero quantity here.
func (e *Engine) UpdateQuantity(lineID string, qty int) (models.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.byID[lineID]
	if !ok {
		return models.CartLine{}, apperrors.ErrLineNotFound
	}
	if qty < 1 {
		qty = 1
	}
	line.Quantity = qty
	recompute(line)
	return *line, nil
}

// ApplyDiscount applies a percentage or fixed-amount discount to a line.
// Percentages outside [0,100] and negative amounts are rejected with no
// change; the resulting line total is clamped at zero.
func (e *Engine) ApplyDiscount(lineID string, dtype DiscountType, value decimal.Decimal) (models.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.byID[lineID]
	if !ok {
		return models.CartLine{}, apperrors.ErrLineNotFound
	}

	gross := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

	var discount decimal.Decimal
	switch dtype {
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(oneHundred) {
			return models.CartLine{}, apperrors.ErrInvalidDiscount
		}
		discount = gross.Mul(value).Div(oneHundred)
	case DiscountAmount:
		if value.IsNegative() {
			return models.CartLine{}, apperrors.ErrInvalidDiscount
		}
		discount = value
	default:
		return models.CartLine{}, apperrors.ErrInvalidDiscount
	}

	line.Discount = discount
	recompute(line)
	return *line, nil
}

// RemoveLine deletes a single line; other lines are untouched.
func (e *Engine) RemoveLine(lineID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.byID[lineID]
	if !ok {
		return apperrors.ErrLineNotFound
	}
	delete(e.byID, lineID)
	delete(e.byKey, mergeKey(line.ProductID, line.VariationID, line.UnitID, line.Modifiers))
	for i, l := range e.lines {
		if l.ID == lineID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			break
		}
	}
	return nil
}

// Clear empties the cart and drops the table association.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *Engine) reset() {
	e.lines = nil
	e.byKey = make(map[string]*models.CartLine)
	e.byID = make(map[string]*models.CartLine)
	e.table = ""
}

// SetTable associates the cart with a table for dine-in orders.
func (e *Engine) SetTable(table string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table = table
}

func (e *Engine) Table() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table
}

func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// Lines returns a copy of the current lines in insertion order.
func (e *Engine) Lines() []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLines()
}

func (e *Engine) copyLines() []models.CartLine {
	out := make([]models.CartLine, 0, len(e.lines))
	for _, l := range e.lines {
		out = append(out, *l)
	}
	return out
}

// Totals recomputes the derived cart totals: subtotal before discounts, the
// sum of line discounts, tax on the discounted subtotal, and the grand total
// floored at zero.
func (e *Engine) Totals() models.CartTotals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totals()
}

func (e *Engine) totals() models.CartTotals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, l := range e.lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		discount = discount.Add(l.Discount)
	}
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(e.taxRate)
	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return models.CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}

// View returns the wire representation of the cart with fresh totals.
func (e *Engine) View() models.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.Cart{
		Lines:       e.copyLines(),
		TableNumber: e.table,
		CartTotals:  e.totals(),
	}
}

// Snapshot captures the cart for a hold without clearing it.
func (e *Engine) Snapshot() ([]models.CartLine, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLines(), e.table
}

// Restore replaces the live cart with previously held lines.
func (e *Engine) Restore(lines []models.CartLine, table string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	e.table = table
	for i := range lines {
		line := lines[i]
		recompute(&line)
		e.lines = append(e.lines, &line)
		e.byKey[mergeKey(line.ProductID, line.VariationID, line.UnitID, line.Modifiers)] = &line
		e.byID[line.ID] = &line
	}
}
