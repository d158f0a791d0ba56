package selection

import (
	"context"
	"sync"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
)

// State names the current step of a selection flow.
type State string

const (
	StateProduct   State = "product"
	StateVariation State = "variation"
	StateUnit      State = "unit"
	StateComplete  State = "complete"
)

// Action names an operation available from the current step.
type Action string

const (
	ActionSelectProduct   Action = "select_product"
	ActionSelectVariation Action = "select_variation"
	ActionSelectUnit      Action = "select_unit"
	ActionBack            Action = "back"
	ActionCancel          Action = "cancel"
	ActionTakeResult      Action = "take_result"
)

// Transition is what a presentation layer renders after each step: the state
// the flow landed in and the actions available from it. The machine itself
// stays free of rendering concerns.
type Transition struct {
	State      State                `json:"state"`
	Actions    []Action             `json:"actions"`
	Variations []models.Variation   `json:"variations,omitempty"`
	Units      []models.SellingUnit `json:"units,omitempty"`
}

// Catalog is the read-only lookup the orchestrator walks. Records are
// assumed pre-filtered to active ones.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListVariations(ctx context.Context, productID string) ([]models.Variation, error)
	ListUnits(ctx context.Context, productID, variationID string) ([]models.SellingUnit, error)
}

// Orchestrator walks one item through variation and unit disambiguation.
// Only one flow is active per instance; starting a new one resets state.
type Orchestrator struct {
	mu      sync.Mutex
	catalog Catalog

	state        State
	product      *models.Product
	variation    *models.Variation
	unit         *models.SellingUnit
	variations   []models.Variation
	units        []models.SellingUnit
	sawVariation bool
	result       *models.SelectionResult
}

func NewOrchestrator(catalog Catalog) *Orchestrator {
	return &Orchestrator{catalog: catalog, state: StateProduct}
}

// Start begins a new flow for the given product, discarding any flow in
// progress. Products without variations or selling units complete
// immediately.
func (o *Orchestrator) Start(ctx context.Context, productID string) (Transition, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.resetLocked()

	product, err := o.catalog.GetProduct(ctx, productID)
	if err != nil {
		return o.transitionLocked(), err
	}
	o.product = product
	return o.advanceLocked(ctx)
}

// ChooseVariation resolves the variation step and re-evaluates whether a
// unit step is needed.
func (o *Orchestrator) ChooseVariation(ctx context.Context, variationID string) (Transition, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateVariation {
		return o.transitionLocked(), apperrors.ErrSelectionStep
	}
	for i := range o.variations {
		if o.variations[i].ID == variationID {
			o.variation = &o.variations[i]
			o.sawVariation = true
			return o.advanceLocked(ctx)
		}
	}
	return o.transitionLocked(), apperrors.ErrUnknownProduct
}

// ChooseUnit resolves the unit step and completes the flow.
func (o *Orchestrator) ChooseUnit(ctx context.Context, unitID string) (Transition, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateUnit {
		return o.transitionLocked(), apperrors.ErrSelectionStep
	}
	for i := range o.units {
		if o.units[i].ID == unitID {
			o.unit = &o.units[i]
			o.completeLocked()
			return o.transitionLocked(), nil
		}
	}
	return o.transitionLocked(), apperrors.ErrUnknownProduct
}

// Back returns to the previous step. From the unit step it goes back to the
// variation step only if one occurred in this session.
func (o *Orchestrator) Back(ctx context.Context) (Transition, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateUnit:
		o.unit = nil
		if o.sawVariation {
			o.variation = nil
			o.state = StateVariation
		} else {
			o.resetLocked()
		}
	case StateVariation:
		o.variation = nil
		o.sawVariation = false
		o.resetLocked()
	default:
		return o.transitionLocked(), apperrors.ErrSelectionStep
	}
	return o.transitionLocked(), nil
}

// Cancel discards partial state. Idempotent; a cancelled flow never yields a
// result.
func (o *Orchestrator) Cancel() Transition {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetLocked()
	return o.transitionLocked()
}

// Result hands out the packaged selection exactly once, then resets the
// machine for reuse.
func (o *Orchestrator) Result() (*models.SelectionResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateComplete || o.result == nil {
		return nil, apperrors.ErrSelectionStep
	}
	res := o.result
	o.resetLocked()
	return res, nil
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// advanceLocked evaluates where the flow goes after a product or variation
// has been fixed.
func (o *Orchestrator) advanceLocked(ctx context.Context) (Transition, error) {
	if o.variation == nil && o.product.HasVariations {
		variations, err := o.catalog.ListVariations(ctx, o.product.ID)
		if err != nil {
			o.resetLocked()
			return o.transitionLocked(), err
		}
		if len(variations) > 0 {
			o.variations = variations
			o.state = StateVariation
			return o.transitionLocked(), nil
		}
	}

	if o.product.HasSellingUnits {
		variationID := ""
		if o.variation != nil {
			variationID = o.variation.ID
		}
		units, err := o.catalog.ListUnits(ctx, o.product.ID, variationID)
		if err != nil {
			o.resetLocked()
			return o.transitionLocked(), err
		}
		if len(units) > 0 {
			o.units = units
			o.state = StateUnit
			return o.transitionLocked(), nil
		}
	}

	o.completeLocked()
	return o.transitionLocked(), nil
}

func (o *Orchestrator) completeLocked() {
	o.state = StateComplete
	o.result = &models.SelectionResult{
		Product:   *o.product,
		Variation: o.variation,
		Unit:      o.unit,
		Quantity:  1,
	}
}

func (o *Orchestrator) resetLocked() {
	o.state = StateProduct
	o.product = nil
	o.variation = nil
	o.unit = nil
	o.variations = nil
	o.units = nil
	o.sawVariation = false
	o.result = nil
}

func (o *Orchestrator) transitionLocked() Transition {
	t := Transition{State: o.state}
	switch o.state {
	case StateProduct:
		t.Actions = []Action{ActionSelectProduct}
	case StateVariation:
		t.Actions = []Action{ActionSelectVariation, ActionBack, ActionCancel}
		t.Variations = o.variations
	case StateUnit:
		t.Actions = []Action{ActionSelectUnit, ActionBack, ActionCancel}
		t.Units = o.units
	case StateComplete:
		t.Actions = []Action{ActionTakeResult}
	}
	return t
}
