// Package session keeps the live order-entry state for each terminal: cart
// engine, selection flow, scan decoder, shift and hold coordination.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/cart"
	"github.com/princekenny23/primepos-sub004/hold"
	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/orderfind"
	"github.com/princekenny23/primepos-sub004/repository"
	"github.com/princekenny23/primepos-sub004/scanner"
	"github.com/princekenny23/primepos-sub004/selection"
)

// Shift is an open register session; sale-affecting operations require one.
type Shift struct {
	Register string    `json:"register"`
	Cashier  string    `json:"cashier"`
	OpenedAt time.Time `json:"opened_at"`
}

// Session is one terminal's live order-entry state.
type Session struct {
	ID        string
	Cart      *cart.Engine
	Selection *selection.Orchestrator
	Decoder   *scanner.Decoder
	Holds     *hold.Store
	Finder    *orderfind.Finder

	mu          sync.Mutex
	shift       *Shift
	orderType   string
	pickedOrder *models.OrderSummary

	catalog repository.CatalogReader
	log     *zap.Logger
}

// handleScan reacts to a completed barcode scan: resolve the code against
// the catalog and start a selection flow. Items without variations or units
// complete immediately and land in the cart without operator input.
func (s *Session) handleScan(ev models.ScanEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	product, err := s.catalog.FindByBarcode(ctx, ev.Code)
	if err != nil {
		s.log.Warn("scanned barcode not in catalog",
			zap.String("terminal", s.ID), zap.String("code", ev.Code), zap.Error(err))
		return
	}

	tr, err := s.Selection.Start(ctx, product.ID)
	if err != nil {
		s.log.Warn("selection start failed",
			zap.String("terminal", s.ID), zap.String("product", product.ID), zap.Error(err))
		return
	}
	if tr.State != selection.StateComplete {
		// The terminal renders the pending step; nothing to add yet.
		return
	}

	result, err := s.Selection.Result()
	if err != nil {
		return
	}
	line := s.Cart.AddLine(*result)
	s.log.Info("scan added to cart",
		zap.String("terminal", s.ID), zap.String("line", line.ID), zap.String("product", product.ID))
}

// OpenShift starts a register session on this terminal.
func (s *Session) OpenShift(register, cashier string) Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = &Shift{Register: register, Cashier: cashier, OpenedAt: time.Now().UTC()}
	return *s.shift
}

func (s *Session) CloseShift() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shift = nil
}

func (s *Session) ShiftOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shift != nil
}

func (s *Session) SetOrderType(orderType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderType = orderType
}

func (s *Session) OrderType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderType
}

func (s *Session) pickOrder(o models.OrderSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickedOrder = &o
}

// TakePickedOrder hands out the finder's last Enter selection exactly once.
func (s *Session) TakePickedOrder() *models.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.pickedOrder
	s.pickedOrder = nil
	return o
}

// Deps carries everything a new session needs.
type Deps struct {
	Catalog     repository.CatalogReader
	HoldKV      hold.KV
	TaxRate     decimal.Decimal
	ScanDefault scanner.Settings
	Logger      *zap.Logger
}

// Registry hands out terminal sessions, creating them on first use.
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[string]*Session
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, sessions: make(map[string]*Session)}
}

// Get returns the session for a terminal, creating and wiring it on demand.
func (r *Registry) Get(terminalID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[terminalID]; ok {
		return s, nil
	}

	decoder, err := scanner.NewDecoder(r.deps.ScanDefault, r.deps.Logger)
	if err != nil {
		return nil, err
	}

	engine := cart.NewEngine(r.deps.TaxRate)
	s := &Session{
		ID:        terminalID,
		Cart:      engine,
		Selection: selection.NewOrchestrator(r.deps.Catalog),
		Decoder:   decoder,
		Holds:     hold.NewStore(r.deps.HoldKV, engine, r.deps.Logger),
		catalog:   r.deps.Catalog,
		log:       r.deps.Logger,
	}
	s.Finder = orderfind.NewFinder(s.pickOrder)
	decoder.Subscribe(s.handleScan)

	r.sessions[terminalID] = s
	return s, nil
}
