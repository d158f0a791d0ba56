package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/cart"
	"github.com/princekenny23/primepos-sub004/config"
	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/guards"
	"github.com/princekenny23/primepos-sub004/kafka"
	"github.com/princekenny23/primepos-sub004/middleware"
	"github.com/princekenny23/primepos-sub004/models"
)

type CartController struct {
	Producer kafka.Publisher
	Config   config.Config
	Logger   *zap.Logger
}

func NewCartController(producer kafka.Publisher, cfg config.Config, logger *zap.Logger) *CartController {
	return &CartController{Producer: producer, Config: cfg, Logger: logger}
}

// GetCart returns the live cart with fresh totals.
func (cc *CartController) GetCart(c *gin.Context) {
	s := middleware.TerminalSession(c)
	c.JSON(http.StatusOK, s.Cart.View())
}

// AddLine appends a completed selection to the cart directly, the path the
// terminal uses when it resolved the configuration itself. Matching
// configurations merge into one line.
func (cc *CartController) AddLine(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req models.SelectionResult
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Product.ID == "" || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product and a positive quantity are required"})
		return
	}
	c.JSON(http.StatusOK, s.Cart.AddLine(req))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateQuantity sets a line's quantity (clamped to at least 1).
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	line, err := s.Cart.UpdateQuantity(c.Param("line_id"), req.Quantity)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

type applyDiscountRequest struct {
	Type  string          `json:"type" binding:"required,oneof=percentage amount"`
	Value decimal.Decimal `json:"value"`
}

// ApplyDiscount applies a percentage or fixed-amount discount to a line.
func (cc *CartController) ApplyDiscount(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req applyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	line, err := s.Cart.ApplyDiscount(c.Param("line_id"), cart.DiscountType(req.Type), req.Value)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// RemoveLine deletes a single line from the cart.
func (cc *CartController) RemoveLine(c *gin.Context) {
	s := middleware.TerminalSession(c)

	if err := s.Cart.RemoveLine(c.Param("line_id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Cart.View())
}

// ClearCart empties the cart and drops the table association.
func (cc *CartController) ClearCart(c *gin.Context) {
	s := middleware.TerminalSession(c)
	s.Cart.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

type setTableRequest struct {
	TableNumber string `json:"table_number" binding:"required"`
}

// SetTable associates the cart with a table for dine-in orders.
func (cc *CartController) SetTable(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req setTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.Cart.SetTable(req.TableNumber)
	c.JSON(http.StatusOK, gin.H{"table_number": req.TableNumber})
}

// Hold snapshots the live cart and clears it, freeing the terminal.
func (cc *CartController) Hold(c *gin.Context) {
	s := middleware.TerminalSession(c)

	if err := guards.ShiftOpen(s.ShiftOpen()); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	id, err := s.Holds.Hold(c.Request.Context())
	if err != nil {
		cc.Logger.Error("hold failed", zap.String("terminal", s.ID), zap.Error(err))
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hold_id": id})
}

// Recall restores a held order into the (empty) live cart. One-shot: the
// snapshot is gone afterwards.
func (cc *CartController) Recall(c *gin.Context) {
	s := middleware.TerminalSession(c)

	if err := s.Holds.Recall(c.Request.Context(), c.Param("hold_id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Cart.View())
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Checkout runs the guard layer, hands the finalized cart to payment over
// kafka and clears the terminal.
func (cc *CartController) Checkout(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	lines := s.Cart.Lines()
	for _, guard := range []error{
		guards.ShiftOpen(s.ShiftOpen()),
		guards.CartNotEmpty(len(lines)),
		guards.TableSelected(s.OrderType(), s.Cart.Table()),
		guards.PaymentMethodAllowed(req.PaymentMethod, cc.Config.PaymentMethods),
	} {
		if guard != nil {
			apperrors.HandleError(c, guard)
			return
		}
	}

	event := models.CheckoutEvent{
		Event:         "checkout.requested",
		TerminalID:    s.ID,
		ReceiptNumber: fmt.Sprintf("R-%d", time.Now().UnixMilli()),
		PaymentMethod: req.PaymentMethod,
		TableNumber:   s.Cart.Table(),
		Lines:         lines,
		Totals:        s.Cart.Totals(),
		Timestamp:     time.Now().UTC(),
	}

	if err := cc.Producer.SendCheckoutEvent(c.Request.Context(), event); err != nil {
		cc.Logger.Error("checkout publish failed", zap.String("terminal", s.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish checkout event"})
		return
	}

	s.Cart.Clear()
	c.JSON(http.StatusOK, gin.H{
		"message":        "checkout initiated",
		"receipt_number": event.ReceiptNumber,
	})
}
