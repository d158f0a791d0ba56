package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princekenny23/primepos-sub004/middleware"
)

type ShiftController struct{}

func NewShiftController() *ShiftController {
	return &ShiftController{}
}

type openShiftRequest struct {
	Register string `json:"register" binding:"required"`
	Cashier  string `json:"cashier" binding:"required"`
}

// Open starts a register session; the shift guard blocks sale-affecting
// operations until one exists.
func (sc *ShiftController) Open(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req openShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	shift := s.OpenShift(req.Register, req.Cashier)
	c.JSON(http.StatusOK, shift)
}

func (sc *ShiftController) Close(c *gin.Context) {
	s := middleware.TerminalSession(c)
	s.CloseShift()
	c.JSON(http.StatusOK, gin.H{"message": "shift closed"})
}

type orderTypeRequest struct {
	OrderType string `json:"order_type" binding:"required,oneof=dine_in takeaway"`
}

// SetOrderType records whether the next order is dine-in or takeaway; the
// table guard keys off it.
func (sc *ShiftController) SetOrderType(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req orderTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.SetOrderType(req.OrderType)
	c.JSON(http.StatusOK, gin.H{"order_type": req.OrderType})
}
