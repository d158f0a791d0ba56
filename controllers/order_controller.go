package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/repository"
)

type OrderController struct {
	Orders repository.OrderSource
	Logger *zap.Logger
}

func NewOrderController(orders repository.OrderSource, logger *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Logger: logger}
}

// ListOpen returns the open-order summaries the terminal's order finder
// filters and sorts locally.
func (oc *OrderController) ListOpen(c *gin.Context) {
	orders, err := oc.Orders.ListOpen(c.Request.Context())
	if err != nil {
		oc.Logger.Error("failed to list open orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list open orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
