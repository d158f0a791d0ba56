package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/middleware"
	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/orderfind"
	"github.com/princekenny23/primepos-sub004/repository"
)

// FinderController drives the per-terminal open-order picker. The finder
// itself is pure state; this controller refreshes its backing list and
// forwards search, sort and keyboard input.
type FinderController struct {
	Orders repository.OrderSource
	Logger *zap.Logger
}

func NewFinderController(orders repository.OrderSource, logger *zap.Logger) *FinderController {
	return &FinderController{Orders: orders, Logger: logger}
}

type finderView struct {
	Open        bool                  `json:"open"`
	Highlighted int                   `json:"highlighted_index"`
	Orders      []models.OrderSummary `json:"orders"`
	Picked      *models.OrderSummary  `json:"picked,omitempty"`
}

func (fc *FinderController) view(c *gin.Context, picked *models.OrderSummary) {
	s := middleware.TerminalSession(c)
	c.JSON(http.StatusOK, finderView{
		Open:        s.Finder.IsOpen(),
		Highlighted: s.Finder.HighlightedIndex(),
		Orders:      s.Finder.Filtered(),
		Picked:      picked,
	})
}

// Open refreshes the open-order list and opens the picker.
func (fc *FinderController) Open(c *gin.Context) {
	s := middleware.TerminalSession(c)

	orders, err := fc.Orders.ListOpen(c.Request.Context())
	if err != nil {
		fc.Logger.Error("failed to refresh open orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list open orders"})
		return
	}
	s.Finder.SetOrders(orders)
	s.Finder.Open()
	fc.view(c, nil)
}

func (fc *FinderController) Get(c *gin.Context) {
	fc.view(c, nil)
}

type finderQueryRequest struct {
	SearchTerm *string `json:"search_term,omitempty"`
	SortKey    *string `json:"sort_key,omitempty" binding:"omitempty,oneof=recent amount table"`
}

// Query updates the search term and/or sort key; either change resets the
// highlight to the top.
func (fc *FinderController) Query(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req finderQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.SearchTerm != nil {
		s.Finder.SetSearchTerm(*req.SearchTerm)
	}
	if req.SortKey != nil {
		s.Finder.SetSortKey(orderfind.SortKey(*req.SortKey))
	}
	fc.view(c, nil)
}

type finderKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// Key forwards one navigation key. An Enter that lands on an order reports
// it back as picked.
func (fc *FinderController) Key(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req finderKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.Finder.HandleKey(req.Key)
	fc.view(c, s.TakePickedOrder())
}
