package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/middleware"
	"github.com/princekenny23/primepos-sub004/models"
	"github.com/princekenny23/primepos-sub004/selection"
	"github.com/princekenny23/primepos-sub004/session"
)

type SelectionController struct{}

func NewSelectionController() *SelectionController {
	return &SelectionController{}
}

type selectionResponse struct {
	selection.Transition
	Line *models.CartLine `json:"line,omitempty"`
}

// respond renders the transition; when the flow just completed, the
// packaged result is consumed exactly once and added to the cart.
func respond(c *gin.Context, s *session.Session, tr selection.Transition, err error) {
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	resp := selectionResponse{Transition: tr}
	if tr.State == selection.StateComplete {
		result, err := s.Selection.Result()
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		line := s.Cart.AddLine(*result)
		resp.Line = &line
	}
	c.JSON(http.StatusOK, resp)
}

type startSelectionRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Start begins a selection flow for a product picked from the catalog grid.
func (sc *SelectionController) Start(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req startSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tr, err := s.Selection.Start(c.Request.Context(), req.ProductID)
	respond(c, s, tr, err)
}

type chooseVariationRequest struct {
	VariationID string `json:"variation_id" binding:"required"`
}

func (sc *SelectionController) ChooseVariation(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req chooseVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tr, err := s.Selection.ChooseVariation(c.Request.Context(), req.VariationID)
	respond(c, s, tr, err)
}

type chooseUnitRequest struct {
	UnitID string `json:"unit_id" binding:"required"`
}

func (sc *SelectionController) ChooseUnit(c *gin.Context) {
	s := middleware.TerminalSession(c)

	var req chooseUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tr, err := s.Selection.ChooseUnit(c.Request.Context(), req.UnitID)
	respond(c, s, tr, err)
}

func (sc *SelectionController) Back(c *gin.Context) {
	s := middleware.TerminalSession(c)
	tr, err := s.Selection.Back(c.Request.Context())
	respond(c, s, tr, err)
}

// Cancel discards the flow in progress; safe to call repeatedly.
func (sc *SelectionController) Cancel(c *gin.Context) {
	s := middleware.TerminalSession(c)
	c.JSON(http.StatusOK, s.Selection.Cancel())
}
