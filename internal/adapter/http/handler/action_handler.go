package handler

import (
	"errors"

	"energy-marketplace/internal/adapter/http/dto"
	"energy-marketplace/internal/adapter/http/middleware"
	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"
	"energy-marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActionHandler starts ledger-mutating actions and reports their lifecycle.
// Accepted actions answer 202 with the pending state; the outcome is polled
// through State.
type ActionHandler struct {
	actions ports.ActionService
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(actions ports.ActionService) *ActionHandler {
	return &ActionHandler{actions: actions}
}

// State handles GET /api/v1/actions/state.
func (h *ActionHandler) State(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	response.OK(c, h.actions.State(sessionID))
}

// CreateProfile handles POST /api/v1/actions/profile.
func (h *ActionHandler) CreateProfile(c *gin.Context) {
	h.start(c, domain.Action{Kind: domain.ActionCreateProfile})
}

// CreateListing handles POST /api/v1/actions/listings.
func (h *ActionHandler) CreateListing(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	h.start(c, req.Action())
}

// Buy handles POST /api/v1/actions/buy.
func (h *ActionHandler) Buy(c *gin.Context) {
	var req dto.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.start(c, req.Action())
}

// Cancel handles POST /api/v1/actions/cancel.
func (h *ActionHandler) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.start(c, req.Action())
}

// UpdatePrice handles POST /api/v1/actions/price.
func (h *ActionHandler) UpdatePrice(c *gin.Context) {
	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.start(c, req.Action())
}

func (h *ActionHandler) start(c *gin.Context, action domain.Action) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	state, err := h.actions.Start(c.Request.Context(), sessionID, action)
	if err != nil {
		// A busy session is not a failure of the running action; show it.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrActionInFlight().Code {
			response.ErrorWithData(c, err, state)
			return
		}
		response.Error(c, err)
		return
	}
	response.Accepted(c, state)
}
