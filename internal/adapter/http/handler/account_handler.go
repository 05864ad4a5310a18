package handler

import (
	"energy-marketplace/internal/adapter/http/dto"
	"energy-marketplace/internal/adapter/http/middleware"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"
	"energy-marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the connected account's own views.
type AccountHandler struct {
	market  ports.MarketService
	actions ports.ActionService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(market ports.MarketService, actions ports.ActionService) *AccountHandler {
	return &AccountHandler{market: market, actions: actions}
}

// Listings handles GET /api/v1/me/listings.
func (h *AccountHandler) Listings(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	listings, err := h.market.OwnListings(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewListingResponses(listings))
}

// Transactions handles GET /api/v1/me/transactions.
func (h *AccountHandler) Transactions(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	views, err := h.market.Transactions(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponses(views))
}

// Purchases handles GET /api/v1/me/purchases.
func (h *AccountHandler) Purchases(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	events, err := h.market.Purchases(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, events)
}

// Profile handles GET /api/v1/me/profile. A missing profile is reported as
// profile=null rather than 404.
func (h *AccountHandler) Profile(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	profile, err := h.market.Profile(c.Request.Context(), account)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProfileResponse{Account: account, Profile: profile})
}

// EnsureProfile handles POST /api/v1/me/profile. It answers 202 when this call
// started a create_profile action.
func (h *AccountHandler) EnsureProfile(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.actions.EnsureProfile(c.Request.Context(), sessionID, "")
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.ProfileResponse{Profile: result.Profile, Attempted: result.Attempted, State: result.State}
	if result.Attempted {
		response.Accepted(c, resp)
		return
	}
	response.OK(c, resp)
}

// Actions handles GET /api/v1/me/actions.
func (h *AccountHandler) Actions(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entries, err := h.actions.History(c.Request.Context(), sessionID, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// account writes the error response itself when no account is connected.
func (h *AccountHandler) account(c *gin.Context) (string, bool) {
	if _, ok := middleware.SessionID(c); !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return "", false
	}
	account, err := h.actions.Account(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return "", false
	}
	return account, true
}
