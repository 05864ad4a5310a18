package handler

import (
	"energy-marketplace/internal/adapter/http/dto"
	"energy-marketplace/internal/adapter/http/middleware"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"
	"energy-marketplace/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ListingHandler serves the marketplace browser.
type ListingHandler struct {
	market  ports.MarketService
	actions ports.ActionService
	log     zerolog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(market ports.MarketService, actions ports.ActionService, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{market: market, actions: actions, log: log}
}

// Browse handles GET /api/v1/listings. The response is partial (loading=true)
// while slow discovery sources are still running.
func (h *ListingHandler) Browse(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.BrowseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.market.Browse(c.Request.Context(), sessionID, h.viewer(c, sessionID), q.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Partial(c, dto.NewRankedResponses(result.Listings), result.Loading)
}

// Nearest handles GET /api/v1/listings/nearest.
func (h *ListingHandler) Nearest(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.NearestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	origin := dto.ParseOrigin(q.Origin)
	if origin == nil {
		response.Error(c, apperror.Validation("origin must contain coordinates, e.g. \"52.52, 13.40\""))
		return
	}

	ranked, err := h.market.Nearest(c.Request.Context(), sessionID, h.viewer(c, sessionID), origin, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewRankedResponses(ranked))
}

// Get handles GET /api/v1/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !dto.IsObjectID(id) {
		response.Error(c, apperror.Validation("listing id must be a 0x-prefixed hex object id"))
		return
	}

	l, err := h.market.Listing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if l == nil {
		response.Error(c, apperror.ErrNotFound("Listing"))
		return
	}
	response.OK(c, dto.NewListingResponse(*l))
}

// viewer returns the connected account, or "" when browsing without a wallet.
func (h *ListingHandler) viewer(c *gin.Context, sessionID uuid.UUID) string {
	account, err := h.actions.Account(c.Request.Context())
	if err != nil {
		h.log.Debug().Err(err).Str("session_id", sessionID.String()).Msg("browsing without connected account")
		return ""
	}
	return account
}
