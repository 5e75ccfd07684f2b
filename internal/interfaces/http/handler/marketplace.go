package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/marketplace"
)

// MarketplaceHandler handles storefront search requests
type MarketplaceHandler struct {
	BaseHandler
	searchService *marketplace.SearchService
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(searchService *marketplace.SearchService) *MarketplaceHandler {
	return &MarketplaceHandler{searchService: searchService}
}

// RegisterRoutes registers marketplace routes
func (h *MarketplaceHandler) RegisterRoutes(public, _ *gin.RouterGroup) {
	public.GET("/marketplace/search", h.Search)
}

// Search filters products or businesses depending on which criteria are set
func (h *MarketplaceHandler) Search(c *gin.Context) {
	var req marketplace.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), req.Query, req.Category, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
