package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/marketplace"
	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/dto"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/middleware"
)

// BusinessHandler handles business directory requests
type BusinessHandler struct {
	BaseHandler
	businessService *marketplace.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *marketplace.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// RegisterRoutes registers business routes
func (h *BusinessHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/businesses", h.List)
	public.GET("/businesses/:id", h.Get)
	public.POST("/businesses/:id/views", h.RecordView)
	protected.POST("/businesses", h.Create)
	protected.GET("/businesses/mine", h.ListMine)
	protected.PUT("/businesses/:id", h.Update)
	protected.PUT("/businesses/:id/contact", h.SetContact)
	protected.DELETE("/businesses/:id", h.Delete)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.PUT("/businesses/:id/status", h.SetStatus)
	admin.PUT("/businesses/:id/rating", h.SetRating)
}

// List returns a page of businesses
func (h *BusinessHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.businessService.ListBusinesses(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a business with its products
func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	resp, err := h.businessService.GetBusiness(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMine returns the caller's businesses
func (h *BusinessHandler) ListMine(c *gin.Context) {
	resp, err := h.businessService.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create registers a new business
func (h *BusinessHandler) Create(c *gin.Context) {
	var req marketplace.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.businessService.CreateBusiness(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a business
func (h *BusinessHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	var req marketplace.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.businessService.UpdateBusiness(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetContact updates a business's contact channels
func (h *BusinessHandler) SetContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	var req marketplace.SetContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.businessService.SetContact(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type setStatusRequest struct {
	Status directory.BusinessStatus `json:"status" binding:"required"`
}

// SetStatus changes a business's lifecycle status
func (h *BusinessHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.businessService.SetStatus(c.Request.Context(), currentUserID(c), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type setRatingRequest struct {
	Rating float64 `json:"rating" binding:"min=0,max=5"`
}

// SetRating sets a business's displayed rating
func (h *BusinessHandler) SetRating(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	var req setRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.businessService.SetRating(c.Request.Context(), currentUserID(c), id, req.Rating)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordView bumps a business's view counter
func (h *BusinessHandler) RecordView(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	if err := h.businessService.RecordView(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a business and its products
func (h *BusinessHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	if err := h.businessService.DeleteBusiness(c.Request.Context(), currentUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
