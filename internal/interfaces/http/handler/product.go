package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fuadmd/WHH-SBG/internal/application/marketplace"
)

// ProductHandler handles product requests under a business
type ProductHandler struct {
	BaseHandler
	productService *marketplace.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *marketplace.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/businesses/:id/products", h.ListByBusiness)
	public.GET("/products/:id", h.Get)
	protected.POST("/businesses/:id/products", h.Create)
	protected.PUT("/products/:id", h.Update)
	protected.PUT("/products/:id/price", h.SetPrice)
	protected.PUT("/products/:id/stock", h.SetStock)
	protected.PUT("/products/:id/images", h.SetImages)
	protected.POST("/products/:id/publish", h.Publish)
	protected.POST("/products/:id/unpublish", h.Unpublish)
	protected.POST("/products/:id/sales", h.RecordSale)
	protected.DELETE("/products/:id", h.Delete)
}

// ListByBusiness returns all products of a business
func (h *ProductHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	resp, err := h.productService.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create adds a product to a business
func (h *ProductHandler) Create(c *gin.Context) {
	businessID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	var req marketplace.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.CreateProduct(c.Request.Context(), currentUserID(c), businessID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update edits a product's descriptive fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req marketplace.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.UpdateProduct(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type setPriceRequest struct {
	Price    decimal.Decimal `json:"price" binding:"required"`
	Currency string          `json:"currency" binding:"max=10"`
}

// SetPrice changes a product's price
func (h *ProductHandler) SetPrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req setPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.SetPrice(c.Request.Context(), currentUserID(c), id, req.Price, req.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetStock changes a product's availability
func (h *ProductHandler) SetStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req marketplace.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.SetStock(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type setImagesRequest struct {
	Images []string `json:"images" binding:"required"`
}

// SetImages replaces a product's image URLs
func (h *ProductHandler) SetImages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req setImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.productService.SetImages(c.Request.Context(), currentUserID(c), id, req.Images)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Publish makes a product visible in marketplace search
func (h *ProductHandler) Publish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.productService.Publish(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unpublish hides a product from marketplace search
func (h *ProductHandler) Unpublish(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.productService.Unpublish(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordSale bumps the sales counters
func (h *ProductHandler) RecordSale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.productService.RecordSale(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), currentUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
