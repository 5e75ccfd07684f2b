package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/media"
)

// MediaHandler handles upload URL requests for post and product images
type MediaHandler struct {
	BaseHandler
	mediaService *media.Service
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// RegisterRoutes registers media routes
func (h *MediaHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.POST("/media/uploads", h.InitiateUpload)
	protected.POST("/media/uploads/confirm", h.ConfirmUpload)
	protected.DELETE("/media/objects", h.Delete)
}

// InitiateUpload issues a presigned upload URL
func (h *MediaHandler) InitiateUpload(c *gin.Context) {
	var req media.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.mediaService.InitiateUpload(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

type confirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// ConfirmUpload verifies the object exists and returns its public URL
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	url, err := h.mediaService.ConfirmUpload(c.Request.Context(), req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

type deleteObjectRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// Delete removes an uploaded object
func (h *MediaHandler) Delete(c *gin.Context) {
	var req deleteObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), req.StorageKey); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
