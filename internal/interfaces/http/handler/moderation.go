package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/identity"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/middleware"
)

// ModerationHandler handles user ban administration
type ModerationHandler struct {
	BaseHandler
	moderationService *identity.ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService *identity.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterRoutes registers moderation routes
func (h *ModerationHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.POST("/users/:id/ban", h.Ban)
	admin.DELETE("/users/:id/ban", h.Unban)
	admin.GET("/users/banned", h.ListBanned)
}

// Ban applies a scoped ban to a user
func (h *ModerationHandler) Ban(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	var req identity.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.moderationService.Ban(c.Request.Context(), currentUserID(c), id, req.Scope, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Unban lifts all bans from a user
func (h *ModerationHandler) Unban(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.moderationService.Unban(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListBanned returns every user with an active ban
func (h *ModerationHandler) ListBanned(c *gin.Context) {
	resp, err := h.moderationService.ListBanned(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
