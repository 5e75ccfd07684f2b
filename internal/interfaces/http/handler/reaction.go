package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/forum"
)

// ReactionHandler handles post reaction requests
type ReactionHandler struct {
	BaseHandler
	reactionService *forum.ReactionService
}

// NewReactionHandler creates a new reaction handler
func NewReactionHandler(reactionService *forum.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterRoutes registers reaction routes
func (h *ReactionHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts/:id/reactions", h.Counts)
	protected.PUT("/posts/:id/reactions", h.Set)
	protected.DELETE("/posts/:id/reactions", h.Remove)
}

// Counts returns per-kind reaction counts for a post
func (h *ReactionHandler) Counts(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	counts, err := h.reactionService.CountsByKind(c.Request.Context(), postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// Set applies the caller's reaction. Repeating the same kind removes it,
// a different kind replaces it.
func (h *ReactionHandler) Set(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}
	var req forum.SetReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	counts, err := h.reactionService.SetReaction(c.Request.Context(), postID, currentUserID(c), req.Kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// Remove clears the caller's reaction, succeeding even when none exists
func (h *ReactionHandler) Remove(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.reactionService.RemoveReaction(c.Request.Context(), postID, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
