package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/forum"
)

// CommentHandler handles comment thread requests
type CommentHandler struct {
	BaseHandler
	commentService *forum.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *forum.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes
func (h *CommentHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts/:id/comments", h.Thread)
	protected.POST("/posts/:id/comments", h.Add)
	protected.PUT("/comments/:id", h.Edit)
	protected.DELETE("/comments/:id", h.Delete)
}

// Thread returns the nested comment thread of a post
func (h *CommentHandler) Thread(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	thread, err := h.commentService.GetThread(c.Request.Context(), postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, thread)
}

// Add creates a comment, or a reply when parent_id is set
func (h *CommentHandler) Add(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}
	var req forum.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.commentService.AddComment(c.Request.Context(), postID, currentUserID(c), req.Content, req.ParentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Edit updates a comment's content
func (h *CommentHandler) Edit(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid comment ID")
		return
	}
	var req forum.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.commentService.EditComment(c.Request.Context(), commentID, currentUserID(c), req.Content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a comment and its replies
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
