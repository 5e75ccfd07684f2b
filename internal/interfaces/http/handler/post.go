package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/forum"
)

// PostHandler handles forum post requests
type PostHandler struct {
	BaseHandler
	postService *forum.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *forum.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes registers post routes
func (h *PostHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts", h.List)
	public.GET("/posts/:id", h.Get)
	protected.POST("/posts", h.Create)
	protected.PUT("/posts/:id", h.Edit)
	protected.DELETE("/posts/:id", h.Delete)
}

// List returns a page of posts, newest first
func (h *PostHandler) List(c *gin.Context) {
	var req forum.ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.postService.ListPosts(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a post with its comment thread and reaction counts
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	resp, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create publishes a new post
func (h *PostHandler) Create(c *gin.Context) {
	var req forum.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.postService.CreatePost(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Edit updates a post's title and content
func (h *PostHandler) Edit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}
	var req forum.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.postService.EditPost(c.Request.Context(), id, currentUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a post and everything hanging off it
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
