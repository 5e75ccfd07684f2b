package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/identity"
	domainidentity "github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/middleware"
)

// UserHandler handles profile and admin user management requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/users/:id", h.Get)
	protected.PUT("/users/me", h.UpdateProfile)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.GET("/users", h.List)
	admin.PUT("/users/:id/permission", h.SetAdminPermission)
	admin.DELETE("/users/:id", h.Delete)
}

// Get returns a user's public profile
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile edits the signed-in user's profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req identity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of users for administrators
func (h *UserHandler) List(c *gin.Context) {
	var req identity.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.userService.List(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

type setPermissionRequest struct {
	Permission domainidentity.AdminPermission `json:"permission" binding:"required"`
}

// SetAdminPermission changes a user's admin permission tier
func (h *UserHandler) SetAdminPermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	var req setPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.userService.SetAdminPermission(c.Request.Context(), currentUserID(c), id, req.Permission)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
