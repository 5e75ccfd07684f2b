package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/identity"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes on the public and protected groups
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/signup", h.SignUp)
	public.POST("/auth/signin", h.SignIn)
	public.POST("/auth/refresh", h.Refresh)
	protected.POST("/auth/signout", h.SignOut)
	protected.GET("/auth/session", h.GetSession)
}

// SignUp registers a new account and returns a token pair
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SignIn authenticates with email and password
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req identity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Refresh rotates a refresh token into a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SignOut ends the session. Tokens are stateless so this is advisory.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.authService.SignOut(c.Request.Context(), currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetSession returns the signed-in user's profile
func (h *AuthHandler) GetSession(c *gin.Context) {
	resp, err := h.authService.GetSession(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
