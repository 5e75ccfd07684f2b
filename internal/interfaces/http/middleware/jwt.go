package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/infrastructure/auth"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey     = "jwt_claims"
	JWTUserIDKey     = "jwt_user_id"
	JWTRoleKey       = "jwt_role"
	JWTPermissionKey = "jwt_admin_permission"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// JWTAuth validates the bearer token and stores the claims on the context.
// Requests without a valid access token are rejected.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, jwtService)
		if err != nil {
			code := "TOKEN_INVALID"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = "TOKEN_EXPIRED"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(code, "A valid access token is required"))
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth stores claims when a valid token is present but lets
// anonymous requests through. Used on read-only routes where signed-in
// users get personalized data.
func OptionalJWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c, jwtService)
		if err == nil {
			storeClaims(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Administrator access required"))
			return
		}
		c.Next()
	}
}

func claimsFromRequest(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	return jwtService.ValidateAccessToken(token)
}

func storeClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRoleKey, claims.Role)
	c.Set(JWTPermissionKey, claims.AdminPermission)
}

// GetJWTClaims returns the validated claims, or nil when unauthenticated
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user's ID string, or ""
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTRole returns the authenticated user's role, or ""
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}

// GetJWTUserUUID parses the authenticated user's ID, returning uuid.Nil
// for anonymous requests
func GetJWTUserUUID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(GetJWTUserID(c))
	if err != nil {
		return uuid.Nil
	}
	return id
}
