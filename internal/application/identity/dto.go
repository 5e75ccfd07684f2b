package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
)

// SignUpRequest is the payload for account creation
type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignInRequest is the payload for authentication
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is the payload for profile edits
type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"required,max=120"`
	Avatar string `json:"avatar"`
}

// BanRequest is the payload for banning a user
type BanRequest struct {
	Scope  identity.BanScope `json:"scope" binding:"required"`
	Reason string            `json:"reason" binding:"required"`
}

// ListUsersRequest carries pagination and filters for admin user listing
type ListUsersRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Role     string `form:"role"`
}

// UserResponse is a user as returned to clients. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID              uuid.UUID                `json:"id"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Role            identity.UserRole        `json:"role"`
	AdminPermission identity.AdminPermission `json:"admin_permission,omitempty"`
	Avatar          string                   `json:"avatar,omitempty"`
	BanFromForum    bool                     `json:"ban_from_forum"`
	BanFromMarket   bool                     `json:"ban_from_market"`
	BanReason       string                   `json:"ban_reason,omitempty"`
	BannedAt        *time.Time               `json:"banned_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

// AuthResponse bundles a token pair with the authenticated user
type AuthResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to a response
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		AdminPermission: user.AdminPermission,
		Avatar:          user.Avatar,
		BanFromForum:    user.BanFromForum,
		BanFromMarket:   user.BanFromMarket,
		BanReason:       user.BanReason,
		BannedAt:        user.BannedAt,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
