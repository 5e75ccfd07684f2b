package identity

import (
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserCreated  = "UserCreated"
	EventTypeUserBanned   = "UserBanned"
	EventTypeUserUnbanned = "UserUnbanned"
)

// UserCreatedEvent is published when a new user signs up or is created by an admin
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserBannedEvent is published when a moderation ban is applied
type UserBannedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Scope  BanScope  `json:"scope"`
	Reason string    `json:"reason"`
}

// NewUserBannedEvent creates a new UserBannedEvent
func NewUserBannedEvent(user *User, scope BanScope) *UserBannedEvent {
	return &UserBannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserBanned, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Scope:           scope,
		Reason:          user.BanReason,
	}
}

// UserUnbannedEvent is published when every ban on a user is lifted
type UserUnbannedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewUserUnbannedEvent creates a new UserUnbannedEvent
func NewUserUnbannedEvent(user *User) *UserUnbannedEvent {
	return &UserUnbannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserUnbanned, AggregateTypeUser, user.ID),
		UserID:          user.ID,
	}
}
