package notification

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Type tags the event that produced a notification
type Type string

const (
	TypeNewComment  Type = "new_comment"
	TypeNewReply    Type = "new_reply"
	TypeNewReaction Type = "new_reaction"
	TypeMention     Type = "mention"
)

// Valid reports whether the type is one of the known notification types
func (t Type) Valid() bool {
	switch t {
	case TypeNewComment, TypeNewReply, TypeNewReaction, TypeMention:
		return true
	}
	return false
}

// Notification is a single inbox record addressed to one user
type Notification struct {
	shared.BaseEntity
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	PostID    *uuid.UUID `gorm:"type:uuid"`
	CommentID *uuid.UUID `gorm:"type:uuid"`
	Type      Type       `gorm:"type:varchar(20);not null"`
	Title     string     `gorm:"type:varchar(300);not null"`
	Message   string     `gorm:"type:text"`
	IsRead    bool       `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates a notification addressed to userID
func New(userID uuid.UUID, typ Type, title, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification recipient is required")
	}
	if !typ.Valid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Type:       typ,
		Title:      strings.TrimSpace(title),
		Message:    message,
	}, nil
}

// WithActor records who triggered the notification
func (n *Notification) WithActor(actorID uuid.UUID) *Notification {
	if actorID != uuid.Nil {
		n.ActorID = &actorID
	}
	return n
}

// WithPost links the notification to a post
func (n *Notification) WithPost(postID uuid.UUID) *Notification {
	if postID != uuid.Nil {
		n.PostID = &postID
	}
	return n
}

// WithComment links the notification to a comment
func (n *Notification) WithComment(commentID uuid.UUID) *Notification {
	if commentID != uuid.Nil {
		n.CommentID = &commentID
	}
	return n
}

// MarkRead marks the notification read. Idempotent.
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.Touch()
}
