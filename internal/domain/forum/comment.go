package forum

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment represents a comment on a post, or a reply to a top-level comment.
// Exactly one nesting level is supported: a reply's ParentID always references
// a top-level comment, never another reply.
type Comment struct {
	shared.BaseAggregateRoot
	PostID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	AuthorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Content  string     `gorm:"type:text;not null"`
	IsEdited bool       `gorm:"not null;default:false"`
	Replies  []Comment  `gorm:"-"`
}

// TableName returns the table name for GORM
func (Comment) TableName() string {
	return "forum_comments"
}

// NewComment creates a new top-level comment
func NewComment(postID, authorID uuid.UUID, content string) (*Comment, error) {
	return newComment(postID, authorID, nil, content)
}

// NewReply creates a reply attached to a top-level comment
func NewReply(postID, authorID, parentID uuid.UUID, content string) (*Comment, error) {
	return newComment(postID, authorID, &parentID, content)
}

func newComment(postID, authorID uuid.UUID, parentID *uuid.UUID, content string) (*Comment, error) {
	if authorID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	comment := &Comment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PostID:            postID,
		ParentID:          parentID,
		AuthorID:          authorID,
		Content:           strings.TrimSpace(content),
	}

	comment.AddDomainEvent(NewCommentAddedEvent(comment))

	return comment, nil
}

// Edit replaces the comment text. The edited flag latches true permanently.
func (c *Comment) Edit(content string) error {
	if err := validateCommentContent(content); err != nil {
		return err
	}

	c.Content = strings.TrimSpace(content)
	c.IsEdited = true
	c.Touch()
	c.IncrementVersion()

	return nil
}

// IsReply reports whether the comment is attached to a parent comment
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// IsOwnedBy reports whether the given user authored the comment
func (c *Comment) IsOwnedBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Comment text cannot be empty")
	}
	return nil
}
