package forum

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Post represents a forum submission
// It is the aggregate root for forum content operations
type Post struct {
	shared.BaseAggregateRoot
	AuthorID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title         string         `gorm:"type:varchar(300);not null"`
	Content       []ContentBlock `gorm:"serializer:json;type:jsonb;not null"`
	LikesCount    int            `gorm:"not null;default:0"`
	CommentsCount int            `gorm:"not null;default:0"`
	IsEdited      bool           `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Post) TableName() string {
	return "forum_posts"
}

// NewPost creates a new forum post
func NewPost(authorID uuid.UUID, title string, content []ContentBlock) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	post := &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AuthorID:          authorID,
		Title:             strings.TrimSpace(title),
		Content:           content,
	}

	post.AddDomainEvent(NewPostCreatedEvent(post))

	return post, nil
}

// Edit replaces the post's title and content. The edited flag latches: once a
// post has been edited it stays marked edited.
func (p *Post) Edit(title string, content []ContentBlock) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := ValidateContent(content); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Content = content
	p.IsEdited = true
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetCounters refreshes the denormalized like/comment counters
func (p *Post) SetCounters(likes, comments int) {
	if likes < 0 {
		likes = 0
	}
	if comments < 0 {
		comments = 0
	}
	p.LikesCount = likes
	p.CommentsCount = comments
	p.Touch()
}

// IsOwnedBy reports whether the given user authored the post
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.AuthorID == userID
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Post title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewDomainError("VALIDATION_ERROR", "Post title cannot exceed 300 characters")
	}
	return nil
}
