package forum

import (
	"context"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindAll finds all posts matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Post, error)

	// FindByAuthor finds all posts by an author
	FindByAuthor(ctx context.Context, authorID uuid.UUID, filter shared.Filter) ([]Post, error)

	// Save creates or updates a post
	Save(ctx context.Context, post *Post) error

	// Delete deletes a post row only; cascading removal of comments,
	// reactions, and notifications is the application service's job
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts posts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// FindByPost finds every comment referencing the post, oldest first,
	// replies not yet attached to their parents
	FindByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)

	// FindReplies finds the direct replies of a comment, oldest first
	FindReplies(ctx context.Context, parentID uuid.UUID) ([]Comment, error)

	// Save creates or updates a comment
	Save(ctx context.Context, comment *Comment) error

	// DeleteWithReplies deletes a comment and its replies in one transaction
	DeleteWithReplies(ctx context.Context, id uuid.UUID) error

	// DeleteByPost deletes every comment and reply referencing the post in
	// one transaction
	DeleteByPost(ctx context.Context, postID uuid.UUID) error

	// CountByPost counts all comments and replies on a post
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

// ReactionRepository defines the interface for reaction persistence
type ReactionRepository interface {
	// FindByPostAndUser finds the single reaction of a user on a post
	FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*Reaction, error)

	// FindByPost finds all reactions on a post
	FindByPost(ctx context.Context, postID uuid.UUID) ([]Reaction, error)

	// CountByKind returns per-kind reaction counts for a post, zero-count
	// kinds omitted
	CountByKind(ctx context.Context, postID uuid.UUID) (map[ReactionKind]int, error)

	// Save creates or updates a reaction
	Save(ctx context.Context, reaction *Reaction) error

	// Delete deletes a reaction by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPostAndUser deletes a user's reaction on a post; returns
	// shared.ErrNotFound when none exists
	DeleteByPostAndUser(ctx context.Context, postID, userID uuid.UUID) error

	// DeleteByPost deletes every reaction referencing the post
	DeleteByPost(ctx context.Context, postID uuid.UUID) error
}
