package forum

import (
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypePost     = "Post"
	AggregateTypeComment  = "Comment"
	AggregateTypeReaction = "Reaction"
)

// Event type constants
const (
	EventTypePostCreated    = "PostCreated"
	EventTypePostDeleted    = "PostDeleted"
	EventTypeCommentAdded   = "CommentAdded"
	EventTypeCommentDeleted = "CommentDeleted"
	EventTypeReactionSet    = "ReactionSet"
)

// ReactionAction describes what SetReaction did to the (post, user) pair
type ReactionAction string

const (
	ReactionActionCreated  ReactionAction = "created"
	ReactionActionReplaced ReactionAction = "replaced"
	ReactionActionRemoved  ReactionAction = "removed"
)

// PostCreatedEvent is published when a new post is created
type PostCreatedEvent struct {
	shared.BaseDomainEvent
	PostID   uuid.UUID `json:"post_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Title    string    `json:"title"`
}

// NewPostCreatedEvent creates a new PostCreatedEvent
func NewPostCreatedEvent(post *Post) *PostCreatedEvent {
	return &PostCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostCreated, AggregateTypePost, post.ID),
		PostID:          post.ID,
		AuthorID:        post.AuthorID,
		Title:           post.Title,
	}
}

// PostDeletedEvent is published after a post and its dependents are removed
type PostDeletedEvent struct {
	shared.BaseDomainEvent
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	DeletedBy uuid.UUID `json:"deleted_by"`
}

// NewPostDeletedEvent creates a new PostDeletedEvent
func NewPostDeletedEvent(post *Post, deletedBy uuid.UUID) *PostDeletedEvent {
	return &PostDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePostDeleted, AggregateTypePost, post.ID),
		PostID:          post.ID,
		AuthorID:        post.AuthorID,
		DeletedBy:       deletedBy,
	}
}

// CommentAddedEvent is published when a comment or reply is created
type CommentAddedEvent struct {
	shared.BaseDomainEvent
	CommentID uuid.UUID  `json:"comment_id"`
	PostID    uuid.UUID  `json:"post_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	AuthorID  uuid.UUID  `json:"author_id"`
}

// NewCommentAddedEvent creates a new CommentAddedEvent
func NewCommentAddedEvent(comment *Comment) *CommentAddedEvent {
	return &CommentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommentAdded, AggregateTypeComment, comment.ID),
		CommentID:       comment.ID,
		PostID:          comment.PostID,
		ParentID:        comment.ParentID,
		AuthorID:        comment.AuthorID,
	}
}

// CommentDeletedEvent is published after a comment and its replies are removed
type CommentDeletedEvent struct {
	shared.BaseDomainEvent
	CommentID uuid.UUID `json:"comment_id"`
	PostID    uuid.UUID `json:"post_id"`
	DeletedBy uuid.UUID `json:"deleted_by"`
}

// NewCommentDeletedEvent creates a new CommentDeletedEvent
func NewCommentDeletedEvent(comment *Comment, deletedBy uuid.UUID) *CommentDeletedEvent {
	return &CommentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommentDeleted, AggregateTypeComment, comment.ID),
		CommentID:       comment.ID,
		PostID:          comment.PostID,
		DeletedBy:       deletedBy,
	}
}

// ReactionSetEvent is published on every reaction mutation
type ReactionSetEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID      `json:"post_id"`
	UserID uuid.UUID      `json:"user_id"`
	Kind   ReactionKind   `json:"kind"`
	Action ReactionAction `json:"action"`
}

// NewReactionSetEvent creates a new ReactionSetEvent
func NewReactionSetEvent(postID, userID uuid.UUID, kind ReactionKind, action ReactionAction) *ReactionSetEvent {
	return &ReactionSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReactionSet, AggregateTypeReaction, postID),
		PostID:          postID,
		UserID:          userID,
		Kind:            kind,
		Action:          action,
	}
}
