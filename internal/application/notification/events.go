package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// ForumEventHandler turns forum domain events into notifications. It is
// subscribed to the event bus so forum services never call the dispatcher
// directly.
type ForumEventHandler struct {
	dispatcher  *Dispatcher
	postRepo    forum.PostRepository
	commentRepo forum.CommentRepository
	logger      *zap.Logger
}

var _ shared.EventHandler = (*ForumEventHandler)(nil)

// NewForumEventHandler creates a new ForumEventHandler
func NewForumEventHandler(
	dispatcher *Dispatcher,
	postRepo forum.PostRepository,
	commentRepo forum.CommentRepository,
	logger *zap.Logger,
) *ForumEventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForumEventHandler{
		dispatcher:  dispatcher,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// EventTypes returns the forum events the handler consumes
func (h *ForumEventHandler) EventTypes() []string {
	return []string{forum.EventTypeCommentAdded, forum.EventTypeReactionSet}
}

// Handle routes a forum event to the matching dispatcher entry point
func (h *ForumEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *forum.CommentAddedEvent:
		return h.handleCommentAdded(ctx, e)
	case *forum.ReactionSetEvent:
		return h.handleReactionSet(ctx, e)
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}
}

func (h *ForumEventHandler) handleCommentAdded(ctx context.Context, e *forum.CommentAddedEvent) error {
	if e.ParentID != nil {
		parent, err := h.commentRepo.FindByID(ctx, *e.ParentID)
		if err != nil {
			return err
		}
		return h.dispatcher.NotifyNewReply(ctx, parent.AuthorID, e.AuthorID, e.PostID, e.CommentID)
	}

	post, err := h.postRepo.FindByID(ctx, e.PostID)
	if err != nil {
		return err
	}
	return h.dispatcher.NotifyNewComment(ctx, post.AuthorID, e.AuthorID, e.PostID, e.CommentID)
}

func (h *ForumEventHandler) handleReactionSet(ctx context.Context, e *forum.ReactionSetEvent) error {
	// Removals do not notify anyone.
	if e.Action == forum.ReactionActionRemoved {
		return nil
	}

	post, err := h.postRepo.FindByID(ctx, e.PostID)
	if err != nil {
		return err
	}
	return h.dispatcher.NotifyNewReaction(ctx, post.AuthorID, e.UserID, e.PostID, e.Kind)
}
