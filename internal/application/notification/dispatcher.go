package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
)

// LivePublisher pushes a freshly stored notification to connected clients.
// Implemented by the realtime layer; delivery failures are logged, never
// propagated.
type LivePublisher interface {
	PublishNotification(ctx context.Context, userID uuid.UUID, n *notification.Notification) error
}

// Dispatcher creates inbox records and pushes them to live subscribers.
// A recipient is never notified about their own action.
type Dispatcher struct {
	notificationRepo notification.Repository
	userRepo         identity.UserRepository
	live             LivePublisher
	logger           *zap.Logger
}

// NewDispatcher creates a new Dispatcher. live may be nil when no realtime
// delivery is wired.
func NewDispatcher(
	notificationRepo notification.Repository,
	userRepo identity.UserRepository,
	live LivePublisher,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		live:             live,
		logger:           logger,
	}
}

// NotifyNewComment notifies a post author about a new top-level comment
func (d *Dispatcher) NotifyNewComment(ctx context.Context, recipientID, actorID, postID, commentID uuid.UUID) error {
	if recipientID == actorID {
		return nil
	}
	title := fmt.Sprintf("%s commented on your post", d.actorName(ctx, actorID))
	n, err := notification.New(recipientID, notification.TypeNewComment, title, "")
	if err != nil {
		return err
	}
	n.WithActor(actorID).WithPost(postID).WithComment(commentID)
	return d.store(ctx, n)
}

// NotifyNewReply notifies a comment author about a reply to their comment
func (d *Dispatcher) NotifyNewReply(ctx context.Context, recipientID, actorID, postID, commentID uuid.UUID) error {
	if recipientID == actorID {
		return nil
	}
	title := fmt.Sprintf("%s replied to your comment", d.actorName(ctx, actorID))
	n, err := notification.New(recipientID, notification.TypeNewReply, title, "")
	if err != nil {
		return err
	}
	n.WithActor(actorID).WithPost(postID).WithComment(commentID)
	return d.store(ctx, n)
}

// NotifyNewReaction notifies a post author about a reaction on their post
func (d *Dispatcher) NotifyNewReaction(ctx context.Context, recipientID, actorID, postID uuid.UUID, kind forum.ReactionKind) error {
	if recipientID == actorID {
		return nil
	}
	title := fmt.Sprintf("%s reacted with %s to your post", d.actorName(ctx, actorID), kind)
	n, err := notification.New(recipientID, notification.TypeNewReaction, title, "")
	if err != nil {
		return err
	}
	n.WithActor(actorID).WithPost(postID)
	return d.store(ctx, n)
}

// NotifyMention notifies a user that they were mentioned in a comment
func (d *Dispatcher) NotifyMention(ctx context.Context, recipientID, actorID, postID, commentID uuid.UUID) error {
	if recipientID == actorID {
		return nil
	}
	title := fmt.Sprintf("%s mentioned you", d.actorName(ctx, actorID))
	n, err := notification.New(recipientID, notification.TypeMention, title, "")
	if err != nil {
		return err
	}
	n.WithActor(actorID).WithPost(postID).WithComment(commentID)
	return d.store(ctx, n)
}

// NotifyMultipleUsers fans a notification out to several recipients. The
// actor is skipped, as is any duplicate recipient. The first storage error
// aborts the fan-out.
func (d *Dispatcher) NotifyMultipleUsers(
	ctx context.Context,
	recipientIDs []uuid.UUID,
	actorID uuid.UUID,
	typ notification.Type,
	title, message string,
	postID uuid.UUID,
) error {
	seen := make(map[uuid.UUID]bool, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if recipientID == actorID || recipientID == uuid.Nil || seen[recipientID] {
			continue
		}
		seen[recipientID] = true

		n, err := notification.New(recipientID, typ, title, message)
		if err != nil {
			return err
		}
		n.WithActor(actorID).WithPost(postID)
		if err := d.store(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) store(ctx context.Context, n *notification.Notification) error {
	if err := d.notificationRepo.Save(ctx, n); err != nil {
		return err
	}
	if d.live != nil {
		if err := d.live.PublishNotification(ctx, n.UserID, n); err != nil {
			d.logger.Warn("live notification delivery failed",
				zap.String("notification_id", n.ID.String()),
				zap.String("user_id", n.UserID.String()),
				zap.Error(err))
		}
	}
	return nil
}

func (d *Dispatcher) actorName(ctx context.Context, actorID uuid.UUID) string {
	if actorID == uuid.Nil {
		return "Someone"
	}
	actor, err := d.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return "Someone"
	}
	return actor.Name
}
