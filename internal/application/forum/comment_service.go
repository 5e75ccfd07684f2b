package forum

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// CommentService handles comment threads on posts
type CommentService struct {
	commentRepo    forum.CommentRepository
	postRepo       forum.PostRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo forum.CommentRepository,
	postRepo forum.PostRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// AddComment adds a top-level comment, or a reply when parentID is set.
// Replies attach to a top-level comment only; replying to a reply is
// rejected.
func (s *CommentService) AddComment(
	ctx context.Context,
	postID, authorID uuid.UUID,
	content string,
	parentID *uuid.UUID,
) (*CommentResponse, error) {
	author, err := s.requireForumUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var comment *forum.Comment
	if parentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("VALIDATION_ERROR", "Parent comment not found")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Parent comment belongs to a different post")
		}
		if parent.IsReply() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Replies cannot be nested")
		}
		comment, err = forum.NewReply(postID, author.ID, parent.ID, content)
		if err != nil {
			return nil, err
		}
	} else {
		comment, err = forum.NewComment(postID, author.ID, content)
		if err != nil {
			return nil, err
		}
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.refreshCommentCount(ctx, post); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, comment)

	response := ToCommentResponse(comment)
	return &response, nil
}

// EditComment replaces a comment's text. Only the original author may edit,
// and the edited flag latches true permanently.
func (s *CommentService) EditComment(
	ctx context.Context,
	commentID, callerID uuid.UUID,
	content string,
) (*CommentResponse, error) {
	if callerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !comment.IsOwnedBy(callerID) {
		return nil, shared.ErrForbidden
	}

	if err := comment.Edit(content); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	response := ToCommentResponse(comment)
	return &response, nil
}

// DeleteComment removes a comment and its replies. The comment's author may
// delete it; a super admin may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !comment.IsOwnedBy(callerID) {
		caller, err := s.userRepo.FindByID(ctx, callerID)
		if err != nil {
			return shared.ErrForbidden
		}
		if !caller.IsSuperAdmin() {
			return shared.ErrForbidden
		}
	}

	if err := s.commentRepo.DeleteWithReplies(ctx, commentID); err != nil {
		return err
	}

	if post, err := s.postRepo.FindByID(ctx, comment.PostID); err == nil {
		_ = s.refreshCommentCount(ctx, post)
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, forum.NewCommentDeletedEvent(comment, callerID))
	}

	return nil
}

// DeleteAllForPost removes every comment and reply on a post in one
// transaction.
func (s *CommentService) DeleteAllForPost(ctx context.Context, postID uuid.UUID) error {
	return s.commentRepo.DeleteByPost(ctx, postID)
}

// GetThread returns the post's comments as top-level comments with replies
// attached, both levels oldest first.
func (s *CommentService) GetThread(ctx context.Context, postID uuid.UUID) ([]CommentResponse, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildCommentThread(comments), nil
}

func (s *CommentService) requireForumUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if user.BanFromForum {
		return nil, shared.ErrForbidden
	}
	return user, nil
}

func (s *CommentService) refreshCommentCount(ctx context.Context, post *forum.Post) error {
	count, err := s.commentRepo.CountByPost(ctx, post.ID)
	if err != nil {
		return err
	}
	post.SetCounters(post.LikesCount, int(count))
	return s.postRepo.Save(ctx, post)
}

func (s *CommentService) publishDomainEvents(ctx context.Context, comment *forum.Comment) {
	if s.eventPublisher == nil {
		return
	}
	events := comment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	comment.ClearDomainEvents()
}
