package forum

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/notification"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// PostService handles forum post lifecycle
type PostService struct {
	postRepo         forum.PostRepository
	commentRepo      forum.CommentRepository
	reactionRepo     forum.ReactionRepository
	notificationRepo notification.Repository
	userRepo         identity.UserRepository
	eventPublisher   shared.EventPublisher
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo forum.PostRepository,
	commentRepo forum.CommentRepository,
	reactionRepo forum.ReactionRepository,
	notificationRepo notification.Repository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		reactionRepo:     reactionRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		eventPublisher:   eventPublisher,
	}
}

// CreatePost creates a new post
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, req CreatePostRequest) (*PostResponse, error) {
	author, err := s.requireForumUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post, err := forum.NewPost(author.ID, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, post)

	response := ToPostResponse(post)
	return &response, nil
}

// GetPost returns a post enriched with its comment thread and reaction counts
func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	response := ToPostResponse(post)

	comments, err := s.commentRepo.FindByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	response.Comments = BuildCommentThread(comments)

	counts, err := s.reactionRepo.CountByKind(ctx, postID)
	if err != nil {
		return nil, err
	}
	response.Reactions = sortCounts(counts)

	return &response, nil
}

// ListPosts returns a page of posts, newest first
func (s *PostService) ListPosts(ctx context.Context, req ListPostsRequest) (*shared.Paginated[PostListResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"

	var (
		posts []forum.Post
		err   error
	)
	if req.AuthorID != uuid.Nil {
		posts, err = s.postRepo.FindByAuthor(ctx, req.AuthorID, filter)
	} else {
		posts, err = s.postRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	countFilter := filter
	if req.AuthorID != uuid.Nil {
		countFilter.Filters = map[string]interface{}{"author_id": req.AuthorID}
	}
	total, err := s.postRepo.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToPostListResponses(posts), total, filter.Page, filter.PageSize)
	return &page, nil
}

// EditPost replaces a post's title and content. Only the author may edit,
// and the edited flag latches true permanently.
func (s *PostService) EditPost(ctx context.Context, postID, callerID uuid.UUID, req UpdatePostRequest) (*PostResponse, error) {
	if callerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(callerID) {
		return nil, shared.ErrForbidden
	}

	if err := post.Edit(req.Title, req.Content); err != nil {
		return nil, err
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	response := ToPostResponse(post)
	return &response, nil
}

// DeletePost removes a post together with its comments, reactions, and
// notifications. The author may delete their own post; a super admin may
// delete any post.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if !post.IsOwnedBy(callerID) {
		caller, err := s.userRepo.FindByID(ctx, callerID)
		if err != nil {
			return shared.ErrForbidden
		}
		if !caller.IsSuperAdmin() {
			return shared.ErrForbidden
		}
	}

	// Dependents go first so nothing references the post once its row is
	// gone.
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.reactionRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, forum.NewPostDeletedEvent(post, callerID))
	}

	return nil
}

func (s *PostService) requireForumUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
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

func (s *PostService) publishDomainEvents(ctx context.Context, post *forum.Post) {
	if s.eventPublisher == nil {
		return
	}
	events := post.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	post.ClearDomainEvents()
}
