package forum

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// ReactionService handles reaction toggling and aggregation on posts
type ReactionService struct {
	reactionRepo   forum.ReactionRepository
	postRepo       forum.PostRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewReactionService creates a new ReactionService
func NewReactionService(
	reactionRepo forum.ReactionRepository,
	postRepo forum.PostRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
) *ReactionService {
	return &ReactionService{
		reactionRepo:   reactionRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// SetReaction toggles a user's reaction on a post. No existing reaction
// creates one; an existing reaction of a different kind is replaced; an
// existing reaction of the same kind is removed. Returns the updated counts.
func (s *ReactionService) SetReaction(
	ctx context.Context,
	postID, userID uuid.UUID,
	kind forum.ReactionKind,
) ([]ReactionCount, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if !kind.Valid() {
		return nil, shared.NewDomainError("INVALID_REACTION", "Unknown reaction kind")
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

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	action := forum.ReactionActionCreated
	existing, err := s.reactionRepo.FindByPostAndUser(ctx, postID, userID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		reaction, err := forum.NewReaction(postID, userID, kind)
		if err != nil {
			return nil, err
		}
		if err := s.reactionRepo.Save(ctx, reaction); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case existing.Kind == kind:
		action = forum.ReactionActionRemoved
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	default:
		action = forum.ReactionActionReplaced
		if err := existing.Replace(kind); err != nil {
			return nil, err
		}
		if err := s.reactionRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
	}

	counts, err := s.refreshCounters(ctx, post)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, forum.NewReactionSetEvent(postID, userID, kind, action))
	}

	return counts, nil
}

// RemoveReaction deletes the user's reaction on a post if one exists.
// Removing a reaction that does not exist is not an error.
func (s *ReactionService) RemoveReaction(ctx context.Context, postID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	existing, err := s.reactionRepo.FindByPostAndUser(ctx, postID, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}

	if post, err := s.postRepo.FindByID(ctx, postID); err == nil {
		_, _ = s.refreshCounters(ctx, post)
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx,
			forum.NewReactionSetEvent(postID, userID, existing.Kind, forum.ReactionActionRemoved))
	}

	return nil
}

// CountsByKind returns the post's per-kind reaction tallies, zero counts
// omitted, ordered descending by count with ties broken by the kinds'
// enumeration order.
func (s *ReactionService) CountsByKind(ctx context.Context, postID uuid.UUID) ([]ReactionCount, error) {
	counts, err := s.reactionRepo.CountByKind(ctx, postID)
	if err != nil {
		return nil, err
	}
	return sortCounts(counts), nil
}

// refreshCounters recomputes the post's denormalized likes counter and
// returns the sorted per-kind counts.
func (s *ReactionService) refreshCounters(ctx context.Context, post *forum.Post) ([]ReactionCount, error) {
	counts, err := s.reactionRepo.CountByKind(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	post.SetCounters(total, post.CommentsCount)
	if err := s.postRepo.Save(ctx, post); err != nil {
		return nil, err
	}

	return sortCounts(counts), nil
}

func sortCounts(counts map[forum.ReactionKind]int) []ReactionCount {
	result := make([]ReactionCount, 0, len(counts))
	for _, kind := range forum.ReactionKinds {
		if n := counts[kind]; n > 0 {
			result = append(result, ReactionCount{Kind: kind, Count: n})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
