package persistence

import (
	"context"
	"errors"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReactionRepository implements forum.ReactionRepository using GORM
type GormReactionRepository struct {
	db *gorm.DB
}

// NewGormReactionRepository creates a new GormReactionRepository
func NewGormReactionRepository(db *gorm.DB) *GormReactionRepository {
	return &GormReactionRepository{db: db}
}

// FindByPostAndUser finds the single reaction of a user on a post
func (r *GormReactionRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*forum.Reaction, error) {
	var reaction forum.Reaction
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

// FindByPost returns all reactions on a post
func (r *GormReactionRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]forum.Reaction, error) {
	var reactions []forum.Reaction
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// CountByKind returns per-kind reaction counts for a post, zero-count kinds omitted
func (r *GormReactionRepository) CountByKind(ctx context.Context, postID uuid.UUID) (map[forum.ReactionKind]int, error) {
	type kindCount struct {
		Kind  forum.ReactionKind
		Count int
	}
	var rows []kindCount
	if err := r.db.WithContext(ctx).
		Model(&forum.Reaction{}).
		Select("kind, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[forum.ReactionKind]int, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

// Save creates or updates a reaction
func (r *GormReactionRepository) Save(ctx context.Context, reaction *forum.Reaction) error {
	return r.db.WithContext(ctx).Save(reaction).Error
}

// Delete deletes a reaction by ID
func (r *GormReactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&forum.Reaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPostAndUser deletes a user's reaction on a post
func (r *GormReactionRepository) DeleteByPostAndUser(ctx context.Context, postID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&forum.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPost deletes every reaction referencing the post
func (r *GormReactionRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&forum.Reaction{}).Error
}

// Ensure GormReactionRepository implements ReactionRepository
var _ forum.ReactionRepository = (*GormReactionRepository)(nil)
