package persistence

import (
	"context"
	"errors"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommentRepository implements forum.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Comment, error) {
	var comment forum.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// FindByPost returns every comment referencing the post, oldest first
func (r *GormCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]forum.Comment, error) {
	var comments []forum.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindReplies returns the direct replies of a comment, oldest first
func (r *GormCommentRepository) FindReplies(ctx context.Context, parentID uuid.UUID) ([]forum.Comment, error) {
	var replies []forum.Comment
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// Save creates or updates a comment
func (r *GormCommentRepository) Save(ctx context.Context, comment *forum.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteWithReplies deletes a comment and its direct replies in one transaction
func (r *GormCommentRepository) DeleteWithReplies(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&forum.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&forum.Comment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteByPost deletes every comment and reply referencing the post
func (r *GormCommentRepository) DeleteByPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&forum.Comment{}).Error
}

// CountByPost counts all comments and replies on a post
func (r *GormCommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&forum.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCommentRepository implements CommentRepository
var _ forum.CommentRepository = (*GormCommentRepository)(nil)
