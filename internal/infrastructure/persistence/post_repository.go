package persistence

import (
	"context"
	"errors"

	"github.com/fuadmd/WHH-SBG/internal/domain/forum"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPostRepository implements forum.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*forum.Post, error) {
	var post forum.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindAll returns posts matching the filter, newest first by default
func (r *GormPostRepository) FindAll(ctx context.Context, filter shared.Filter) ([]forum.Post, error) {
	var posts []forum.Post
	query := r.applyFilter(r.db.WithContext(ctx).Model(&forum.Post{}), filter)
	query = applyPagination(query, filter, PostSortFields)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByAuthor returns all posts by an author
func (r *GormPostRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, filter shared.Filter) ([]forum.Post, error) {
	var posts []forum.Post
	query := r.db.WithContext(ctx).
		Model(&forum.Post{}).
		Where("author_id = ?", authorID)
	query = applyPagination(query, filter, PostSortFields)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a post
func (r *GormPostRepository) Save(ctx context.Context, post *forum.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete deletes a post row only
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&forum.Post{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of posts matching the filter
func (r *GormPostRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&forum.Post{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPostRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ?", pattern)
	}
	if authorID, ok := filter.Filters["author_id"]; ok {
		query = query.Where("author_id = ?", authorID)
	}
	return query
}

// Ensure GormPostRepository implements PostRepository
var _ forum.PostRepository = (*GormPostRepository)(nil)
