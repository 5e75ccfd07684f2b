package persistence

import (
	"context"
	"errors"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessRepository implements directory.BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Business, error) {
	var business directory.Business
	if err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// FindByIDWithProducts finds a business by ID with its products preloaded
func (r *GormBusinessRepository) FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*directory.Business, error) {
	var business directory.Business
	if err := r.db.WithContext(ctx).
		Preload("Products").
		First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// FindByOwner returns all businesses owned by a user
func (r *GormBusinessRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]directory.Business, error) {
	var businesses []directory.Business
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// FindAll returns businesses matching the filter
func (r *GormBusinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Business, error) {
	var businesses []directory.Business
	query := r.applyFilter(r.db.WithContext(ctx).Model(&directory.Business{}), filter)
	query = applyPagination(query, filter, BusinessSortFields)
	if err := query.Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// FindAllWithProducts returns every business with its products preloaded
func (r *GormBusinessRepository) FindAllWithProducts(ctx context.Context) ([]directory.Business, error) {
	var businesses []directory.Business
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Order("created_at DESC").
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *directory.Business) error {
	return r.db.WithContext(ctx).Omit("Products").Save(business).Error
}

// Delete deletes a business and its products in one transaction
func (r *GormBusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", id).Delete(&directory.Product{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&directory.Business{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of businesses matching the filter
func (r *GormBusinessRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&directory.Business{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBusinessRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR subtitle ILIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if location, ok := filter.Filters["location"]; ok {
		query = query.Where("location = ?", location)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormBusinessRepository implements BusinessRepository
var _ directory.BusinessRepository = (*GormBusinessRepository)(nil)
