package directory

import (
	"context"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// FindByID finds a business by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByIDWithProducts finds a business with its products preloaded
	FindByIDWithProducts(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByOwner finds all businesses owned by a user
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Business, error)

	// FindAll finds all businesses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Business, error)

	// FindAllWithProducts finds all businesses with products preloaded,
	// the flattened view the marketplace filter operates on
	FindAllWithProducts(ctx context.Context) ([]Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, business *Business) error

	// Delete deletes a business and, via FK cascade, its products
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts businesses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByBusiness finds all products of a business
	FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]Product, error)

	// FindPublished finds all published products
	FindPublished(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
