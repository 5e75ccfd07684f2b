package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// ProductService handles products under a business
type ProductService struct {
	productRepo    directory.ProductRepository
	businessRepo   directory.BusinessRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo directory.ProductRepository,
	businessRepo directory.BusinessRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		businessRepo:   businessRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateProduct adds a product to a business owned by the caller
func (s *ProductService) CreateProduct(ctx context.Context, callerID, businessID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.requireBusinessOwner(ctx, callerID, businessID); err != nil {
		return nil, err
	}

	product, err := directory.NewProduct(businessID, req.Name, req.Category, req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)
	return ToProductResponse(product), nil
}

// GetProduct returns a single product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ListByBusiness returns all products of a business, published or not
func (s *ProductService) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// UpdateProduct edits a product's descriptive fields
func (s *ProductService) UpdateProduct(ctx context.Context, callerID, productID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Category); err != nil {
		return nil, err
	}
	return s.save(ctx, product)
}

// SetPrice changes a product's price and currency
func (s *ProductService) SetPrice(ctx context.Context, callerID, productID uuid.UUID, price decimal.Decimal, currency string) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrice(price, currency); err != nil {
		return nil, err
	}
	return s.save(ctx, product)
}

// SetStock changes a product's stock status and optional quantity
func (s *ProductService) SetStock(ctx context.Context, callerID, productID uuid.UUID, req *SetStockRequest) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(req.Status, req.Quantity); err != nil {
		return nil, err
	}
	return s.save(ctx, product)
}

// SetImages replaces a product's image URLs
func (s *ProductService) SetImages(ctx context.Context, callerID, productID uuid.UUID, urls []string) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	product.SetImages(urls)
	return s.save(ctx, product)
}

// Publish makes a product visible in marketplace search
func (s *ProductService) Publish(ctx context.Context, callerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	product.Publish()
	return s.save(ctx, product)
}

// Unpublish hides a product from marketplace search
func (s *ProductService) Unpublish(ctx context.Context, callerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	product.Unpublish()
	return s.save(ctx, product)
}

// RecordSale increments a product's sales counter and that of its business
func (s *ProductService) RecordSale(ctx context.Context, callerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.requireEditable(ctx, callerID, productID)
	if err != nil {
		return nil, err
	}

	product.RecordSale()
	resp, err := s.save(ctx, product)
	if err != nil {
		return nil, err
	}

	business, err := s.businessRepo.FindByID(ctx, product.BusinessID)
	if err != nil {
		return nil, err
	}
	business.TotalSales++
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, callerID, productID uuid.UUID) error {
	if _, err := s.requireEditable(ctx, callerID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) save(ctx context.Context, product *directory.Product) (*ProductResponse, error) {
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// requireEditable loads a product and checks the caller may modify it via
// ownership of the business it belongs to
func (s *ProductService) requireEditable(ctx context.Context, callerID, productID uuid.UUID) (*directory.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireBusinessOwner(ctx, callerID, product.BusinessID); err != nil {
		return nil, err
	}
	return product, nil
}

// requireBusinessOwner checks the caller may act on the given business
func (s *ProductService) requireBusinessOwner(ctx context.Context, callerID, businessID uuid.UUID) (*directory.Business, error) {
	caller, err := s.requireMarketUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !business.IsOwnedBy(callerID) && !caller.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}
	return business, nil
}

func (s *ProductService) requireMarketUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
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
	if user.BanFromMarket {
		return nil, shared.ErrForbidden
	}
	return user, nil
}

func (s *ProductService) publishDomainEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
