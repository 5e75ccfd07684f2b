package marketplace

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// BusinessService handles business listings in the directory
type BusinessService struct {
	businessRepo   directory.BusinessRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(
	businessRepo directory.BusinessRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
) *BusinessService {
	return &BusinessService{
		businessRepo:   businessRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateBusiness registers a new business owned by the given user
func (s *BusinessService) CreateBusiness(ctx context.Context, ownerID uuid.UUID, req *CreateBusinessRequest) (*BusinessResponse, error) {
	if _, err := s.requireMarketUser(ctx, ownerID); err != nil {
		return nil, err
	}

	business, err := directory.NewBusiness(ownerID, req.Name, req.OwnerName, req.Category, req.Location)
	if err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, business)
	return ToBusinessResponse(business), nil
}

// GetBusiness returns a business with its products
func (s *BusinessService) GetBusiness(ctx context.Context, id uuid.UUID) (*BusinessResponse, error) {
	business, err := s.businessRepo.FindByIDWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// ListBusinesses returns a page of businesses
func (s *BusinessService) ListBusinesses(ctx context.Context, filter shared.Filter) (*shared.Paginated[BusinessResponse], error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}

	businesses, err := s.businessRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.businessRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToBusinessResponses(businesses), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByOwner returns all businesses owned by a user
func (s *BusinessService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]BusinessResponse, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	businesses, err := s.businessRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToBusinessResponses(businesses), nil
}

// UpdateBusiness edits a business. Only the owner or a super admin may edit.
func (s *BusinessService) UpdateBusiness(ctx context.Context, callerID, businessID uuid.UUID, req *UpdateBusinessRequest) (*BusinessResponse, error) {
	business, err := s.requireEditable(ctx, callerID, businessID)
	if err != nil {
		return nil, err
	}

	if err := business.Update(req.Name, req.Subtitle, req.Description, req.Category, req.Location); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// SetContact updates the contact channels of a business
func (s *BusinessService) SetContact(ctx context.Context, callerID, businessID uuid.UUID, req *SetContactRequest) (*BusinessResponse, error) {
	business, err := s.requireEditable(ctx, callerID, businessID)
	if err != nil {
		return nil, err
	}

	business.SetContact(req.Phone, req.WhatsApp, req.Email)

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// SetStatus changes the lifecycle status of a business. Admin only.
func (s *BusinessService) SetStatus(ctx context.Context, callerID, businessID uuid.UUID, status directory.BusinessStatus) (*BusinessResponse, error) {
	caller, err := s.requireMarketUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := business.SetStatus(status); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// SetRating sets the displayed rating of a business. Admin only.
func (s *BusinessService) SetRating(ctx context.Context, callerID, businessID uuid.UUID, rating float64) (*BusinessResponse, error) {
	caller, err := s.requireMarketUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if err := business.SetRating(rating); err != nil {
		return nil, err
	}

	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return ToBusinessResponse(business), nil
}

// RecordView increments the view counter of a business. Unauthenticated
// viewers count too, so no caller check is done.
func (s *BusinessService) RecordView(ctx context.Context, businessID uuid.UUID) error {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return err
	}
	business.RecordView()
	return s.businessRepo.Save(ctx, business)
}

// DeleteBusiness removes a business and its products
func (s *BusinessService) DeleteBusiness(ctx context.Context, callerID, businessID uuid.UUID) error {
	if _, err := s.requireEditable(ctx, callerID, businessID); err != nil {
		return err
	}
	return s.businessRepo.Delete(ctx, businessID)
}

// requireEditable loads a business and checks the caller may modify it
func (s *BusinessService) requireEditable(ctx context.Context, callerID, businessID uuid.UUID) (*directory.Business, error) {
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

func (s *BusinessService) requireMarketUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
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

func (s *BusinessService) publishDomainEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
