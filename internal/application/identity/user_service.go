package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// UserService handles profile and admin user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, logger: logger}
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile updates the caller's own name and avatar
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.Name, req.Avatar); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List returns a page of users. Admin only; the caller is checked by the
// moderation-aware middleware upstream, the service re-checks here.
func (s *UserService) List(ctx context.Context, callerID uuid.UUID, req ListUsersRequest) (*shared.Paginated[UserResponse], error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	if req.Role != "" {
		filter.Filters["role"] = req.Role
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToUserResponses(users), total, filter.Page, filter.PageSize)
	return &page, nil
}

// SetAdminPermission grants an admin tier to a user. Super admin only.
func (s *UserService) SetAdminPermission(ctx context.Context, callerID, userID uuid.UUID, perm identity.AdminPermission) (*UserResponse, error) {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetAdminPermission(perm); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin permission granted",
		zap.String("user_id", userID.String()),
		zap.String("permission", string(perm)),
		zap.String("granted_by", callerID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes an account. Super admin only, and never the caller's own.
func (s *UserService) Delete(ctx context.Context, callerID, userID uuid.UUID) error {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsSuperAdmin() {
		return shared.ErrForbidden
	}
	if callerID == userID {
		return shared.NewDomainError("VALIDATION_ERROR", "You cannot delete your own account")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", callerID.String()))
	return nil
}

func (s *UserService) requireAdmin(ctx context.Context, callerID uuid.UUID) (*identity.User, error) {
	if callerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	return caller, nil
}
