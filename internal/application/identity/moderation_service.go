package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

// ModerationService bans and unbans users. Bans are scoped to the forum, the
// marketplace, or both; unbanning is always total.
type ModerationService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewModerationService creates a new ModerationService
func NewModerationService(userRepo identity.UserRepository, logger *zap.Logger) *ModerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModerationService{userRepo: userRepo, logger: logger}
}

// Ban applies a ban to a user in the given scope. The reason is required.
// Only admins may ban, and admins cannot be banned.
func (s *ModerationService) Ban(ctx context.Context, callerID, userID uuid.UUID, scope identity.BanScope, reason string) (*UserResponse, error) {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Admin accounts cannot be banned")
	}

	if err := user.Ban(scope, reason); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user banned",
		zap.String("user_id", userID.String()),
		zap.String("scope", string(scope)),
		zap.String("banned_by", caller.ID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// Unban lifts every ban on the user: both flags, the reason, and the
// timestamp are cleared regardless of the original scope.
func (s *ModerationService) Unban(ctx context.Context, callerID, userID uuid.UUID) (*UserResponse, error) {
	caller, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Unban()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user unbanned",
		zap.String("user_id", userID.String()),
		zap.String("unbanned_by", caller.ID.String()))

	response := ToUserResponse(user)
	return &response, nil
}

// ListBanned returns every user carrying any ban flag
func (s *ModerationService) ListBanned(ctx context.Context, callerID uuid.UUID) ([]UserResponse, error) {
	if _, err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindBanned(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

func (s *ModerationService) requireAdmin(ctx context.Context, callerID uuid.UUID) (*identity.User, error) {
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
