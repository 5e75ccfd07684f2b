package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fuadmd/WHH-SBG/internal/domain/identity"
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
)

func newModerationFixture() (*ModerationService, *MockUserRepository) {
	repo := new(MockUserRepository)
	return NewModerationService(repo, zap.NewNop()), repo
}

func newAdmin(t *testing.T) *identity.User {
	t.Helper()
	admin, err := identity.NewUserWithRole("Admin", "admin@example.com", "s3cret-pass", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, admin.SetAdminPermission(identity.PermissionModerator))
	return admin
}

func newMember(t *testing.T) *identity.User {
	t.Helper()
	member, err := identity.NewUser("Member", "member@example.com", "s3cret-pass")
	require.NoError(t, err)
	return member
}

func TestBan(t *testing.T) {
	ctx := context.Background()

	t.Run("forum scope sets only the forum flag", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		resp, err := service.Ban(ctx, admin.ID, member.ID, identity.BanScopeForum, "repeated spam")

		require.NoError(t, err)
		assert.True(t, resp.BanFromForum)
		assert.False(t, resp.BanFromMarket)
		assert.Equal(t, "repeated spam", resp.BanReason)
		assert.NotNil(t, resp.BannedAt)
	})

	t.Run("both scope sets both flags", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		resp, err := service.Ban(ctx, admin.ID, member.ID, identity.BanScopeBoth, "fraud")

		require.NoError(t, err)
		assert.True(t, resp.BanFromForum)
		assert.True(t, resp.BanFromMarket)
	})

	t.Run("empty reason is rejected", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)

		_, err := service.Ban(ctx, admin.ID, member.ID, identity.BanScopeForum, "   ")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown scope is rejected", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)

		_, err := service.Ban(ctx, admin.ID, member.ID, identity.BanScope("everywhere"), "x")
		assert.Error(t, err)
	})

	t.Run("non-admin caller is forbidden", func(t *testing.T) {
		service, repo := newModerationFixture()
		caller := newMember(t)
		member := newMember(t)

		repo.On("FindByID", ctx, caller.ID).Return(caller, nil)

		_, err := service.Ban(ctx, caller.ID, member.ID, identity.BanScopeForum, "grudge")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admins cannot be banned", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		otherAdmin, err := identity.NewUserWithRole("Other", "other@example.com", "s3cret-pass", identity.RoleAdmin)
		require.NoError(t, err)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, otherAdmin.ID).Return(otherAdmin, nil)

		_, err = service.Ban(ctx, admin.ID, otherAdmin.ID, identity.BanScopeBoth, "coup")
		assert.Error(t, err)
	})
}

func TestUnban(t *testing.T) {
	ctx := context.Background()

	t.Run("clears both flags regardless of original scope", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)
		require.NoError(t, member.Ban(identity.BanScopeForum, "spam"))

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		resp, err := service.Unban(ctx, admin.ID, member.ID)

		require.NoError(t, err)
		assert.False(t, resp.BanFromForum)
		assert.False(t, resp.BanFromMarket)
		assert.Empty(t, resp.BanReason)
		assert.Nil(t, resp.BannedAt)
	})

	t.Run("unbanning an unbanned user is harmless", func(t *testing.T) {
		service, repo := newModerationFixture()
		admin := newAdmin(t)
		member := newMember(t)

		repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
		repo.On("FindByID", ctx, member.ID).Return(member, nil)
		repo.On("Save", ctx, member).Return(nil)

		_, err := service.Unban(ctx, admin.ID, member.ID)
		require.NoError(t, err)
	})
}

func TestListBanned(t *testing.T) {
	ctx := context.Background()
	service, repo := newModerationFixture()
	admin := newAdmin(t)
	banned := newMember(t)
	require.NoError(t, banned.Ban(identity.BanScopeMarket, "counterfeit goods"))

	repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	repo.On("FindBanned", ctx).Return([]identity.User{*banned}, nil)

	users, err := service.ListBanned(ctx, admin.ID)

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, banned.ID, users[0].ID)
	assert.True(t, users[0].BanFromMarket)
}

func TestBanUnknownCaller(t *testing.T) {
	service, repo := newModerationFixture()
	ctx := context.Background()
	callerID := uuid.New()

	repo.On("FindByID", ctx, callerID).Return(nil, shared.ErrNotFound)

	_, err := service.Ban(ctx, callerID, uuid.New(), identity.BanScopeForum, "x")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
