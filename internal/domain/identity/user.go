package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the role of a user in the platform
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleBeneficiary UserRole = "beneficiary"
	RoleViewer      UserRole = "viewer"
)

// AdminPermission represents the permission tier of an admin user
type AdminPermission string

const (
	PermissionSuperAdmin AdminPermission = "super_admin"
	PermissionManager    AdminPermission = "manager"
	PermissionModerator  AdminPermission = "moderator"
)

// BanScope identifies which part of the platform a ban applies to
type BanScope string

const (
	BanScopeForum  BanScope = "forum"
	BanScopeMarket BanScope = "market"
	BanScopeBoth   BanScope = "both"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a platform user
// It is the aggregate root for identity and moderation operations
type User struct {
	shared.BaseAggregateRoot
	Name            string          `gorm:"type:varchar(120);not null"`
	Email           string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash    string          `gorm:"type:varchar(100);not null"`
	Role            UserRole        `gorm:"type:varchar(20);not null;default:'viewer';index"`
	AdminPermission AdminPermission `gorm:"type:varchar(20)"`
	Avatar          string          `gorm:"type:text"`
	BanFromForum    bool            `gorm:"not null;default:false"`
	BanFromMarket   bool            `gorm:"not null;default:false"`
	BanReason       string          `gorm:"type:text"`
	BannedAt        *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the viewer role
func NewUser(name, email, password string) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      string(hash),
		Role:              RoleViewer,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewUserWithRole creates a new user with an explicit role (admin CRUD path)
func NewUserWithRole(name, email, password string, role UserRole) (*User, error) {
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown user role")
	}
	user, err := NewUser(name, email, password)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Valid reports whether the role is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleBeneficiary, RoleViewer:
		return true
	}
	return false
}

// Valid reports whether the scope is one of the known ban scopes
func (s BanScope) Valid() bool {
	switch s {
	case BanScopeForum, BanScopeMarket, BanScopeBoth:
		return true
	}
	return false
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the user's password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// UpdateProfile updates the user's display name and avatar
func (u *User) UpdateProfile(name, avatar string) error {
	if err := validateName(name); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.Avatar = avatar
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetAdminPermission promotes the user to admin with the given tier
func (u *User) SetAdminPermission(perm AdminPermission) error {
	switch perm {
	case PermissionSuperAdmin, PermissionManager, PermissionModerator:
	default:
		return shared.NewDomainError("INVALID_PERMISSION", "Unknown admin permission tier")
	}
	u.Role = RoleAdmin
	u.AdminPermission = perm
	u.Touch()
	u.IncrementVersion()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSuperAdmin reports whether the user may bypass ownership checks
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleAdmin && u.AdminPermission == PermissionSuperAdmin
}

// Ban applies a ban in the given scope with a required reason
func (u *User) Ban(scope BanScope, reason string) error {
	if !scope.Valid() {
		return shared.NewDomainError("INVALID_BAN_SCOPE", "Ban scope must be forum, market, or both")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Ban reason cannot be empty")
	}

	now := time.Now()
	u.BanFromForum = u.BanFromForum || scope == BanScopeForum || scope == BanScopeBoth
	u.BanFromMarket = u.BanFromMarket || scope == BanScopeMarket || scope == BanScopeBoth
	u.BanReason = strings.TrimSpace(reason)
	u.BannedAt = &now
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserBannedEvent(u, scope))

	return nil
}

// Unban lifts every ban on the user regardless of the original scope
func (u *User) Unban() {
	u.BanFromForum = false
	u.BanFromMarket = false
	u.BanReason = ""
	u.BannedAt = nil
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserUnbannedEvent(u))
}

// IsBanned reports whether any ban is in effect
func (u *User) IsBanned() bool {
	return u.BanFromForum || u.BanFromMarket
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 120 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
