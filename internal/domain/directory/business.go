package directory

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessStatus represents the lifecycle status of a business listing
type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
	BusinessStatusPending  BusinessStatus = "pending"
	BusinessStatusEmerging BusinessStatus = "emerging"
)

// Business represents a directory entry for a small business. It owns zero or
// more products and is the aggregate root for catalog operations.
type Business struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Subtitle    string         `gorm:"type:varchar(300)"`
	OwnerName   string         `gorm:"type:varchar(120);not null"`
	Category    string         `gorm:"type:varchar(100);not null;index"`
	Description string         `gorm:"type:text"`
	Location    string         `gorm:"type:varchar(100);not null;index"`
	Status      BusinessStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Rating      float64        `gorm:"not null;default:0"`
	Phone       string         `gorm:"type:varchar(50)"`
	WhatsApp    string         `gorm:"type:varchar(50)"`
	Email       string         `gorm:"type:varchar(200)"`
	ImageURL    string         `gorm:"type:text"`
	LogoURL     string         `gorm:"type:text"`
	TotalSales  int            `gorm:"not null;default:0"`
	Views       int            `gorm:"not null;default:0"`
	Products    []Product      `gorm:"foreignKey:BusinessID"`
}

// TableName returns the table name for GORM
func (Business) TableName() string {
	return "businesses"
}

// NewBusiness creates a new business listing in pending status
func NewBusiness(ownerID uuid.UUID, name, ownerName, category, location string) (*Business, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if err := validateRequired("Business name", name, 200); err != nil {
		return nil, err
	}
	if err := validateRequired("Owner name", ownerName, 120); err != nil {
		return nil, err
	}
	if err := validateRequired("Category", category, 100); err != nil {
		return nil, err
	}
	if err := validateRequired("Location", location, 100); err != nil {
		return nil, err
	}

	business := &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(name),
		OwnerName:         strings.TrimSpace(ownerName),
		Category:          strings.TrimSpace(category),
		Location:          strings.TrimSpace(location),
		Status:            BusinessStatusPending,
	}

	business.AddDomainEvent(NewBusinessCreatedEvent(business))

	return business, nil
}

// Update updates the descriptive fields of the listing
func (b *Business) Update(name, subtitle, description, category, location string) error {
	if err := validateRequired("Business name", name, 200); err != nil {
		return err
	}
	if err := validateRequired("Category", category, 100); err != nil {
		return err
	}
	if err := validateRequired("Location", location, 100); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Subtitle = strings.TrimSpace(subtitle)
	b.Description = description
	b.Category = strings.TrimSpace(category)
	b.Location = strings.TrimSpace(location)
	b.Touch()
	b.IncrementVersion()

	return nil
}

// SetContact updates contact details
func (b *Business) SetContact(phone, whatsapp, email string) {
	b.Phone = strings.TrimSpace(phone)
	b.WhatsApp = strings.TrimSpace(whatsapp)
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Touch()
	b.IncrementVersion()
}

// SetStatus transitions the listing status
func (b *Business) SetStatus(status BusinessStatus) error {
	switch status {
	case BusinessStatusActive, BusinessStatusInactive, BusinessStatusPending, BusinessStatusEmerging:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown business status")
	}
	b.Status = status
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetRating sets the 0-5 aggregate rating
func (b *Business) SetRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	b.Rating = rating
	b.Touch()
	return nil
}

// RecordView increments the view counter
func (b *Business) RecordView() {
	b.Views++
}

// IsOwnedBy reports whether the given user owns the listing
func (b *Business) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID == userID
}

func validateRequired(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewDomainError("VALIDATION_ERROR", field+" cannot be empty")
	}
	if len(value) > max {
		return shared.NewDomainError("VALIDATION_ERROR", field+" is too long")
	}
	return nil
}
