package directory

import (
	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeBusiness = "Business"
	AggregateTypeProduct  = "Product"
)

// Event type constants
const (
	EventTypeBusinessCreated = "BusinessCreated"
	EventTypeProductCreated  = "ProductCreated"
)

// BusinessCreatedEvent is published when a business listing is created
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	BusinessID uuid.UUID `json:"business_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Location   string    `json:"location"`
}

// NewBusinessCreatedEvent creates a new BusinessCreatedEvent
func NewBusinessCreatedEvent(business *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessCreated, AggregateTypeBusiness, business.ID),
		BusinessID:      business.ID,
		OwnerID:         business.OwnerID,
		Name:            business.Name,
		Category:        business.Category,
		Location:        business.Location,
	}
}

// ProductCreatedEvent is published when a product is added to a business
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		BusinessID:      product.BusinessID,
		Name:            product.Name,
		Category:        product.Category,
	}
}
