package directory

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus represents product availability
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusLimited    StockStatus = "limited"
)

// Product represents an item sold by exactly one business
type Product struct {
	shared.BaseAggregateRoot
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(10);not null;default:'USD'"`
	Images      []string        `gorm:"serializer:json;type:jsonb"`
	StockStatus StockStatus     `gorm:"type:varchar(20);not null;default:'in_stock'"`
	Quantity    *int
	IsPublished bool `gorm:"not null;default:false"`
	SalesCount  int  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new unpublished product under a business
func NewProduct(businessID uuid.UUID, name, category string, price decimal.Decimal, currency string) (*Product, error) {
	if businessID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUSINESS", "Product must belong to a business")
	}
	if err := validateRequired("Product name", name, 200); err != nil {
		return nil, err
	}
	if err := validateRequired("Category", category, 100); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if currency == "" {
		currency = "USD"
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BusinessID:        businessID,
		Name:              strings.TrimSpace(name),
		Category:          strings.TrimSpace(category),
		Price:             price,
		Currency:          strings.ToUpper(currency),
		StockStatus:       StockStatusInStock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, category string) error {
	if err := validateRequired("Product name", name, 200); err != nil {
		return err
	}
	if err := validateRequired("Category", category, 100); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Category = strings.TrimSpace(category)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPrice updates the price
func (p *Product) SetPrice(price decimal.Decimal, currency string) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	if currency != "" {
		p.Currency = strings.ToUpper(currency)
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetStock updates availability; quantity is optional
func (p *Product) SetStock(status StockStatus, quantity *int) error {
	switch status {
	case StockStatusInStock, StockStatusOutOfStock, StockStatusLimited:
	default:
		return shared.NewDomainError("INVALID_STOCK_STATUS", "Unknown stock status")
	}
	if quantity != nil && *quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	p.StockStatus = status
	p.Quantity = quantity
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Publish makes the product visible in the marketplace
func (p *Product) Publish() {
	p.IsPublished = true
	p.Touch()
	p.IncrementVersion()
}

// Unpublish hides the product from the marketplace
func (p *Product) Unpublish() {
	p.IsPublished = false
	p.Touch()
	p.IncrementVersion()
}

// RecordSale increments the sales counter
func (p *Product) RecordSale() {
	p.SalesCount++
	p.Touch()
}

// SetImages replaces the product image URLs
func (p *Product) SetImages(urls []string) {
	p.Images = urls
	p.Touch()
}
