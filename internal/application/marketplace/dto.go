package marketplace

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
)

// CreateBusinessRequest carries the data for registering a business
type CreateBusinessRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	OwnerName string `json:"owner_name" binding:"required,max=120"`
	Category  string `json:"category" binding:"required,max=100"`
	Location  string `json:"location" binding:"required,max=100"`
}

// UpdateBusinessRequest carries the editable business fields
type UpdateBusinessRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Subtitle    string `json:"subtitle" binding:"max=300"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,max=100"`
	Location    string `json:"location" binding:"required,max=100"`
}

// SetContactRequest carries the contact channels of a business
type SetContactRequest struct {
	Phone    string `json:"phone" binding:"max=50"`
	WhatsApp string `json:"whatsapp" binding:"max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
}

// CreateProductRequest carries the data for adding a product to a business
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Category string          `json:"category" binding:"required,max=100"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Currency string          `json:"currency" binding:"max=10"`
}

// UpdateProductRequest carries the editable product fields
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,max=100"`
}

// SetStockRequest carries a stock status change
type SetStockRequest struct {
	Status   directory.StockStatus `json:"status" binding:"required"`
	Quantity *int                  `json:"quantity"`
}

// SearchRequest carries the marketplace filter parameters
type SearchRequest struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Location string `form:"location"`
}

// BusinessResponse represents a business in API responses
type BusinessResponse struct {
	ID          uuid.UUID                `json:"id"`
	OwnerID     uuid.UUID                `json:"owner_id"`
	Name        string                   `json:"name"`
	Subtitle    string                   `json:"subtitle,omitempty"`
	OwnerName   string                   `json:"owner_name"`
	Category    string                   `json:"category"`
	Description string                   `json:"description,omitempty"`
	Location    string                   `json:"location"`
	Status      directory.BusinessStatus `json:"status"`
	Rating      float64                  `json:"rating"`
	Phone       string                   `json:"phone,omitempty"`
	WhatsApp    string                   `json:"whatsapp,omitempty"`
	Email       string                   `json:"email,omitempty"`
	ImageURL    string                   `json:"image_url,omitempty"`
	LogoURL     string                   `json:"logo_url,omitempty"`
	TotalSales  int                      `json:"total_sales"`
	Views       int                      `json:"views"`
	Products    []ProductResponse        `json:"products,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID             `json:"id"`
	BusinessID  uuid.UUID             `json:"business_id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category"`
	Price       decimal.Decimal       `json:"price"`
	Currency    string                `json:"currency"`
	Images      []string              `json:"images,omitempty"`
	StockStatus directory.StockStatus `json:"stock_status"`
	Quantity    *int                  `json:"quantity,omitempty"`
	IsPublished bool                  `json:"is_published"`
	SalesCount  int                   `json:"sales_count"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ProductHit is a product search row joined with its owning business
type ProductHit struct {
	Product      ProductResponse `json:"product"`
	BusinessID   uuid.UUID       `json:"business_id"`
	BusinessName string          `json:"business_name"`
	Location     string          `json:"location"`
	Rating       float64         `json:"rating"`
}

// SearchMode names which shape of result a search produced
type SearchMode string

const (
	SearchModeProducts   SearchMode = "products"
	SearchModeBusinesses SearchMode = "businesses"
)

// SearchResponse holds the result of a marketplace search. Exactly one of
// Products and Businesses is populated, according to Mode.
type SearchResponse struct {
	Mode       SearchMode         `json:"mode"`
	Products   []ProductHit       `json:"products,omitempty"`
	Businesses []BusinessResponse `json:"businesses,omitempty"`
}

// ToBusinessResponse converts a business aggregate to a response DTO
func ToBusinessResponse(b *directory.Business) *BusinessResponse {
	resp := &BusinessResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Subtitle:    b.Subtitle,
		OwnerName:   b.OwnerName,
		Category:    b.Category,
		Description: b.Description,
		Location:    b.Location,
		Status:      b.Status,
		Rating:      b.Rating,
		Phone:       b.Phone,
		WhatsApp:    b.WhatsApp,
		Email:       b.Email,
		ImageURL:    b.ImageURL,
		LogoURL:     b.LogoURL,
		TotalSales:  b.TotalSales,
		Views:       b.Views,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	for i := range b.Products {
		resp.Products = append(resp.Products, *ToProductResponse(&b.Products[i]))
	}
	return resp
}

// ToBusinessResponses converts a slice of businesses
func ToBusinessResponses(businesses []directory.Business) []BusinessResponse {
	responses := make([]BusinessResponse, 0, len(businesses))
	for i := range businesses {
		responses = append(responses, *ToBusinessResponse(&businesses[i]))
	}
	return responses
}

// ToProductResponse converts a product aggregate to a response DTO
func ToProductResponse(p *directory.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Currency:    p.Currency,
		Images:      p.Images,
		StockStatus: p.StockStatus,
		Quantity:    p.Quantity,
		IsPublished: p.IsPublished,
		SalesCount:  p.SalesCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []directory.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ToProductResponse(&products[i]))
	}
	return responses
}
