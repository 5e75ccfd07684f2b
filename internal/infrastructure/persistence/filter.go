package persistence

import (
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"role":       true,
	"banned_at":  true,
}

// PostSortFields contains allowed sort fields for posts
var PostSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"likes_count":    true,
	"comments_count": true,
}

// BusinessSortFields contains allowed sort fields for businesses
var BusinessSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"category":    true,
	"location":    true,
	"status":      true,
	"rating":      true,
	"total_sales": true,
	"views":       true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"category":    true,
	"price":       true,
	"sales_count": true,
}

// applyPagination applies sorting and pagination from a shared.Filter.
// allowedFields guards the ORDER BY column against injection.
func applyPagination(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	sortBy := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortBy + " " + sortOrder)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
