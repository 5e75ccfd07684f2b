package marketplace

import (
	"context"
	"strings"

	"github.com/fuadmd/WHH-SBG/internal/domain/directory"
)

// CategoryAll and LocationAll are the wildcard values the storefront sends
// when no category or location is selected.
const (
	CategoryAll = "All"
	LocationAll = "All"
)

// SearchService filters the marketplace over a flattened product and
// business view. A query or a concrete category switches the search into
// product mode; a location alone narrows businesses; with no criteria every
// business is returned.
type SearchService struct {
	businessRepo directory.BusinessRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(businessRepo directory.BusinessRepository) *SearchService {
	return &SearchService{businessRepo: businessRepo}
}

// Search applies the marketplace filter. Query matches product or business
// names by case-insensitive substring; category and location match exactly.
func (s *SearchService) Search(ctx context.Context, query, category, location string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)
	location = strings.TrimSpace(location)
	if category == CategoryAll {
		category = ""
	}
	if location == LocationAll {
		location = ""
	}

	businesses, err := s.businessRepo.FindAllWithProducts(ctx)
	if err != nil {
		return nil, err
	}

	if query != "" || category != "" {
		return s.searchProducts(businesses, query, category, location), nil
	}
	return s.searchBusinesses(businesses, query, location), nil
}

func (s *SearchService) searchProducts(businesses []directory.Business, query, category, location string) *SearchResponse {
	needle := strings.ToLower(query)
	hits := make([]ProductHit, 0)
	for i := range businesses {
		b := &businesses[i]
		if location != "" && b.Location != location {
			continue
		}
		for j := range b.Products {
			p := &b.Products[j]
			if !p.IsPublished {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
				continue
			}
			if category != "" && p.Category != category {
				continue
			}
			hits = append(hits, ProductHit{
				Product:      *ToProductResponse(p),
				BusinessID:   b.ID,
				BusinessName: b.Name,
				Location:     b.Location,
				Rating:       b.Rating,
			})
		}
	}
	return &SearchResponse{Mode: SearchModeProducts, Products: hits}
}

func (s *SearchService) searchBusinesses(businesses []directory.Business, query, location string) *SearchResponse {
	needle := strings.ToLower(query)
	matches := make([]BusinessResponse, 0)
	for i := range businesses {
		b := &businesses[i]
		if location != "" && b.Location != location {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(b.Name), needle) {
			continue
		}
		matches = append(matches, *ToBusinessResponse(b))
	}
	return &SearchResponse{Mode: SearchModeBusinesses, Businesses: matches}
}
