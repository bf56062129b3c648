package services

import (
	"context"
	"strings"

	"ecohaven_backend/internal/models"
	"ecohaven_backend/internal/repositories"
)

const searchLimit = 10

type SearchService interface {
	Search(ctx context.Context, term string) (*models.SearchResult, error)
}

type searchService struct {
	eventRepo   repositories.EventRepository
	productRepo repositories.ProductRepository
}

func NewSearchService(eventRepo repositories.EventRepository, productRepo repositories.ProductRepository) SearchService {
	return &searchService{eventRepo: eventRepo, productRepo: productRepo}
}

// Search matches events and products case-insensitively. A blank term
// returns empty groups.
func (s *searchService) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	result := &models.SearchResult{Events: []models.Event{}, Products: []models.ProductDetail{}}
	term = strings.TrimSpace(term)
	if term == "" {
		return result, nil
	}
	events, err := s.eventRepo.SearchEvents(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.SearchProducts(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	result.Events, result.Products = events, products
	return result, nil
}
