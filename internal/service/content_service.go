package service

import (
	"context"

	"github.com/vanshika/arivai/internal/catalog"
	"github.com/vanshika/arivai/internal/domain"
)

// ContentStore lists stored wellness content.
type ContentStore interface {
	ListRecipes(ctx context.Context, filter domain.ContentFilter) ([]domain.Recipe, error)
	ListVideos(ctx context.Context, filter domain.ContentFilter) ([]domain.MeditationVideo, error)
	ListArticles(ctx context.Context, filter domain.ContentFilter) ([]domain.Article, error)
}

// ContentService serves recipes, meditation videos and articles, falling
// back to the built-in catalog when the store has nothing matching.
type ContentService struct {
	store    ContentStore
	fallback catalog.Catalog
}

// NewContentService constructs a ContentService.
func NewContentService(store ContentStore, fallback catalog.Catalog) *ContentService {
	return &ContentService{store: store, fallback: fallback}
}

// Recipes lists recipes by phase and category.
func (s *ContentService) Recipes(ctx context.Context, filter domain.ContentFilter) ([]domain.Recipe, error) {
	filter = cleanFilter(filter)
	items, err := s.store.ListRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.fallback.RecipesFor(filter.Phase), nil
	}
	return items, nil
}

// Videos lists meditation videos by phase and category.
func (s *ContentService) Videos(ctx context.Context, filter domain.ContentFilter) ([]domain.MeditationVideo, error) {
	filter = cleanFilter(filter)
	items, err := s.store.ListVideos(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.fallback.VideosFor(filter.Phase), nil
	}
	return items, nil
}

// Articles lists educational articles by category and phase.
func (s *ContentService) Articles(ctx context.Context, filter domain.ContentFilter) ([]domain.Article, error) {
	filter = cleanFilter(filter)
	items, err := s.store.ListArticles(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.fallback.ArticlesFor(filter.Category), nil
	}
	return items, nil
}

func cleanFilter(f domain.ContentFilter) domain.ContentFilter {
	return domain.ContentFilter{
		Phase:    sanitizeString(f.Phase),
		Category: sanitizeString(f.Category),
	}
}
