package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/domain"
)

// FavoriteStore persists bookmarks.
type FavoriteStore interface {
	ListFavorites(ctx context.Context, userID, itemType string) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, f domain.Favorite) error
	RemoveFavorite(ctx context.Context, userID, id string) error
}

// FavoriteService manages a user's bookmarked content.
type FavoriteService struct {
	store FavoriteStore
	nowFn func() time.Time
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(store FavoriteStore) *FavoriteService {
	return &FavoriteService{store: store, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *FavoriteService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// List returns favorites, optionally of a single item type.
func (s *FavoriteService) List(ctx context.Context, userID, itemType string) ([]domain.Favorite, error) {
	itemType = sanitizeString(itemType)
	if itemType != "" && !validItemType(itemType) {
		return nil, invalidf("type must be one of recipe, video, article")
	}
	return s.store.ListFavorites(ctx, userID, itemType)
}

// Add bookmarks an item. Bookmarking the same item twice is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID, itemType, itemID string) (domain.Favorite, error) {
	itemType = sanitizeString(itemType)
	itemID = sanitizeString(itemID)
	if itemType == "" || itemID == "" {
		return domain.Favorite{}, invalidf("itemType and itemId are required")
	}
	if !validItemType(itemType) {
		return domain.Favorite{}, invalidf("itemType must be one of recipe, video, article")
	}
	f := domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemType:  itemType,
		ItemID:    itemID,
		CreatedAt: s.nowFn().UTC(),
	}
	if err := s.store.AddFavorite(ctx, f); err != nil {
		return domain.Favorite{}, storeErr(err, "Already in favorites")
	}
	return f, nil
}

// Remove deletes a favorite owned by userID.
func (s *FavoriteService) Remove(ctx context.Context, userID, id string) error {
	return storeErr(s.store.RemoveFavorite(ctx, userID, id), "Favorite not found")
}

func validItemType(t string) bool {
	switch t {
	case domain.FavoriteRecipe, domain.FavoriteVideo, domain.FavoriteArticle:
		return true
	}
	return false
}
