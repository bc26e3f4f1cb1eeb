package domain

import "time"

// Favorite item types.
const (
	FavoriteRecipe  = "recipe"
	FavoriteVideo   = "video"
	FavoriteArticle = "article"
)

// Favorite bookmarks a content item for a user.
type Favorite struct {
	ID        string
	UserID    string
	ItemType  string
	ItemID    string
	CreatedAt time.Time
}
