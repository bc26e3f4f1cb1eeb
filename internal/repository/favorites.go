package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/arivai/internal/domain"
)

// ListFavorites returns a user's favorites, optionally restricted to one item type.
func (r *Repository) ListFavorites(ctx context.Context, userID, itemType string) ([]domain.Favorite, error) {
	query := selectFavoritesSQL
	args := []any{userID}
	if itemType != "" {
		query += ` AND item_type = $2`
		args = append(args, itemType)
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var (
			f         domain.Favorite
			createdAt nullTime
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.ItemType, &f.ItemID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.CreatedAt = createdAt.Time
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// AddFavorite stores a favorite. Bookmarking the same item twice returns ErrDuplicate.
func (r *Repository) AddFavorite(ctx context.Context, f domain.Favorite) error {
	if f.ID == "" || f.UserID == "" {
		return errors.New("favorite id and user id are required")
	}
	_, err := r.conn(ctx).ExecContext(ctx, insertFavoriteSQL, f.ID, f.UserID, f.ItemType, f.ItemID, f.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert favorite %s: %w", f.ID, err)
	}
	return nil
}

// RemoveFavorite deletes a favorite owned by userID.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, id string) error {
	res, err := r.conn(ctx).ExecContext(ctx, deleteFavoriteSQL, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite %s: %w", id, err)
	}
	return expectAffected(res)
}

const selectFavoritesSQL = `
SELECT id, user_id, item_type, item_id, created_at
FROM favorites
WHERE user_id = $1`

const insertFavoriteSQL = `
INSERT INTO favorites (id, user_id, item_type, item_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

const deleteFavoriteSQL = `DELETE FROM favorites WHERE id = $1 AND user_id = $2`
