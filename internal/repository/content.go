package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanshika/arivai/internal/domain"
)

// ListRecipes returns recipes matching filter ordered by title.
func (r *Repository) ListRecipes(ctx context.Context, filter domain.ContentFilter) ([]domain.Recipe, error) {
	query, args := withContentFilter(selectRecipesSQL, filter)
	rows, err := r.conn(ctx).QueryContext(ctx, query+` ORDER BY title`, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		var (
			rec         domain.Recipe
			ingredients string
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.ImageURL, &ingredients,
			&rec.Instructions, &rec.Phase, &rec.Category, &rec.PrepTime, &rec.Calories); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if rec.Ingredients, err = decodeStrings(ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients for recipe %s: %w", rec.ID, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// UpsertRecipe inserts or replaces a recipe by id.
func (r *Repository) UpsertRecipe(ctx context.Context, rec domain.Recipe) error {
	ingredients, err := encodeStrings(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients for recipe %s: %w", rec.ID, err)
	}
	_, err = r.conn(ctx).ExecContext(ctx, upsertRecipeSQL, rec.ID, rec.Title, rec.Description, rec.ImageURL,
		ingredients, rec.Instructions, rec.Phase, rec.Category, rec.PrepTime, rec.Calories)
	if err != nil {
		return fmt.Errorf("upsert recipe %s: %w", rec.ID, err)
	}
	return nil
}

// ListVideos returns meditation videos matching filter ordered by title.
func (r *Repository) ListVideos(ctx context.Context, filter domain.ContentFilter) ([]domain.MeditationVideo, error) {
	query, args := withContentFilter(selectVideosSQL, filter)
	rows, err := r.conn(ctx).QueryContext(ctx, query+` ORDER BY title`, args...)
	if err != nil {
		return nil, fmt.Errorf("list meditation videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.MeditationVideo{}
	for rows.Next() {
		var v domain.MeditationVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.ThumbnailURL,
			&v.Category, &v.DurationSeconds, &v.Phase); err != nil {
			return nil, fmt.Errorf("scan meditation video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// UpsertVideo inserts or replaces a meditation video by id.
func (r *Repository) UpsertVideo(ctx context.Context, v domain.MeditationVideo) error {
	_, err := r.conn(ctx).ExecContext(ctx, upsertVideoSQL, v.ID, v.Title, v.Description, v.URL, v.ThumbnailURL,
		v.Category, v.DurationSeconds, v.Phase)
	if err != nil {
		return fmt.Errorf("upsert meditation video %s: %w", v.ID, err)
	}
	return nil
}

// ListArticles returns educational content matching filter ordered by title.
func (r *Repository) ListArticles(ctx context.Context, filter domain.ContentFilter) ([]domain.Article, error) {
	query, args := withContentFilter(selectArticlesSQL, filter)
	rows, err := r.conn(ctx).QueryContext(ctx, query+` ORDER BY title`, args...)
	if err != nil {
		return nil, fmt.Errorf("list educational content: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.Body, &a.Category, &a.Phase, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("scan educational content: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// UpsertArticle inserts or replaces an article by id.
func (r *Repository) UpsertArticle(ctx context.Context, a domain.Article) error {
	_, err := r.conn(ctx).ExecContext(ctx, upsertArticleSQL, a.ID, a.Title, a.Summary, a.Body, a.Category, a.Phase, a.ImageURL)
	if err != nil {
		return fmt.Errorf("upsert educational content %s: %w", a.ID, err)
	}
	return nil
}

func withContentFilter(base string, filter domain.ContentFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, column+" = $"+strconv.Itoa(len(args)))
	}
	add("phase", filter.Phase)
	add("category", filter.Category)

	if len(clauses) == 0 {
		return base, nil
	}
	return base + " WHERE " + strings.Join(clauses, " AND "), args
}

const selectRecipesSQL = `
SELECT id, title, description, image_url, ingredients, instructions, phase, category, prep_time, calories
FROM recipes`

const upsertRecipeSQL = `
INSERT INTO recipes (id, title, description, image_url, ingredients, instructions, phase, category, prep_time, calories)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	image_url = excluded.image_url,
	ingredients = excluded.ingredients,
	instructions = excluded.instructions,
	phase = excluded.phase,
	category = excluded.category,
	prep_time = excluded.prep_time,
	calories = excluded.calories`

const selectVideosSQL = `
SELECT id, title, description, url, thumbnail_url, category, duration_seconds, phase
FROM meditation_videos`

const upsertVideoSQL = `
INSERT INTO meditation_videos (id, title, description, url, thumbnail_url, category, duration_seconds, phase)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	url = excluded.url,
	thumbnail_url = excluded.thumbnail_url,
	category = excluded.category,
	duration_seconds = excluded.duration_seconds,
	phase = excluded.phase`

const selectArticlesSQL = `
SELECT id, title, summary, body, category, phase, image_url
FROM educational_content`

const upsertArticleSQL = `
INSERT INTO educational_content (id, title, summary, body, category, phase, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	summary = excluded.summary,
	body = excluded.body,
	category = excluded.category,
	phase = excluded.phase,
	image_url = excluded.image_url`
