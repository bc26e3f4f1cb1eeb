package server

import (
	"net/http"

	"github.com/vanshika/arivai/internal/domain"
)

func contentFilter(r *http.Request) domain.ContentFilter {
	q := r.URL.Query()
	return domain.ContentFilter{Phase: q.Get("phase"), Category: q.Get("category")}
}

func (h *APIHandlers) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.Content.Recipes(r.Context(), contentFilter(r))
	if err != nil {
		h.fail(w, r, err, "list recipes")
		return
	}
	resp := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		resp = append(resp, recipeResponse{
			ID:           rec.ID,
			Title:        rec.Title,
			Description:  rec.Description,
			ImageURL:     rec.ImageURL,
			Ingredients:  nonNilStrings(rec.Ingredients),
			Instructions: rec.Instructions,
			Phase:        rec.Phase,
			Category:     rec.Category,
			PrepTime:     rec.PrepTime,
			Calories:     rec.Calories,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) listVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.Content.Videos(r.Context(), contentFilter(r))
	if err != nil {
		h.fail(w, r, err, "list meditation videos")
		return
	}
	resp := make([]videoResponse, 0, len(videos))
	for _, v := range videos {
		resp = append(resp, videoResponse{
			ID:              v.ID,
			Title:           v.Title,
			Description:     v.Description,
			URL:             v.URL,
			ThumbnailURL:    v.ThumbnailURL,
			Category:        v.Category,
			DurationSeconds: v.DurationSeconds,
			Phase:           nullableString(v.Phase),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) listArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.Content.Articles(r.Context(), contentFilter(r))
	if err != nil {
		h.fail(w, r, err, "list educational content")
		return
	}
	resp := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, articleResponse{
			ID:       a.ID,
			Title:    a.Title,
			Summary:  a.Summary,
			Body:     a.Body,
			Category: a.Category,
			Phase:    nullableString(a.Phase),
			ImageURL: a.ImageURL,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.svc.Favorites.List(r.Context(), currentUserID(r), r.URL.Query().Get("type"))
	if err != nil {
		h.fail(w, r, err, "list favorites")
		return
	}
	resp := make([]favoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		resp = append(resp, toFavoriteResponse(f))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	var payload favoriteRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, err := h.svc.Favorites.Add(r.Context(), currentUserID(r), payload.ItemType, payload.ItemID)
	if err != nil {
		h.fail(w, r, err, "add favorite")
		return
	}
	respondJSON(w, http.StatusCreated, toFavoriteResponse(f))
}

func (h *APIHandlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Favorites.Remove(r.Context(), currentUserID(r), pathParam(r, "id")); err != nil {
		h.fail(w, r, err, "remove favorite")
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Favorite removed"})
}

func toFavoriteResponse(f domain.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:        f.ID,
		ItemType:  f.ItemType,
		ItemID:    f.ItemID,
		CreatedAt: formatTime(f.CreatedAt),
	}
}
