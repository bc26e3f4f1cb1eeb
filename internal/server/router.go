package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vanshika/arivai/internal/auth"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	Tokens           *auth.TokenManager
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the ARIVAI API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		logger.Error("handler panic", "path", r.URL.Path, "panic", v)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}

	router.HandlerFunc(http.MethodGet, "/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}

		if deps.Health != nil {
			if err := deps.Health.Check(ctx); err != nil {
				logger.Error("health check failed", "error", err)
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}

		respondJSON(w, status, payload)
	})
	router.HandlerFunc(http.MethodGet, "/api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "ARIVAI API"})
	})

	if api := deps.API; api != nil {
		public := func(method, path string, h http.HandlerFunc) {
			router.Handler(method, path, h)
		}
		private := func(method, path string, h http.HandlerFunc) {
			router.Handler(method, path, deps.Tokens.Middleware(h))
		}

		public(http.MethodPost, "/api/auth/register", api.register)
		public(http.MethodPost, "/api/auth/login", api.login)
		public(http.MethodPost, "/api/auth/refresh", api.refresh)
		public(http.MethodPost, "/api/telegram/webhook", api.telegramWebhook)

		private(http.MethodPost, "/api/auth/logout", api.logout)
		private(http.MethodGet, "/api/auth/user", api.currentUser)
		private(http.MethodPatch, "/api/user/profile", api.updateProfile)

		private(http.MethodGet, "/api/cycles", api.listCycles)
		private(http.MethodPost, "/api/cycles", api.createCycle)
		private(http.MethodPut, "/api/cycles/:id", api.updateCycle)
		private(http.MethodGet, "/api/symptoms", api.listSymptoms)
		private(http.MethodPost, "/api/symptoms", api.createSymptom)
		private(http.MethodGet, "/api/symptoms/patterns", api.symptomPatterns)

		private(http.MethodGet, "/api/chat", api.chatHistory)
		private(http.MethodPost, "/api/chat", api.sendChat)
		private(http.MethodGet, "/api/chat/greeting", api.chatGreeting)

		private(http.MethodGet, "/api/recipes", api.listRecipes)
		private(http.MethodGet, "/api/meditation-videos", api.listVideos)
		private(http.MethodGet, "/api/educational-content", api.listArticles)
		private(http.MethodGet, "/api/favorites", api.listFavorites)
		private(http.MethodPost, "/api/favorites", api.addFavorite)
		private(http.MethodDelete, "/api/favorites/:id", api.removeFavorite)

		private(http.MethodGet, "/api/insights", api.insights)
		private(http.MethodGet, "/api/onboarding", api.getOnboarding)
		private(http.MethodPost, "/api/onboarding", api.saveOnboarding)
		private(http.MethodPost, "/api/pregnancy/calculate", api.calculatePregnancy)
		private(http.MethodGet, "/api/export", api.export)
		private(http.MethodPost, "/api/telegram/link", api.createTelegramLink)
	}

	handler := http.Handler(loggingMiddleware(logger, router))
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials)(handler)
	}
	return handler
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || (!containsOrigin(normalized, origin) && !containsOrigin(normalized, "*")) {
				if r.Method == http.MethodOptions {
					// Reject bare pre-flight if origin is not whitelisted.
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsOrigin(set map[string]struct{}, origin string) bool {
	_, ok := set[origin]
	return ok
}
