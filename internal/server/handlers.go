package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/reminder"
	"github.com/vanshika/arivai/internal/service"
)

// Services bundles the application services exposed over HTTP.
type Services struct {
	Auth       *service.AuthService
	Profile    *service.ProfileService
	Insights   *service.InsightsService
	Cycles     *service.CycleService
	Patterns   *service.PatternService
	Chat       *service.ChatService
	Content    *service.ContentService
	Favorites  *service.FavoriteService
	Onboarding *service.OnboardingService
	Export     *service.ExportService
	Telegram   *service.TelegramLinkService

	// BotReplies answers webhook messages; nil disables replies.
	BotReplies    reminder.Notifier
	WebhookSecret string
}

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger *slog.Logger
	svc    Services
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc Services) *APIHandlers {
	return &APIHandlers{
		logger: logger,
		svc:    svc,
	}
}

// fail maps service errors onto HTTP statuses. Unexpected errors are logged
// and reported with a generic message.
func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "action", action, "error", err, "path", r.URL.Path)
		writeError(w, status, "failed to "+action)
		return
	}

	msg := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		msg = svcErr.Msg
	}
	writeError(w, status, msg)
}

func currentUserID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

var errBodyRequired = errors.New("request body is required")

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errBodyRequired
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errBodyRequired
		}
		return err
	}
	return nil
}

// parseDate parses an optional calendar date field. Empty values yield nil.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := cycle.ParseDate(value)
	if err != nil {
		return nil, errors.New("invalid " + field)
	}
	d = cycle.DateOnly(d)
	return &d, nil
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
