package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/catalog"
	"github.com/vanshika/arivai/internal/repository"
	"github.com/vanshika/arivai/internal/repository/repotest"
	"github.com/vanshika/arivai/internal/reminder"
	"github.com/vanshika/arivai/internal/service"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingBot struct {
	mu      sync.Mutex
	replies map[int64][]string
}

func (b *recordingBot) Notify(_ context.Context, chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.replies == nil {
		b.replies = map[int64][]string{}
	}
	b.replies[chatID] = append(b.replies[chatID], text)
	return nil
}

type testAPI struct {
	handler http.Handler
	repo    *repository.Repository
	bot     *recordingBot
}

func newTestAPI(t *testing.T, health HealthService) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repotest.New(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	insights := service.NewInsightsService(repo, time.UTC)
	insights.WithClock(fixedClock)
	cycles := service.NewCycleService(repo, nil, logger)
	cycles.WithClock(fixedClock)
	chat := service.NewChatService(repo, insights, nil, 0, logger)
	chat.WithClock(fixedClock)
	exporter := service.NewExportService(repo)
	exporter.WithClock(fixedClock)
	bot := &recordingBot{}

	api := NewAPIHandlers(logger, Services{
		Auth:          service.NewAuthService(repo, auth.NewHasher(4), tokens),
		Profile:       service.NewProfileService(repo, insights),
		Insights:      insights,
		Cycles:        cycles,
		Patterns:      service.NewPatternService(nil),
		Chat:          chat,
		Content:       service.NewContentService(repo, catalog.MustDefault()),
		Favorites:     service.NewFavoriteService(repo),
		Onboarding:    service.NewOnboardingService(repo),
		Export:        exporter,
		Telegram:      service.NewTelegramLinkService(repo, "arivai_bot"),
		BotReplies:    bot,
		WebhookSecret: "hook-secret",
	})
	handler := NewRouter(logger, RouterDependencies{
		Health:         health,
		API:            api,
		Tokens:         tokens,
		AllowedOrigins: []string{"https://app.arivai.test"},
	})
	return &testAPI{handler: handler, repo: repo, bot: bot}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, email string) authResponse {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":     email,
		"password":  "secret-pass",
		"firstName": "Asha",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp authResponse
	decodeBody(t, rec, &resp)
	return resp
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	decodeBody(t, rec, &payload)
	return payload["error"]
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	reg := api.register(t, "Asha@Example.com")
	if reg.Message != "Registration successful" || reg.User.Email != "asha@example.com" {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{"email": "asha@example.com", "password": "secret-pass"})
	if rec.Code != http.StatusBadRequest || errorMessage(t, rec) != "Email already registered" {
		t.Fatalf("expected duplicate registration to fail with 400, got %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "asha@example.com", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "Invalid email or password" {
		t.Fatalf("expected 401 for bad password, got %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "asha@example.com", Password: "secret-pass"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d", rec.Code)
	}
	var login authResponse
	decodeBody(t, rec, &login)

	rec = api.do(t, http.MethodPost, "/api/auth/refresh", login.RefreshToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected refresh via bearer to succeed, got %d %s", rec.Code, rec.Body.String())
	}
	rec = api.do(t, http.MethodPost, "/api/auth/refresh", "", refreshRequest{RefreshToken: login.AccessToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("access token must not refresh, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/auth/user", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected current user, got %d", rec.Code)
	}
	var me userResponse
	decodeBody(t, rec, &me)
	if me.Insights == nil || me.Insights.Phase != "Follicular" || me.Insights.CycleDay != 1 {
		t.Fatalf("expected baseline insights, got %+v", me.Insights)
	}
	if me.Insights.NextPeriodDate != nil {
		t.Fatalf("expected no next period without cycles, got %v", *me.Insights.NextPeriodDate)
	}

	rec = api.do(t, http.MethodPost, "/api/auth/logout", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected logout 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, nil)
	for _, path := range []string{"/api/insights", "/api/cycles", "/api/export"} {
		rec := api.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
	rec := api.do(t, http.MethodGet, "/api/insights", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
}

func TestCyclesAndInsights(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "cycles@example.com").AccessToken

	rec := api.do(t, http.MethodPost, "/api/cycles", token, map[string]any{"startDate": "2024-02-01", "cycleLength": 29})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	rec = api.do(t, http.MethodPost, "/api/cycles", token, map[string]any{"startDate": "2024-03-01", "notes": "light"})
	var created cycleResponse
	decodeBody(t, rec, &created)

	rec = api.do(t, http.MethodPut, "/api/cycles/"+created.ID, token, map[string]any{"endDate": "2024-03-05", "notes": nil})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected update 200, got %d %s", rec.Code, rec.Body.String())
	}
	var updated cycleResponse
	decodeBody(t, rec, &updated)
	if updated.EndDate == nil || *updated.EndDate != "2024-03-05" {
		t.Fatalf("expected end date set, got %+v", updated)
	}

	rec = api.do(t, http.MethodPut, "/api/cycles/missing", token, map[string]any{"notes": "x"})
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Cycle not found" {
		t.Fatalf("expected 404 for unknown cycle, got %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/cycles", token, nil)
	var cycles []cycleResponse
	decodeBody(t, rec, &cycles)
	if len(cycles) != 2 || cycles[0].StartDate != "2024-03-01" {
		t.Fatalf("expected newest cycle first, got %+v", cycles)
	}

	rec = api.do(t, http.MethodGet, "/api/insights", token, nil)
	var insights insightsResponse
	decodeBody(t, rec, &insights)
	if insights.CycleDay != 10 || insights.Phase != "Follicular" {
		t.Fatalf("unexpected insights: %+v", insights)
	}
	if insights.NextPeriodDate == nil || *insights.NextPeriodDate != "2024-03-29" {
		t.Fatalf("unexpected next period: %v", insights.NextPeriodDate)
	}
	if insights.PMSWindow != (pmsWindowResponse{StartDay: 21, EndDay: 27}) || insights.OvulationDay != 14 {
		t.Fatalf("unexpected windows: %+v", insights)
	}
}

func TestSymptomsAndPatterns(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "symptoms@example.com").AccessToken

	rec := api.do(t, http.MethodPost, "/api/symptoms", token, map[string]any{"date": "2024-03-09", "symptomType": "Breast Tenderness", "severity": 3})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var sym symptomResponse
	decodeBody(t, rec, &sym)
	if sym.SymptomType != "breast_tenderness" || sym.Severity != 3 {
		t.Fatalf("unexpected symptom: %+v", sym)
	}

	rec = api.do(t, http.MethodPost, "/api/symptoms", token, map[string]any{"symptomType": "cramps", "severity": 9})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for severity out of range, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/symptoms?date=2024-03-09", token, nil)
	var symptoms []symptomResponse
	decodeBody(t, rec, &symptoms)
	if len(symptoms) != 1 {
		t.Fatalf("expected 1 symptom on date, got %d", len(symptoms))
	}

	rec = api.do(t, http.MethodGet, "/api/symptoms?date=yesterday", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/symptoms/patterns", token, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a graph, got %d", rec.Code)
	}
}

func TestChatWithoutModel(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "chat@example.com").AccessToken

	rec := api.do(t, http.MethodPost, "/api/chat", token, chatRequest{Message: "How should I eat today?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var reply chatReplyResponse
	decodeBody(t, rec, &reply)
	if reply.Phase != "Follicular" || !strings.Contains(reply.Message, "Follicular phase") {
		t.Fatalf("expected fallback reply, got %+v", reply)
	}

	rec = api.do(t, http.MethodGet, "/api/chat", token, nil)
	var history []chatMessageResponse
	decodeBody(t, rec, &history)
	if len(history) != 2 || history[0].Role != "user" || history[1].Role != "assistant" {
		t.Fatalf("unexpected history: %+v", history)
	}

	rec = api.do(t, http.MethodPost, "/api/chat", token, chatRequest{Message: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/chat/greeting", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected greeting, got %d", rec.Code)
	}
}

func TestContentAndFavorites(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "content@example.com").AccessToken

	rec := api.do(t, http.MethodGet, "/api/recipes?phase=Menstrual", token, nil)
	var recipes []recipeResponse
	decodeBody(t, rec, &recipes)
	if len(recipes) == 0 {
		t.Fatal("expected catalog recipes")
	}
	for _, r := range recipes {
		if r.Phase != "Menstrual" {
			t.Fatalf("unexpected recipe phase %q", r.Phase)
		}
	}

	rec = api.do(t, http.MethodGet, "/api/meditation-videos", token, nil)
	var videos []videoResponse
	decodeBody(t, rec, &videos)
	if len(videos) == 0 {
		t.Fatal("expected catalog videos")
	}

	rec = api.do(t, http.MethodGet, "/api/educational-content?category=pms", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected articles, got %d", rec.Code)
	}

	fav := favoriteRequest{ItemType: "recipe", ItemID: recipes[0].ID}
	rec = api.do(t, http.MethodPost, "/api/favorites", token, fav)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var created favoriteResponse
	decodeBody(t, rec, &created)

	rec = api.do(t, http.MethodPost, "/api/favorites", token, fav)
	if rec.Code != http.StatusBadRequest || errorMessage(t, rec) != "Already in favorites" {
		t.Fatalf("expected duplicate favorite rejected, got %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/favorites?type=video", token, nil)
	var none []favoriteResponse
	decodeBody(t, rec, &none)
	if len(none) != 0 {
		t.Fatalf("expected no video favorites, got %d", len(none))
	}

	rec = api.do(t, http.MethodDelete, "/api/favorites/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected delete 200, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodDelete, "/api/favorites/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound || errorMessage(t, rec) != "Favorite not found" {
		t.Fatalf("expected 404 on second delete, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestOnboarding(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "onboarding@example.com").AccessToken

	rec := api.do(t, http.MethodGet, "/api/onboarding", token, nil)
	if strings.TrimSpace(rec.Body.String()) != `{"isCompleted":false}` {
		t.Fatalf("expected incomplete onboarding, got %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/onboarding", token, map[string]any{
		"lastPeriodDate":     "2024-03-01",
		"typicalCycleLength": "31-35",
		"periodDuration":     "2-4",
		"healthConditions":   []string{"pcos"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	var saved onboardingSavedResponse
	decodeBody(t, rec, &saved)
	if saved.ProfileMode != "irregular" || !saved.IsIrregular || !saved.ShowBufferDays {
		t.Fatalf("unexpected derived settings: %+v", saved)
	}

	rec = api.do(t, http.MethodGet, "/api/onboarding", token, nil)
	var got onboardingResponse
	decodeBody(t, rec, &got)
	if got.LastPeriodDate == nil || *got.LastPeriodDate != "2024-03-01" || got.DynamicPredictions != "yes" {
		t.Fatalf("unexpected onboarding: %+v", got)
	}

	rec = api.do(t, http.MethodGet, "/api/insights", token, nil)
	var insights insightsResponse
	decodeBody(t, rec, &insights)
	if insights.OvulationDay != 19 || insights.CycleDay != 10 {
		t.Fatalf("expected insights from onboarding answers, got %+v", insights)
	}
}

func TestProfileAndPregnancy(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "profile@example.com").AccessToken

	rec := api.do(t, http.MethodPatch, "/api/user/profile", token, map[string]any{"lastName": "Rao", "dateOfBirth": "1980-05-01", "avgCycleLength": 30})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var user userResponse
	decodeBody(t, rec, &user)
	if user.LastName != "Rao" || user.DateOfBirth == nil || user.AvgCycleLength != 30 || user.FirstName != "Asha" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	rec = api.do(t, http.MethodPatch, "/api/user/profile", token, map[string]any{"dateOfBirth": nil})
	decodeBody(t, rec, &user)
	if user.DateOfBirth != nil {
		t.Fatalf("expected date of birth cleared, got %v", *user.DateOfBirth)
	}

	rec = api.do(t, http.MethodPatch, "/api/user/profile", token, map[string]any{"avgCycleLength": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero cycle length, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/pregnancy/calculate", token, pregnancyRequest{LMP: "2024-01-01"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var p pregnancyResponse
	decodeBody(t, rec, &p)
	if !p.IsPregnant || *p.Weeks != 9 || *p.Days != 6 || *p.DueDate != "2024-10-07" || *p.Trimester != 1 {
		t.Fatalf("unexpected pregnancy timeline: %+v", p)
	}

	rec = api.do(t, http.MethodPost, "/api/pregnancy/calculate", token, pregnancyRequest{LMP: "2024-04-01"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for future lmp, got %d", rec.Code)
	}
}

func TestExportCSV(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "export@example.com").AccessToken
	api.do(t, http.MethodPost, "/api/cycles", token, map[string]any{"startDate": "2024-03-01"})
	api.do(t, http.MethodPost, "/api/symptoms", token, map[string]any{"date": "2024-03-02", "symptomType": "cramps"})

	rec := api.do(t, http.MethodGet, "/api/export?format=csv", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv content type, got %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "arivai-export-2024-03-10.csv") {
		t.Fatalf("unexpected content disposition %q", cd)
	}

	r := csv.NewReader(bytes.NewReader(rec.Body.Bytes()))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (header + cycle + symptom), got %d", len(records))
	}

	rec = api.do(t, http.MethodGet, "/api/export", token, nil)
	var exp exportResponse
	decodeBody(t, rec, &exp)
	if exp.User.Email != "export@example.com" || len(exp.Cycles) != 1 || len(exp.Symptoms) != 1 {
		t.Fatalf("unexpected json export: %+v", exp)
	}

	rec = api.do(t, http.MethodGet, "/api/export?format=xml", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestTelegramLinkAndWebhook(t *testing.T) {
	api := newTestAPI(t, nil)
	reg := api.register(t, "bot@example.com")

	rec := api.do(t, http.MethodPost, "/api/telegram/link", reg.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected link, got %d %s", rec.Code, rec.Body.String())
	}
	var link telegramLinkResponse
	decodeBody(t, rec, &link)
	token := link.Deeplink[strings.Index(link.Deeplink, "start=")+len("start="):]

	webhook := func(secret, text string) *httptest.ResponseRecorder {
		body := `{"update_id":1,"message":{"text":"` + text + `","chat":{"id":777,"type":"private"},"from":{"id":5}}}`
		req := httptest.NewRequest(http.MethodPost, "/api/telegram/webhook", strings.NewReader(body))
		req.Header.Set(telegramSecretHeader, secret)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := webhook("wrong", "/start "+token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad secret, got %d", rec.Code)
	}
	if rec := webhook("hook-secret", "/start "+token); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	webhook("hook-secret", "/start "+token)
	webhook("hook-secret", "hello")

	want := []string{reminder.LinkedReply, reminder.InvalidReply, reminder.UsageReply}
	got := api.bot.replies[777]
	if len(got) != len(want) {
		t.Fatalf("expected %d replies, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reply %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	rec = api.do(t, http.MethodGet, "/api/auth/user", reg.AccessToken, nil)
	var me userResponse
	decodeBody(t, rec, &me)
	if !me.TelegramLinked {
		t.Fatal("expected user to be linked to telegram")
	}
}

type checkFunc func(ctx context.Context) error

func (f checkFunc) Check(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	healthy := newTestAPI(t, CompositeHealth{{Name: "database", Check: checkFunc(func(context.Context) error { return nil })}})
	rec := healthy.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", rec.Code)
	}

	degraded := newTestAPI(t, CompositeHealth{
		{Name: "database", Check: checkFunc(func(context.Context) error { return nil })},
		{Name: "graph", Check: checkFunc(func(context.Context) error { return errors.New("bolt refused") })},
	})
	rec = degraded.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var payload map[string]string
	decodeBody(t, rec, &payload)
	if payload["status"] != "degraded" || payload["error"] != "graph: bolt refused" {
		t.Fatalf("unexpected payload: %v", payload)
	}

	rec = degraded.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /api/health to stay up, got %d", rec.Code)
	}
}

func TestCORSAndRouting(t *testing.T) {
	api := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/cycles", nil)
	req.Header.Set("Origin", "https://app.arivai.test")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "https://app.arivai.test" {
		t.Fatalf("expected preflight to succeed, got %d %v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/cycles", nil)
	req.Header.Set("Origin", "https://evil.test")
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected foreign preflight rejected, got %d", rec.Code)
	}

	if rec := api.do(t, http.MethodGet, "/api/nope", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodDelete, "/api/insights", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
