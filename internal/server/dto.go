package server

import (
	"encoding/json"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
	"github.com/vanshika/arivai/internal/service"
)

// optional records whether a JSON field was present and whether it was null,
// so PATCH-style requests can tell "absent" from "cleared".
type optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// --- Requests ---

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AvgCycleLength  *int   `json:"avgCycleLength"`
	AvgPeriodLength *int   `json:"avgPeriodLength"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type profileRequest struct {
	FirstName       optional[string] `json:"firstName"`
	LastName        optional[string] `json:"lastName"`
	DateOfBirth     optional[string] `json:"dateOfBirth"`
	AvgCycleLength  optional[int]    `json:"avgCycleLength"`
	AvgPeriodLength optional[int]    `json:"avgPeriodLength"`
	ProfileImageURL optional[string] `json:"profileImageUrl"`
}

type cycleRequest struct {
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	CycleLength  *int    `json:"cycleLength"`
	PeriodLength *int    `json:"periodLength"`
	Notes        *string `json:"notes"`
}

type cyclePatchRequest struct {
	StartDate    optional[string] `json:"startDate"`
	EndDate      optional[string] `json:"endDate"`
	CycleLength  optional[int]    `json:"cycleLength"`
	PeriodLength optional[int]    `json:"periodLength"`
	Notes        optional[string] `json:"notes"`
}

type symptomRequest struct {
	Date        string  `json:"date"`
	SymptomType string  `json:"symptomType"`
	Severity    *int    `json:"severity"`
	CycleID     string  `json:"cycleId"`
	Notes       *string `json:"notes"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type favoriteRequest struct {
	ItemType string `json:"itemType"`
	ItemID   string `json:"itemId"`
}

type onboardingRequest struct {
	LastPeriodDate     *string  `json:"lastPeriodDate"`
	TypicalCycleLength string   `json:"typicalCycleLength"`
	PeriodDuration     string   `json:"periodDuration"`
	CycleVariability   string   `json:"cycleVariability"`
	HealthConditions   []string `json:"healthConditions"`
	FertilityTracking  []string `json:"fertilityTracking"`
	TrackSymptoms      string   `json:"trackSymptoms"`
	DynamicPredictions string   `json:"dynamicPredictions"`
	StressLevel        string   `json:"stressLevel"`
	SleepPattern       string   `json:"sleepPattern"`
	HealthNotes        string   `json:"healthNotes"`
}

type pregnancyRequest struct {
	LMP string `json:"lmp"`
}

// --- Responses ---

type messageResponse struct {
	Message string `json:"message"`
}

type authUserResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AvgCycleLength  int    `json:"avgCycleLength"`
	AvgPeriodLength int    `json:"avgPeriodLength"`
}

type authResponse struct {
	Message      string           `json:"message"`
	User         authUserResponse `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type userResponse struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	DateOfBirth     *string           `json:"dateOfBirth"`
	AvgCycleLength  int               `json:"avgCycleLength"`
	AvgPeriodLength int               `json:"avgPeriodLength"`
	ProfileImageURL *string           `json:"profileImageUrl"`
	TelegramLinked  bool              `json:"telegramLinked"`
	Insights        *insightsResponse `json:"insights,omitempty"`
}

type pmsWindowResponse struct {
	StartDay int `json:"startDay"`
	EndDay   int `json:"endDay"`
}

type pregnancyResponse struct {
	IsPregnant bool    `json:"isPregnant"`
	Weeks      *int    `json:"weeks,omitempty"`
	Days       *int    `json:"days,omitempty"`
	DueDate    *string `json:"dueDate,omitempty"`
	Trimester  *int    `json:"trimester,omitempty"`
}

type menopauseResponse struct {
	PerimenopauseLikely bool `json:"perimenopauseLikely"`
	Menopause           bool `json:"menopause"`
}

type adviceResponse struct {
	Mood       string `json:"mood"`
	Nutrition  string `json:"nutrition"`
	Meditation string `json:"meditation"`
	Exercise   string `json:"exercise"`
}

type insightsResponse struct {
	CycleDay       int               `json:"cycleDay"`
	Phase          string            `json:"phase"`
	PMSWindow      pmsWindowResponse `json:"pmsWindow"`
	NextPeriodDate *string           `json:"nextPeriodDate"`
	OvulationDay   int               `json:"ovulationDay"`
	Pregnancy      pregnancyResponse `json:"pregnancy"`
	Menopause      menopauseResponse `json:"menopause"`
	DailyAdvice    adviceResponse    `json:"dailyAdvice"`
}

type cycleResponse struct {
	ID           string  `json:"id"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	CycleLength  *int    `json:"cycleLength"`
	PeriodLength *int    `json:"periodLength"`
	Notes        *string `json:"notes"`
}

type symptomResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	SymptomType string  `json:"symptomType"`
	Severity    int     `json:"severity"`
	CycleID     *string `json:"cycleId,omitempty"`
	Notes       *string `json:"notes"`
}

type phaseSymptomResponse struct {
	Phase       string  `json:"phase"`
	SymptomType string  `json:"symptomType"`
	Occurrences int64   `json:"occurrences"`
	AvgSeverity float64 `json:"avgSeverity"`
}

type symptomPairResponse struct {
	First    string `json:"first"`
	Second   string `json:"second"`
	Together int64  `json:"together"`
}

type patternsResponse struct {
	UserID       string                 `json:"userId"`
	ByPhase      []phaseSymptomResponse `json:"byPhase"`
	CoOccurrence []symptomPairResponse  `json:"coOccurrence"`
}

type chatMessageResponse struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	Content    string `json:"content"`
	CyclePhase string `json:"cyclePhase"`
	CreatedAt  string `json:"createdAt"`
}

type chatReplyResponse struct {
	Message string `json:"message"`
	Phase   string `json:"phase"`
}

type recipeResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Phase        string   `json:"phase"`
	Category     string   `json:"category"`
	PrepTime     int      `json:"prepTime"`
	Calories     int      `json:"calories"`
}

type videoResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	ThumbnailURL    string  `json:"thumbnailUrl"`
	Category        string  `json:"category"`
	DurationSeconds int     `json:"durationSeconds"`
	Phase           *string `json:"phase"`
}

type articleResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	Body     string  `json:"body"`
	Category string  `json:"category"`
	Phase    *string `json:"phase"`
	ImageURL string  `json:"imageUrl"`
}

type favoriteResponse struct {
	ID        string `json:"id"`
	ItemType  string `json:"itemType"`
	ItemID    string `json:"itemId"`
	CreatedAt string `json:"createdAt"`
}

type onboardingStatusResponse struct {
	IsCompleted bool `json:"isCompleted"`
}

type onboardingResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	LastPeriodDate     *string  `json:"lastPeriodDate"`
	TypicalCycleLength string   `json:"typicalCycleLength"`
	PeriodDuration     string   `json:"periodDuration"`
	CycleVariability   string   `json:"cycleVariability"`
	HealthConditions   []string `json:"healthConditions"`
	FertilityTracking  []string `json:"fertilityTracking"`
	TrackSymptoms      string   `json:"trackSymptoms"`
	DynamicPredictions string   `json:"dynamicPredictions"`
	StressLevel        string   `json:"stressLevel"`
	SleepPattern       string   `json:"sleepPattern"`
	HealthNotes        string   `json:"healthNotes"`
	ProfileMode        string   `json:"profileMode"`
	IsIrregular        bool     `json:"isIrregular"`
	ShowBufferDays     bool     `json:"showBufferDays"`
	IsCompleted        bool     `json:"isCompleted"`
	CompletedAt        *string  `json:"completedAt"`
}

type onboardingSavedResponse struct {
	Message        string `json:"message"`
	IsCompleted    bool   `json:"isCompleted"`
	ProfileMode    string `json:"profileMode"`
	IsIrregular    bool   `json:"isIrregular"`
	ShowBufferDays bool   `json:"showBufferDays"`
}

type exportResponse struct {
	User        userResponse      `json:"user"`
	Cycles      []cycleResponse   `json:"cycles"`
	Symptoms    []symptomResponse `json:"symptoms"`
	GeneratedAt string            `json:"generatedAt"`
}

type telegramLinkResponse struct {
	Deeplink string `json:"deeplink"`
}

// --- Conversions ---

func toAuthResponse(msg string, res service.AuthResult) authResponse {
	return authResponse{
		Message: msg,
		User: authUserResponse{
			ID:              res.User.ID,
			Email:           res.User.Email,
			FirstName:       res.User.FirstName,
			LastName:        res.User.LastName,
			AvgCycleLength:  res.User.AvgCycleLength,
			AvgPeriodLength: res.User.AvgPeriodLength,
		},
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		DateOfBirth:     formatDatePtr(u.DateOfBirth),
		AvgCycleLength:  u.AvgCycleLength,
		AvgPeriodLength: u.AvgPeriodLength,
		ProfileImageURL: nullableString(u.ProfileImageURL),
		TelegramLinked:  u.TelegramChatID != nil,
	}
}

func toInsightsResponse(in cycle.Insights) insightsResponse {
	return insightsResponse{
		CycleDay:       in.CycleDay,
		Phase:          string(in.Phase),
		PMSWindow:      pmsWindowResponse{StartDay: in.PMSWindow.StartDay, EndDay: in.PMSWindow.EndDay},
		NextPeriodDate: formatDatePtr(in.NextPeriodDate),
		OvulationDay:   in.OvulationDay,
		Pregnancy:      toPregnancyResponse(in.Pregnancy),
		Menopause: menopauseResponse{
			PerimenopauseLikely: in.Menopause.PerimenopauseLikely,
			Menopause:           in.Menopause.Menopause,
		},
		DailyAdvice: adviceResponse{
			Mood:       in.DailyAdvice.Mood,
			Nutrition:  in.DailyAdvice.Nutrition,
			Meditation: in.DailyAdvice.Meditation,
			Exercise:   in.DailyAdvice.Exercise,
		},
	}
}

func toPregnancyResponse(p cycle.Pregnancy) pregnancyResponse {
	if !p.IsPregnant {
		return pregnancyResponse{}
	}
	due := cycle.FormatDate(p.DueDate)
	return pregnancyResponse{
		IsPregnant: true,
		Weeks:      &p.Weeks,
		Days:       &p.Days,
		DueDate:    &due,
		Trimester:  &p.Trimester,
	}
}

func toCycleResponse(c domain.Cycle) cycleResponse {
	return cycleResponse{
		ID:           c.ID,
		StartDate:    cycle.FormatDate(c.StartDate),
		EndDate:      formatDatePtr(c.EndDate),
		CycleLength:  c.CycleLength,
		PeriodLength: c.PeriodLength,
		Notes:        nullableString(c.Notes),
	}
}

func toCycleResponses(cycles []domain.Cycle) []cycleResponse {
	out := make([]cycleResponse, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, toCycleResponse(c))
	}
	return out
}

func toSymptomResponse(s domain.Symptom) symptomResponse {
	return symptomResponse{
		ID:          s.ID,
		Date:        cycle.FormatDate(s.Date),
		SymptomType: s.SymptomType,
		Severity:    s.Severity,
		CycleID:     nullableString(s.CycleID),
		Notes:       nullableString(s.Notes),
	}
}

func toSymptomResponses(symptoms []domain.Symptom) []symptomResponse {
	out := make([]symptomResponse, 0, len(symptoms))
	for _, s := range symptoms {
		out = append(out, toSymptomResponse(s))
	}
	return out
}

func toPatternsResponse(p domain.SymptomPatterns) patternsResponse {
	resp := patternsResponse{
		UserID:       p.UserID,
		ByPhase:      make([]phaseSymptomResponse, 0, len(p.ByPhase)),
		CoOccurrence: make([]symptomPairResponse, 0, len(p.CoOccurrence)),
	}
	for _, row := range p.ByPhase {
		resp.ByPhase = append(resp.ByPhase, phaseSymptomResponse{
			Phase:       row.Phase,
			SymptomType: row.SymptomType,
			Occurrences: row.Occurrences,
			AvgSeverity: row.AvgSeverity,
		})
	}
	for _, pair := range p.CoOccurrence {
		resp.CoOccurrence = append(resp.CoOccurrence, symptomPairResponse{
			First:    pair.First,
			Second:   pair.Second,
			Together: pair.Together,
		})
	}
	return resp
}

func toOnboardingResponse(o domain.Onboarding) onboardingResponse {
	return onboardingResponse{
		ID:                 o.ID,
		UserID:             o.UserID,
		LastPeriodDate:     formatDatePtr(o.LastPeriodDate),
		TypicalCycleLength: o.TypicalCycleLength,
		PeriodDuration:     o.PeriodDuration,
		CycleVariability:   o.CycleVariability,
		HealthConditions:   nonNilStrings(o.HealthConditions),
		FertilityTracking:  nonNilStrings(o.FertilityTracking),
		TrackSymptoms:      o.TrackSymptoms,
		DynamicPredictions: o.DynamicPredictions,
		StressLevel:        o.StressLevel,
		SleepPattern:       o.SleepPattern,
		HealthNotes:        o.HealthNotes,
		ProfileMode:        o.ProfileMode,
		IsIrregular:        o.IsIrregular,
		ShowBufferDays:     o.ShowBufferDays,
		IsCompleted:        o.IsCompleted,
		CompletedAt:        formatTimePtr(o.CompletedAt),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := cycle.FormatDate(*t)
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(ts *time.Time) *string {
	if ts == nil || ts.IsZero() {
		return nil
	}
	s := ts.UTC().Format(time.RFC3339)
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
