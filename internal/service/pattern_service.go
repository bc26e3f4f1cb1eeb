package service

import (
	"context"

	"github.com/vanshika/arivai/internal/domain"
)

// PatternSource computes symptom patterns, typically the symptom graph.
type PatternSource interface {
	Patterns(ctx context.Context, userID string, pairLimit int) (domain.SymptomPatterns, error)
}

// PatternService exposes graph-derived symptom patterns.
type PatternService struct {
	source PatternSource
}

// NewPatternService constructs a PatternService. source may be nil when no
// graph is configured; Patterns then reports ErrUnavailable.
func NewPatternService(source PatternSource) *PatternService {
	return &PatternService{source: source}
}

// Enabled reports whether a pattern source is configured.
func (s *PatternService) Enabled() bool {
	return s != nil && s.source != nil
}

// Patterns returns per-phase symptom counts and co-occurring pairs.
func (s *PatternService) Patterns(ctx context.Context, userID string, pairLimit int) (domain.SymptomPatterns, error) {
	if !s.Enabled() {
		return domain.SymptomPatterns{}, &Error{Kind: ErrUnavailable, Msg: "Symptom patterns are not available"}
	}
	return s.source.Patterns(ctx, userID, pairLimit)
}
