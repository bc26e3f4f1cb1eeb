package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged;
// ClearDateOfBirth removes a stored date of birth.
type ProfileUpdate struct {
	FirstName        *string
	LastName         *string
	DateOfBirth      *time.Time
	ClearDateOfBirth bool
	AvgCycleLength   *int
	AvgPeriodLength  *int
	ProfileImageURL  *string
}

// Profile is a user together with today's insights.
type Profile struct {
	User     domain.User
	Insights cycle.Insights
}

// ProfileService reads and edits the signed-in user's profile.
type ProfileService struct {
	users    UserStore
	insights *InsightsService
	nowFn    func() time.Time
}

// NewProfileService constructs a ProfileService.
func NewProfileService(users UserStore, insights *InsightsService) *ProfileService {
	return &ProfileService{users: users, insights: insights, nowFn: time.Now}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *ProfileService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// GetProfile returns the user with current insights.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return Profile{}, storeErr(err, "User not found")
	}
	insights, err := s.insights.forUser(ctx, user)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Insights: insights}, nil
}

// UpdateProfile applies upd and returns the stored user.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, storeErr(err, "User not found")
	}

	if upd.FirstName != nil {
		user.FirstName = truncate(sanitizeString(*upd.FirstName), maxNameLength)
	}
	if upd.LastName != nil {
		user.LastName = truncate(sanitizeString(*upd.LastName), maxNameLength)
	}
	switch {
	case upd.ClearDateOfBirth:
		user.DateOfBirth = nil
	case upd.DateOfBirth != nil:
		dob := cycle.DateOnly(*upd.DateOfBirth)
		if dob.After(s.nowFn().UTC()) {
			return domain.User{}, invalidf("dateOfBirth cannot be in the future")
		}
		user.DateOfBirth = &dob
	}
	if upd.AvgCycleLength != nil {
		if *upd.AvgCycleLength <= 0 {
			return domain.User{}, invalidf("avgCycleLength must be positive")
		}
		user.AvgCycleLength = *upd.AvgCycleLength
	}
	if upd.AvgPeriodLength != nil {
		if *upd.AvgPeriodLength <= 0 {
			return domain.User{}, invalidf("avgPeriodLength must be positive")
		}
		user.AvgPeriodLength = *upd.AvgPeriodLength
	}
	if upd.ProfileImageURL != nil {
		user.ProfileImageURL = sanitizeString(*upd.ProfileImageURL)
	}

	user.UpdatedAt = s.nowFn().UTC()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("update user %s: %w", userID, storeErr(err, "User not found"))
	}
	return user, nil
}
