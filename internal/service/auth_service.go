package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/arivai/internal/auth"
	"github.com/vanshika/arivai/internal/cycle"
	"github.com/vanshika/arivai/internal/domain"
)

const minPasswordLength = 6

// UserStore is the account storage used by the auth and profile services.
type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	AvgCycleLength  *int
	AvgPeriodLength *int
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	User   domain.User
	Tokens auth.TokenPair
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  UserStore
	hasher auth.Hasher
	tokens *auth.TokenManager
	nowFn  func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, hasher auth.Hasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		nowFn:  time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *AuthService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, invalidf("Email and password are required")
	}
	if !validEmail(email) {
		return AuthResult{}, invalidf("Email address is not valid")
	}
	if len(in.Password) < minPasswordLength {
		return AuthResult{}, invalidf("Password must be at least %d characters", minPasswordLength)
	}

	cycleLength, err := positiveOrDefault(in.AvgCycleLength, cycle.DefaultCycleLength, "avgCycleLength")
	if err != nil {
		return AuthResult{}, err
	}
	periodLength, err := positiveOrDefault(in.AvgPeriodLength, cycle.DefaultPeriodLength, "avgPeriodLength")
	if err != nil {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.nowFn().UTC()
	user := domain.User{
		ID:              uuid.NewString(),
		Email:           email,
		PasswordHash:    hash,
		FirstName:       truncate(sanitizeString(in.FirstName), maxNameLength),
		LastName:        truncate(sanitizeString(in.LastName), maxNameLength),
		AvgCycleLength:  cycleLength,
		AvgPeriodLength: periodLength,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return AuthResult{}, storeErr(err, "Email already registered")
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, invalidf("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(storeErr(err, ""), ErrNotFound) {
			return AuthResult{}, unauthorizedf("Invalid email or password")
		}
		return AuthResult{}, fmt.Errorf("load user by email: %w", err)
	}
	if err := s.hasher.Check(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return AuthResult{}, unauthorizedf("Invalid email or password")
		}
		return AuthResult{}, err
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Parse(refreshToken, auth.KindRefresh)
	if err != nil {
		return "", unauthorizedf("Invalid or expired refresh token")
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		if errors.Is(storeErr(err, ""), ErrNotFound) {
			return "", unauthorizedf("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("load user %s: %w", userID, err)
	}
	return s.tokens.Issue(userID, auth.KindAccess)
}

func positiveOrDefault(v *int, def int, field string) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v <= 0 {
		return 0, invalidf("%s must be positive", field)
	}
	return *v, nil
}
