package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placementtrack/api/internal/auth"
	"github.com/placementtrack/api/internal/domain/user"
	"github.com/placementtrack/api/internal/security"
)

// UserStore is the capability set the auth flows need. Both the database
// repo and the in-memory fallback satisfy it; nothing below this line may
// branch on which one is active.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	Insert(ctx context.Context, u user.User) (user.User, error)
	Count(ctx context.Context) (int, error)
}

type AuthService struct {
	store  UserStore
	tokens *auth.Manager
	log    *slog.Logger
}

func NewAuthService(store UserStore, tokens *auth.Manager, log *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		log:    log,
	}
}

// Register validates the payload, enforces email uniqueness and returns
// the stored user plus a fresh bearer token.
func (s *AuthService) Register(ctx context.Context, reg user.Registration) (user.User, string, error) {
	if fieldErrs := user.ValidateRegistration(reg); len(fieldErrs) > 0 {
		return user.User{}, "", &ValidationError{Fields: fieldErrs}
	}

	email := user.NormalizeEmail(reg.Email)

	_, err := s.store.GetByEmail(ctx, email)

	if err == nil {
		return user.User{}, "", user.ErrEmailTaken
	}

	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, "", fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := security.HashPassword(reg.Password)

	if err != nil {
		return user.User{}, "", fmt.Errorf("register: hash password: %w", err)
	}

	u, err := s.store.Insert(ctx, user.New(reg.Name, email, hash, reg.Role))

	if err != nil {
		// ErrEmailTaken here means we lost a racing insert; the unique
		// index caught what the pre-check could not.
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, "", user.ErrEmailTaken
		}
		return user.User{}, "", fmt.Errorf("register: insert: %w", err)
	}

	token, err := s.tokens.Generate(u.ID)

	if err != nil {
		return user.User{}, "", fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info("user registered", "user_id", u.ID, "email", u.Email)

	return u, token, nil
}

// Login authenticates by email and password. A missing account and a
// wrong password collapse to the same error; a deactivated account keeps
// its own message but the same unauthorized class.
func (s *AuthService) Login(ctx context.Context, email, password string) (user.User, string, error) {
	email = user.NormalizeEmail(email)

	if email == "" || password == "" {
		return user.User{}, "", ErrMissingFields
	}

	u, err := s.store.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", fmt.Errorf("login: lookup: %w", err)
	}

	if !u.IsActive {
		return user.User{}, "", ErrAccountDeactivated
	}

	if !security.CheckPassword(u.PasswordHash, password) {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)

	if err != nil {
		return user.User{}, "", fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info("user logged in", "user_id", u.ID)

	return u, token, nil
}

// CurrentUser resolves a verified token subject to its account.
// IsActive is deliberately not re-checked here; a deactivated account
// keeps resolving until its token expires, matching login-time gating
// being the only gate.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (user.User, error) {
	u, err := s.store.GetByID(ctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("current user: lookup: %w", err)
	}

	return u, nil
}
