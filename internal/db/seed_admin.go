package db

import (
	"context"
	"errors"

	"github.com/placementtrack/api/internal/config"
	"github.com/placementtrack/api/internal/domain/user"
	"github.com/placementtrack/api/internal/security"
)

// Keep this small interface so the seed works against either backend.
type userSeedStore interface {
	Insert(ctx context.Context, u user.User) (user.User, error)
	Count(ctx context.Context) (int, error)
}

// EnsureAdminUser seeds one admin account into an empty store. It goes
// through the store abstraction so a fallback-mode process still gets a
// usable login. Bootstrap affordance only.
func EnsureAdminUser(ctx context.Context, store userSeedStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	n, err := store.Count(ctx)

	if err != nil {
		return err
	}

	if n > 0 {
		return nil
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	u := user.New(cfg.AdminName, cfg.AdminEmail, hash, cfg.AdminRole)

	_, err = store.Insert(ctx, u)

	if errors.Is(err, user.ErrEmailTaken) {
		// lost a race with another instance seeding the same account
		return nil
	}

	return err
}
