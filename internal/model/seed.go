package model

import (
	"blooddonation/internal/config"
	"blooddonation/internal/entity"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// SeedAdmin makes sure the configured bootstrap account exists and holds the admin role.
func SeedAdmin(ctx context.Context, repo Repository, cfg config.Config) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	if repo == nil || email == "" {
		return nil
	}
	user, err := PromoteUser(ctx, repo, email, entity.RoleAdmin)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"email": user.Email, "id": user.ID}).Info("bootstrap admin ensured")
	return nil
}

// PromoteUser creates the account if needed and sets its role.
func PromoteUser(ctx context.Context, repo Repository, email string, role entity.Role) (*entity.DbUser, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	user, _, err := repo.UpsertUserByEmail(ctx, &entity.DbUser{Email: email, Role: role})
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	if err := repo.UpdateUser(ctx, user.ID, entity.UserUpdates{Role: &role}); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
