package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"strings"
)

// Guard resolves an authenticated email to its stored account and checks roles.
// Roles are compared for equality; admin does not stand in for volunteer.
type Guard struct {
	repo model.Repository
}

func NewGuard(repo model.Repository) *Guard {
	return &Guard{repo: repo}
}

// Authorize loads the account behind email and allows it when its role is one
// of roles. With no roles any registered account is allowed.
func (g *Guard) Authorize(ctx context.Context, email string, roles ...entity.Role) (*entity.DbUser, error) {
	if strings.TrimSpace(email) == "" {
		return nil, Unauthorized("missing identity")
	}
	user, err := g.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if KindOf(fromStore(err, "user")) == KindNotFound {
			return nil, forbidden("account is not registered")
		}
		return nil, fromStore(err, "user")
	}
	if len(roles) == 0 || hasRole(user, roles...) {
		return user, nil
	}
	return nil, forbidden("insufficient role")
}

func hasRole(user *entity.DbUser, roles ...entity.Role) bool {
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
