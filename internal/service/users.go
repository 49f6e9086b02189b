package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"strings"
)

// UserService manages accounts keyed by email.
type UserService struct {
	repo  model.Repository
	guard *Guard
}

func NewUserService(repo model.Repository, guard *Guard) *UserService {
	return &UserService{repo: repo, guard: guard}
}

// Ensure creates the account on first login and otherwise returns it untouched.
func (s *UserService) Ensure(ctx context.Context, email string, req entity.UserUpsertRequest) (*entity.DbUser, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, invalid("", "email is required")
	}
	user := &entity.DbUser{
		Email:      email,
		Name:       strings.TrimSpace(req.Name),
		Avatar:     strings.TrimSpace(req.Avatar),
		BloodGroup: strings.TrimSpace(req.BloodGroup),
		District:   strings.TrimSpace(req.District),
		Upazila:    strings.TrimSpace(req.Upazila),
	}
	stored, created, err := s.repo.UpsertUserByEmail(ctx, user)
	if err != nil {
		return nil, false, fromStore(err, "user")
	}
	return stored, created, nil
}

// Get returns the account for email.
func (s *UserService) Get(ctx context.Context, email string) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	return user, nil
}

// Role returns the stored role for email.
func (s *UserService) Role(ctx context.Context, email string) (*entity.RoleResponse, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	return &entity.RoleResponse{Email: user.Email, Role: user.Role}, nil
}

// UpdateProfile patches self-editable fields. Only the account owner or an admin may do it.
func (s *UserService) UpdateProfile(ctx context.Context, actorEmail, id string, req entity.UserProfileRequest) (*entity.DbUser, error) {
	actor, err := s.guard.Authorize(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	if !sameEmail(actor.Email, target.Email) && actor.Role != entity.RoleAdmin {
		return nil, forbidden("cannot edit another user's profile")
	}

	updates := entity.UserUpdates{
		Name:       trimmed(req.Name),
		Avatar:     trimmed(req.Avatar),
		BloodGroup: trimmed(req.BloodGroup),
		District:   trimmed(req.District),
		Upazila:    trimmed(req.Upazila),
	}
	if updates.IsEmpty() {
		return target, nil
	}
	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		return nil, fromStore(err, "user")
	}
	return s.reload(ctx, id)
}

// List pages through every account.
func (s *UserService) List(ctx context.Context, query entity.UserQuery) (*entity.UserListResponse, error) {
	if query.Status != "" && !query.Status.Valid() {
		return nil, invalid(CodeInvalidStatus, "unknown user status")
	}
	if query.Role != "" && !query.Role.Valid() {
		return nil, invalid("", "unknown role")
	}
	query.Normalize()
	users, meta, err := s.repo.ListUsers(ctx, &query)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	return &entity.UserListResponse{Users: users, Meta: meta}, nil
}

// SetRole assigns a single role to the account with id.
func (s *UserService) SetRole(ctx context.Context, id, raw string) (*entity.DbUser, error) {
	role, ok := entity.ParseRole(raw)
	if !ok {
		return nil, invalid("", "unknown role")
	}
	target, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	if target.Role == role {
		return target, nil
	}
	if err := s.repo.UpdateUser(ctx, id, entity.UserUpdates{Role: &role}); err != nil {
		return nil, fromStore(err, "user")
	}
	return s.reload(ctx, id)
}

// SetStatus moves an account between active and blocked.
func (s *UserService) SetStatus(ctx context.Context, id, raw string) (*entity.DbUser, error) {
	status, ok := entity.ParseUserStatus(raw)
	if !ok {
		return nil, invalid(CodeInvalidStatus, "unknown user status")
	}
	target, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	if target.Status == status {
		return target, nil
	}
	if err := s.repo.UpdateUser(ctx, id, entity.UserUpdates{Status: &status}); err != nil {
		return nil, fromStore(err, "user")
	}
	return s.reload(ctx, id)
}

// Recent returns the three newest accounts.
func (s *UserService) Recent(ctx context.Context) ([]entity.DbUser, error) {
	users, err := s.repo.RecentUsers(ctx, 3)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	return users, nil
}

// SearchDonors finds active accounts by location and blood group.
func (s *UserService) SearchDonors(ctx context.Context, filter entity.DonorSearch) ([]entity.DbUser, error) {
	users, err := s.repo.SearchDonors(ctx, filter)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	return users, nil
}

// Count returns the number of registered accounts.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return 0, fromStore(err, "user")
	}
	return count, nil
}

func (s *UserService) reload(ctx context.Context, id string) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, "user")
	}
	return user, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}
