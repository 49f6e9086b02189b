package sql

import (
	"blooddonation/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// UpsertUserByEmail inserts the user unless one with the same email exists,
// then returns the stored record. created reports whether a row was inserted.
func (r *GormRepository) UpsertUserByEmail(ctx context.Context, user *entity.DbUser) (*entity.DbUser, bool, error) {
	if r == nil || r.db == nil {
		return nil, false, errNotInitialised
	}
	if user == nil {
		return nil, false, fmt.Errorf("user is nil")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return nil, false, fmt.Errorf("email is empty")
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(user)
	if result.Error != nil {
		return nil, false, result.Error
	}

	stored, err := r.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return stored, result.RowsAffected > 0, nil
}

// GetUserByEmail loads a user by email.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user entry.
func (r *GormRepository) UpdateUser(ctx context.Context, id string, updates entity.UserUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid user id")
	}
	return r.updateExisting(ctx, &entity.DbUser{}, id, updates.ToMap())
}

// ListUsers returns paginated users.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	var page entity.BaseParams
	if params != nil {
		if params.Status != "" {
			query = query.Where("status = ?", params.Status)
		}
		if params.Role != "" {
			query = query.Where("role = ?", params.Role)
		}
		page = params.BaseParams
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&users).Error; err != nil {
		return nil, nil, err
	}

	return users, r.calculatePagination(total, page), nil
}

// RecentUsers returns the most recently registered users.
func (r *GormRepository) RecentUsers(ctx context.Context, limit int) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if limit <= 0 {
		limit = 3
	}
	var users []entity.DbUser
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SearchDonors matches active users on every non-empty filter field.
func (r *GormRepository) SearchDonors(ctx context.Context, filter entity.DonorSearch) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("status = ?", entity.UserActive)
	if v := strings.TrimSpace(filter.District); v != "" {
		query = query.Where("district = ?", v)
	}
	if v := strings.TrimSpace(filter.Upazila); v != "" {
		query = query.Where("upazila = ?", v)
	}
	if v := strings.TrimSpace(filter.BloodGroup); v != "" {
		query = query.Where("blood_group = ?", v)
	}

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Limit(entity.MaxPageSize).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errNotInitialised
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
