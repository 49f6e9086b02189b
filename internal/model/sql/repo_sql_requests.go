package sql

import (
	"blooddonation/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateRequest persists a new donation request.
func (r *GormRepository) CreateRequest(ctx context.Context, request *entity.DbDonationRequest) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if request == nil {
		return fmt.Errorf("request is nil")
	}
	return r.db.WithContext(ctx).Create(request).Error
}

// GetRequest loads a donation request by ID.
func (r *GormRepository) GetRequest(ctx context.Context, id string) (*entity.DbDonationRequest, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invalid request id")
	}
	var request entity.DbDonationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateRequest patches an existing donation request.
func (r *GormRepository) UpdateRequest(ctx context.Context, id string, updates entity.RequestUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid request id")
	}
	return r.updateExisting(ctx, &entity.DbDonationRequest{}, id, updates.ToMap())
}

// TransitionRequest applies updates only while the request is still in status from.
func (r *GormRepository) TransitionRequest(ctx context.Context, id string, from entity.DonationStatus, updates entity.RequestUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid request id")
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.DbDonationRequest
		if err := tx.Select("id", "donation_status").Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}
		if current.Status != from {
			return ErrStaleStatus
		}
		result := tx.Model(&entity.DbDonationRequest{}).
			Where("id = ? AND donation_status = ?", id, from).
			Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleStatus
		}
		return nil
	})
}

// DeleteRequest removes a donation request by ID.
func (r *GormRepository) DeleteRequest(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid request id")
	}
	return r.deleteByID(ctx, &entity.DbDonationRequest{}, id)
}

// ListRequests returns paginated donation requests, newest first.
func (r *GormRepository) ListRequests(ctx context.Context, params *entity.RequestQuery) ([]entity.DbDonationRequest, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}

	query := r.db.WithContext(ctx).Model(&entity.DbDonationRequest{})
	var page entity.BaseParams
	if params != nil {
		if params.Status != "" {
			query = query.Where("donation_status = ?", params.Status)
		}
		if email := strings.TrimSpace(params.RecipientEmail); email != "" {
			query = query.Where("LOWER(recipient_email) = ?", strings.ToLower(email))
		}
		page = params.BaseParams
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var requests []entity.DbDonationRequest
	if err := query.Order("post_date DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&requests).Error; err != nil {
		return nil, nil, err
	}

	return requests, r.calculatePagination(total, page), nil
}

// RecentRequests returns the latest requests posted for a recipient.
func (r *GormRepository) RecentRequests(ctx context.Context, recipientEmail string, limit int) ([]entity.DbDonationRequest, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if limit <= 0 {
		limit = 3
	}
	var requests []entity.DbDonationRequest
	if err := r.db.WithContext(ctx).
		Where("LOWER(recipient_email) = ?", strings.ToLower(strings.TrimSpace(recipientEmail))).
		Order("post_date DESC").Order("id DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// CountRequests counts requests, optionally restricted to one status.
func (r *GormRepository) CountRequests(ctx context.Context, status entity.DonationStatus) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errNotInitialised
	}
	query := r.db.WithContext(ctx).Model(&entity.DbDonationRequest{})
	if status != "" {
		query = query.Where("donation_status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountRequestsByStatus groups requests by donation status.
func (r *GormRepository) CountRequestsByStatus(ctx context.Context) (map[entity.DonationStatus]int64, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&entity.DbDonationRequest{}).
		Select("donation_status AS status, COUNT(*) AS total").
		Group("donation_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[entity.DonationStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.DonationStatus(row.Status)] = row.Total
	}
	return counts, nil
}
