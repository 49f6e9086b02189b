package sql

import (
	"blooddonation/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreatePayment appends a payment to the ledger. A transaction reference may
// only be recorded once; repeats fail with gorm.ErrDuplicatedKey.
func (r *GormRepository) CreatePayment(ctx context.Context, payment *entity.DbPayment) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if payment == nil {
		return fmt.Errorf("payment is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.DbPayment{}).
			Where("transaction_id = ?", payment.TransactionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(payment).Error
	})
}

// ListPayments returns paginated payments, newest first.
func (r *GormRepository) ListPayments(ctx context.Context, params *entity.PaymentQuery) ([]entity.DbPayment, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}

	query := r.db.WithContext(ctx).Model(&entity.DbPayment{})
	var page entity.BaseParams
	if params != nil {
		if email := strings.TrimSpace(params.Email); email != "" {
			query = query.Where("LOWER(email) = ?", strings.ToLower(email))
		}
		page = params.BaseParams
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var payments []entity.DbPayment
	if err := query.Order("date DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&payments).Error; err != nil {
		return nil, nil, err
	}

	return payments, r.calculatePagination(total, page), nil
}

// AllPayments returns the whole ledger in the order it was written.
func (r *GormRepository) AllPayments(ctx context.Context) ([]entity.DbPayment, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var payments []entity.DbPayment
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
