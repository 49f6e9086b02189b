package sql

import (
	"blooddonation/internal/entity"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStaleStatus is returned by conditional updates when the row no longer has the expected status.
var ErrStaleStatus = errors.New("status changed concurrently")

var errNotInitialised = fmt.Errorf("repository not initialised")

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Ping checks the underlying connection.
func (r *GormRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (r *GormRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, params entity.BaseParams) *entity.Meta {
	params.Normalize()
	return &entity.Meta{
		Total:    totalCount,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
}

// updateExisting applies updates to the row with the given id and fails with
// gorm.ErrRecordNotFound when no such row exists. It never inserts.
func (r *GormRepository) updateExisting(ctx context.Context, model interface{}, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(model).Where("id = ?", id).Updates(updates).Error
	})
}

// deleteByID removes one row, returning gorm.ErrRecordNotFound when nothing matched.
func (r *GormRepository) deleteByID(ctx context.Context, model interface{}, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
