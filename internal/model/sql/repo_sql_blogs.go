package sql

import (
	"blooddonation/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateBlog persists a new blog post.
func (r *GormRepository) CreateBlog(ctx context.Context, blog *entity.DbBlog) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if blog == nil {
		return fmt.Errorf("blog is nil")
	}
	return r.db.WithContext(ctx).Create(blog).Error
}

// GetBlog loads a blog post by ID.
func (r *GormRepository) GetBlog(ctx context.Context, id string) (*entity.DbBlog, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invalid blog id")
	}
	var blog entity.DbBlog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog patches an existing blog post.
func (r *GormRepository) UpdateBlog(ctx context.Context, id string, updates entity.BlogUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid blog id")
	}
	return r.updateExisting(ctx, &entity.DbBlog{}, id, updates.ToMap())
}

// DeleteBlog removes a blog post by ID.
func (r *GormRepository) DeleteBlog(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid blog id")
	}
	return r.deleteByID(ctx, &entity.DbBlog{}, id)
}

// ListBlogs returns paginated blog posts, newest first.
func (r *GormRepository) ListBlogs(ctx context.Context, params *entity.BlogQuery) ([]entity.DbBlog, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBlog{})
	var page entity.BaseParams
	if params != nil {
		if params.Status != "" {
			query = query.Where("status = ?", params.Status)
		}
		page = params.BaseParams
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var blogs []entity.DbBlog
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&blogs).Error; err != nil {
		return nil, nil, err
	}

	return blogs, r.calculatePagination(total, page), nil
}
