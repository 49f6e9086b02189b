package service

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model"
	"context"
	"strings"
)

// BlogService drafts, publishes and removes blog posts.
type BlogService struct {
	repo  model.Repository
	guard *Guard
}

func NewBlogService(repo model.Repository, guard *Guard) *BlogService {
	return &BlogService{repo: repo, guard: guard}
}

// Create stores a new draft authored by the caller.
func (s *BlogService) Create(ctx context.Context, actorEmail string, req entity.BlogCreateRequest) (*entity.DbBlog, error) {
	actor, err := s.guard.Authorize(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	blog := &entity.DbBlog{
		AuthorEmail: actor.Email,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Thumbnail:   strings.TrimSpace(req.Thumbnail),
		Status:      entity.BlogDraft,
	}
	if blog.Title == "" {
		return nil, invalid("", "title is required")
	}
	if err := s.repo.CreateBlog(ctx, blog); err != nil {
		return nil, fromStore(err, "blog")
	}
	return blog, nil
}

// GetPublished returns a post visible to the public.
func (s *BlogService) GetPublished(ctx context.Context, id string) (*entity.DbBlog, error) {
	blog, err := s.repo.GetBlog(ctx, id)
	if err != nil {
		return nil, fromStore(err, "blog")
	}
	if blog.Status != entity.BlogPublished {
		return nil, notFound("blog not found")
	}
	return blog, nil
}

// List pages through every post, optionally filtered by status.
func (s *BlogService) List(ctx context.Context, query entity.BlogQuery) (*entity.BlogListResponse, error) {
	if query.Status != "" {
		status, ok := entity.ParseBlogStatus(string(query.Status))
		if !ok {
			return nil, invalid(CodeInvalidStatus, "unknown blog status")
		}
		query.Status = status
	}
	query.Normalize()
	blogs, meta, err := s.repo.ListBlogs(ctx, &query)
	if err != nil {
		return nil, fromStore(err, "blog")
	}
	return &entity.BlogListResponse{Blogs: blogs, Meta: meta}, nil
}

// ListPublished pages through published posts only.
func (s *BlogService) ListPublished(ctx context.Context, params entity.BaseParams) (*entity.BlogListResponse, error) {
	return s.List(ctx, entity.BlogQuery{BaseParams: params, Status: entity.BlogPublished})
}

// SetStatus publishes or unpublishes a post.
func (s *BlogService) SetStatus(ctx context.Context, id, raw string) (*entity.DbBlog, error) {
	next, ok := entity.ParseBlogStatus(raw)
	if !ok {
		return nil, invalid(CodeInvalidStatus, "unknown blog status")
	}
	blog, err := s.repo.GetBlog(ctx, id)
	if err != nil {
		return nil, fromStore(err, "blog")
	}
	if blog.Status == next {
		return blog, nil
	}
	if !blog.Status.CanTransition(next) {
		return nil, conflict(CodeInvalidTransition, "cannot move blog from "+string(blog.Status)+" to "+string(next))
	}
	if err := s.repo.UpdateBlog(ctx, id, entity.BlogUpdates{Status: &next}); err != nil {
		return nil, fromStore(err, "blog")
	}
	blog.Status = next
	return blog, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		return fromStore(err, "blog")
	}
	return nil
}
