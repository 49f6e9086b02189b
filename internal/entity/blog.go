package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DbBlog is a content post that goes live once an admin publishes it.
type DbBlog struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AuthorEmail string     `gorm:"column:author_email;type:varchar(255);index" json:"author_email"`
	Title       string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Content     string     `gorm:"column:content;type:text" json:"content"`
	Thumbnail   string     `gorm:"column:thumbnail;type:varchar(1024)" json:"thumbnail"`
	Status      BlogStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
}

// TableName overrides default pluralised name.
func (DbBlog) TableName() string {
	return "blogs"
}

// BeforeCreate assigns an id and starts new posts as drafts.
func (b *DbBlog) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BlogDraft
	}
	return nil
}

// BlogQuery filters and paginates blog posts.
type BlogQuery struct {
	BaseParams
	Status BlogStatus `form:"status"`
}

// BlogCreateRequest is the payload for drafting a blog post.
type BlogCreateRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Thumbnail string `json:"thumbnail"`
}

// BlogStatusRequest publishes or unpublishes a blog post.
type BlogStatusRequest struct {
	Status string `json:"status" binding:"required,blog_status"`
}

// BlogListResponse is the response for listing blog posts.
type BlogListResponse struct {
	Blogs []DbBlog `json:"blogs"`
	Meta  *Meta    `json:"meta"`
}
