package model

import (
	"blooddonation/internal/entity"
	"blooddonation/internal/model/sql"
	"context"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrDuplicate 唯一键冲突
	ErrDuplicate = gorm.ErrDuplicatedKey
	// ErrStaleStatus 状态在读取之后已被并发修改
	ErrStaleStatus = sql.ErrStaleStatus
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	UpsertUserByEmail(ctx context.Context, user *entity.DbUser) (*entity.DbUser, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id string) (*entity.DbUser, error)
	UpdateUser(ctx context.Context, id string, updates entity.UserUpdates) error
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	RecentUsers(ctx context.Context, limit int) ([]entity.DbUser, error)
	SearchDonors(ctx context.Context, filter entity.DonorSearch) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// 捐献请求
	CreateRequest(ctx context.Context, request *entity.DbDonationRequest) error
	GetRequest(ctx context.Context, id string) (*entity.DbDonationRequest, error)
	UpdateRequest(ctx context.Context, id string, updates entity.RequestUpdates) error
	TransitionRequest(ctx context.Context, id string, from entity.DonationStatus, updates entity.RequestUpdates) error
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, params *entity.RequestQuery) ([]entity.DbDonationRequest, *entity.Meta, error)
	RecentRequests(ctx context.Context, recipientEmail string, limit int) ([]entity.DbDonationRequest, error)
	CountRequests(ctx context.Context, status entity.DonationStatus) (int64, error)
	CountRequestsByStatus(ctx context.Context) (map[entity.DonationStatus]int64, error)

	// 博客
	CreateBlog(ctx context.Context, blog *entity.DbBlog) error
	GetBlog(ctx context.Context, id string) (*entity.DbBlog, error)
	UpdateBlog(ctx context.Context, id string, updates entity.BlogUpdates) error
	DeleteBlog(ctx context.Context, id string) error
	ListBlogs(ctx context.Context, params *entity.BlogQuery) ([]entity.DbBlog, *entity.Meta, error)

	// 支付记录
	CreatePayment(ctx context.Context, payment *entity.DbPayment) error
	ListPayments(ctx context.Context, params *entity.PaymentQuery) ([]entity.DbPayment, *entity.Meta, error)
	AllPayments(ctx context.Context) ([]entity.DbPayment, error)

	Ping(ctx context.Context) error
	Close() error
}

var _ Repository = (*sql.GormRepository)(nil)
