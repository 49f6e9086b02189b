package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DbUser represents a persisted user account keyed by email.
type DbUser struct {
	ID         string     `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatedAt  time.Time  `gorm:"index" json:"timestamp"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Email      string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Name       string     `gorm:"column:name;type:varchar(255)" json:"name"`
	Avatar     string     `gorm:"column:avatar;type:varchar(1024)" json:"avatar"`
	BloodGroup string     `gorm:"column:blood_group;type:varchar(8);index" json:"blood_group"`
	District   string     `gorm:"column:district;type:varchar(120);index" json:"district"`
	Upazila    string     `gorm:"column:upazila;type:varchar(120);index" json:"upazila"`
	Role       Role       `gorm:"column:role;type:varchar(20);index;not null" json:"role"`
	Status     UserStatus `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// BeforeCreate assigns an id and the default role and status.
func (u *DbUser) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleDonor
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	return nil
}

// IsBlocked reports whether the account has been blocked by an admin.
func (u *DbUser) IsBlocked() bool {
	return u != nil && u.Status == UserBlocked
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Status UserStatus `json:"status" form:"status"`
	Role   Role       `json:"role" form:"role"`
}

// DonorSearch filters donors by location and blood group. Empty fields are ignored.
type DonorSearch struct {
	District   string `form:"district"`
	Upazila    string `form:"upazila"`
	BloodGroup string `form:"blood_group"`
}

// UserUpsertRequest carries profile fields supplied on first login.
type UserUpsertRequest struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"blood_group"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// UserProfileRequest patches self-editable profile fields.
type UserProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	BloodGroup *string `json:"blood_group,omitempty"`
	District   *string `json:"district,omitempty"`
	Upazila    *string `json:"upazila,omitempty"`
}

// UserRoleRequest sets a user's role.
type UserRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// UserStatusRequest sets a user's account status.
type UserStatusRequest struct {
	Status string `json:"status" binding:"required,user_status"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []DbUser `json:"users"`
	Meta  *Meta    `json:"meta"`
}

// RoleResponse carries a single role lookup.
type RoleResponse struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
