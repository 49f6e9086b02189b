package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DbDonationRequest is a request for blood posted on behalf of a recipient.
type DbDonationRequest struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatedAt      time.Time      `gorm:"column:post_date;index" json:"post_date"`
	UpdatedAt      time.Time      `json:"updated_at"`
	RecipientEmail string         `gorm:"column:recipient_email;type:varchar(255);index;not null" json:"recipient_email"`
	RequesterName  string         `gorm:"column:requester_name;type:varchar(255)" json:"requester_name"`
	RecipientName  string         `gorm:"column:recipient_name;type:varchar(255)" json:"recipient_name"`
	BloodGroup     string         `gorm:"column:blood_group;type:varchar(8)" json:"blood_group"`
	District       string         `gorm:"column:district;type:varchar(120)" json:"district"`
	Upazila        string         `gorm:"column:upazila;type:varchar(120)" json:"upazila"`
	Hospital       string         `gorm:"column:hospital;type:varchar(255)" json:"hospital"`
	Address        string         `gorm:"column:address;type:varchar(512)" json:"address"`
	DonationDate   string         `gorm:"column:donation_date;type:varchar(32)" json:"donation_date"`
	DonationTime   string         `gorm:"column:donation_time;type:varchar(32)" json:"donation_time"`
	Message        string         `gorm:"column:message;type:text" json:"message"`
	Status         DonationStatus `gorm:"column:donation_status;type:varchar(20);index;not null" json:"donation_status"`
	DonorName      string         `gorm:"column:donor_name;type:varchar(255)" json:"donor_name,omitempty"`
	DonorEmail     string         `gorm:"column:donor_email;type:varchar(255)" json:"donor_email,omitempty"`
}

// TableName overrides default pluralised name.
func (DbDonationRequest) TableName() string {
	return "requests"
}

// BeforeCreate assigns an id and starts the lifecycle at pending.
func (r *DbDonationRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = DonationPending
	}
	return nil
}

// RequestQuery filters and paginates donation requests.
type RequestQuery struct {
	BaseParams
	Status         DonationStatus `form:"status"`
	RecipientEmail string         `form:"-"`
}

// RequestCreateRequest is the payload for posting a donation request.
type RequestCreateRequest struct {
	RequesterName string `json:"requester_name"`
	RecipientName string `json:"recipient_name" binding:"required"`
	BloodGroup    string `json:"blood_group" binding:"required"`
	District      string `json:"district"`
	Upazila       string `json:"upazila"`
	Hospital      string `json:"hospital" binding:"required"`
	Address       string `json:"address"`
	DonationDate  string `json:"donation_date"`
	DonationTime  string `json:"donation_time"`
	Message       string `json:"message"`
}

// RequestUpdateRequest patches the content fields of a donation request.
type RequestUpdateRequest struct {
	RequesterName *string `json:"requester_name,omitempty"`
	RecipientName *string `json:"recipient_name,omitempty"`
	BloodGroup    *string `json:"blood_group,omitempty"`
	District      *string `json:"district,omitempty"`
	Upazila       *string `json:"upazila,omitempty"`
	Hospital      *string `json:"hospital,omitempty"`
	Address       *string `json:"address,omitempty"`
	DonationDate  *string `json:"donation_date,omitempty"`
	DonationTime  *string `json:"donation_time,omitempty"`
	Message       *string `json:"message,omitempty"`
}

// DonationStatusRequest moves a request through its lifecycle.
type DonationStatusRequest struct {
	Status string `json:"status" binding:"required,donation_status"`
}

// RequestListResponse is the response for listing donation requests.
type RequestListResponse struct {
	Requests []DbDonationRequest `json:"requests"`
	Meta     *Meta               `json:"meta"`
}
