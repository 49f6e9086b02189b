package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DbPayment records a completed checkout. Rows are never updated or deleted.
type DbPayment struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	Email         string    `gorm:"column:email;type:varchar(255);index;not null" json:"email"`
	Name          string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	Date          time.Time `gorm:"column:date;not null" json:"date"`
	TransactionID string    `gorm:"column:transaction_id;type:varchar(255);uniqueIndex;not null" json:"transactionId"`
}

// TableName overrides default pluralised name.
func (DbPayment) TableName() string {
	return "payments"
}

// BeforeCreate assigns an id and defaults the payment date to now.
func (p *DbPayment) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return nil
}

// PaymentQuery filters and paginates payments.
type PaymentQuery struct {
	BaseParams
	Email string `form:"-"`
}

// PaymentIntentRequest asks for a charge intent in major currency units.
type PaymentIntentRequest struct {
	Price *float64 `json:"price"`
}

// PaymentIntentResponse hands the client secret back to the browser.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentCreateRequest persists a completed checkout.
type PaymentCreateRequest struct {
	Name          string     `json:"name"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	TransactionID string     `json:"transactionId" binding:"required"`
	Date          *time.Time `json:"date"`
}

// PaymentListResponse is the response for listing payments.
type PaymentListResponse struct {
	Payments []DbPayment `json:"payments"`
	Meta     *Meta       `json:"meta"`
}
