package models

import (
	"time"

	"gorm.io/gorm"
)

// PlanCode identifies a subscription plan
type PlanCode string

const (
	PlanMonthly PlanCode = "monthly"
	PlanYearly  PlanCode = "yearly"
)

// Plan represents a purchasable subscription plan. Prices are stored in paise
// because that is the unit Razorpay orders are created in.
type Plan struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        PlanCode  `gorm:"uniqueIndex;size:10;not null" json:"code"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	PricePaise  int64     `gorm:"not null" json:"price_paise"`
	DurationDay int       `gorm:"not null" json:"duration_days"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the Plan model
func (Plan) TableName() string {
	return "plan"
}

// Coupon represents a percent-off discount code
type Coupon struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string         `gorm:"uniqueIndex;size:30;not null" json:"code"`
	PercentOff int            `gorm:"not null" json:"percent_off"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	MaxUses    int            `json:"max_uses"`
	UsedCount  int            `gorm:"not null;default:0" json:"used_count"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupon"
}

// Usable reports whether the coupon can still be applied
func (c *Coupon) Usable(now time.Time) bool {
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false
	}
	return c.PercentOff > 0 && c.PercentOff <= 100
}

// PaymentOrderStatus tracks a Razorpay order through its lifecycle
type PaymentOrderStatus string

const (
	PaymentCreated PaymentOrderStatus = "created"
	PaymentPaid    PaymentOrderStatus = "paid"
	PaymentFailed  PaymentOrderStatus = "failed"
)

// PaymentOrder mirrors a Razorpay order created for an advisor's subscription
type PaymentOrder struct {
	ID                uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID         uint               `gorm:"not null;index" json:"advisor_id"`
	PlanCode          PlanCode           `gorm:"size:10;not null" json:"plan_code"`
	CouponCode        string             `gorm:"size:30" json:"coupon_code,omitempty"`
	AmountPaise       int64              `gorm:"not null" json:"amount_paise"`
	Currency          string             `gorm:"size:3;not null;default:'INR'" json:"currency"`
	RazorpayOrderID   string             `gorm:"uniqueIndex;size:64;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string             `gorm:"size:64" json:"razorpay_payment_id,omitempty"`
	Status            PaymentOrderStatus `gorm:"size:10;not null;default:'created'" json:"status"`
	CreatedAt         time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the PaymentOrder model
func (PaymentOrder) TableName() string {
	return "payment_order"
}

// CreateOrderRequest represents the data needed to start a checkout
type CreateOrderRequest struct {
	Plan       string `json:"plan" binding:"required,oneof=monthly yearly"`
	CouponCode string `json:"coupon_code" binding:"omitempty,max=30"`
}

// VerifyPaymentRequest carries the fields Razorpay checkout hands back to the
// client after a successful payment
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}
