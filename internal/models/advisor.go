package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionStatus describes where an advisor stands with billing
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// Advisor represents a tenant account: an insurance/financial advisor who owns
// leads, customers, templates and reminder logs
type Advisor struct {
	ID                    uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	GoogleID              string             `gorm:"uniqueIndex;size:128" json:"-"`
	Email                 string             `gorm:"uniqueIndex;size:255;not null" json:"email"`
	EmailVerified         bool               `gorm:"not null;default:false" json:"email_verified"`
	FullName              string             `gorm:"size:100;not null" json:"full_name"`
	FirmName              string             `gorm:"size:100" json:"firm_name"`
	PhoneNumber           string             `gorm:"size:20" json:"phone_number"`
	AvatarURL             string             `gorm:"size:512" json:"avatar_url"`
	SubscriptionStatus    SubscriptionStatus `gorm:"size:10;not null;default:'trial'" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `json:"subscription_expires_at,omitempty"`
	EncryptedRefreshToken string             `gorm:"type:text" json:"-"`
	TokenExpiry           time.Time          `json:"-"`
	LastLogin             time.Time          `gorm:"not null" json:"last_login"`
	CreatedAt             time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"not null" json:"updated_at"`
	DeletedAt             gorm.DeletedAt     `gorm:"index" json:"-"`

	TeamMembers []TeamMember `gorm:"foreignKey:AdvisorID" json:"team_members,omitempty"`
}

// BeforeCreate hook is called before creating a new advisor
func (a *Advisor) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	if a.LastLogin.IsZero() {
		a.LastLogin = now
	}
	if a.SubscriptionStatus == "" {
		a.SubscriptionStatus = SubscriptionTrial
	}
	return nil
}

// BeforeSave hook is called before saving the advisor
func (a *Advisor) BeforeSave(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return nil
}

// SubscriptionCurrent reports whether the advisor can use paid features
func (a *Advisor) SubscriptionCurrent() bool {
	if a.SubscriptionStatus != SubscriptionActive {
		return a.SubscriptionStatus == SubscriptionTrial
	}
	return a.SubscriptionExpiresAt == nil || a.SubscriptionExpiresAt.After(time.Now())
}

// TableName specifies the table name for the Advisor model
func (Advisor) TableName() string {
	return "advisor"
}

// LoginLog records a successful dashboard sign-in
type LoginLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID uint      `gorm:"not null;index" json:"advisor_id"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName specifies the table name for the LoginLog model
func (LoginLog) TableName() string {
	return "login_log"
}

// UpdateProfileRequest represents the editable advisor profile fields
type UpdateProfileRequest struct {
	FullName    string `json:"full_name" binding:"omitempty,min=2,max=100"`
	FirmName    string `json:"firm_name" binding:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
}
