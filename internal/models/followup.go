package models

import (
	"time"

	"gorm.io/gorm"
)

// FollowUpStatus represents the state of a scheduled follow-up
type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "Pending"
	FollowUpCompleted FollowUpStatus = "Completed"
	FollowUpCancelled FollowUpStatus = "Cancelled"
)

// FollowUp represents a scheduled touch-point with a lead
type FollowUp struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID    uint           `gorm:"not null;index" json:"advisor_id"`
	LeadID       uint           `gorm:"not null;index" json:"lead_id"`
	TeamMemberID *uint          `gorm:"index" json:"team_member_id,omitempty"`
	FollowUpDate time.Time      `gorm:"not null;index" json:"follow_up_date"`
	Purpose      string         `gorm:"size:100" json:"purpose"`
	Status       FollowUpStatus `gorm:"size:10;not null;default:'Pending'" json:"status"`
	Notes        string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`

	Lead Lead `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
}

// BeforeCreate hook is called before creating a new follow-up
func (f *FollowUp) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}
	if f.Status == "" {
		f.Status = FollowUpPending
	}
	return nil
}

// BeforeSave hook is called before saving the follow-up
func (f *FollowUp) BeforeSave(tx *gorm.DB) error {
	f.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the FollowUp model
func (FollowUp) TableName() string {
	return "follow_up"
}

// CreateFollowUpRequest represents the data needed to schedule a follow-up
type CreateFollowUpRequest struct {
	LeadID       uint      `json:"lead_id" binding:"required"`
	FollowUpDate time.Time `json:"follow_up_date" binding:"required"`
	Purpose      string    `json:"purpose" binding:"omitempty,max=100"`
	Notes        string    `json:"notes"`
}

// UpdateFollowUpRequest represents the editable follow-up fields
type UpdateFollowUpRequest struct {
	FollowUpDate *time.Time     `json:"follow_up_date"`
	Purpose      string         `json:"purpose" binding:"omitempty,max=100"`
	Status       FollowUpStatus `json:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
	Notes        string         `json:"notes"`
}

// FollowUpSummary aggregates an advisor's follow-up workload
type FollowUpSummary struct {
	Total     int64      `json:"total"`
	Pending   int64      `json:"pending"`
	Completed int64      `json:"completed"`
	DueToday  int64      `json:"due_today"`
	Upcoming  []FollowUp `json:"upcoming"`
}
