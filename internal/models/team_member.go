package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamMember represents an advisor's sub-user (an agent) who works leads on
// the advisor's behalf
type TeamMember struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID   uint           `gorm:"not null;index" json:"advisor_id"`
	FullName    string         `gorm:"size:100;not null" json:"full_name"`
	Email       string         `gorm:"size:255;not null;index" json:"email"`
	PhoneNumber string         `gorm:"size:20" json:"phone_number"`
	Role        string         `gorm:"size:30;not null;default:'agent'" json:"role"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new team member
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	if m.Role == "" {
		m.Role = "agent"
	}
	return nil
}

// TableName specifies the table name for the TeamMember model
func (TeamMember) TableName() string {
	return "team_member"
}

// CreateTeamMemberRequest represents the data needed to add a team member
type CreateTeamMemberRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Role        string `json:"role" binding:"omitempty,oneof=agent manager"`
}

// UpdateTeamMemberRequest represents the editable team member fields
type UpdateTeamMemberRequest struct {
	FullName    string `json:"full_name" binding:"omitempty,min=2,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Role        string `json:"role" binding:"omitempty,oneof=agent manager"`
	Active      *bool  `json:"active"`
}
