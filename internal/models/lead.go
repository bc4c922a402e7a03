package models

import (
	"strconv"
	"time"

	"saarthi/internal/reminders"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LeadStatus represents where a lead sits in the pipeline
type LeadStatus string

const (
	HotLead       LeadStatus = "Hot Lead"
	QualifiedLead LeadStatus = "Qualified Lead"
	FollowUpLead  LeadStatus = "Follow-up"
	ColdLead      LeadStatus = "Cold Lead"
	LostLead      LeadStatus = "Lost Lead"
)

// Lead represents a prospect owned by an advisor
type Lead struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID        uint           `gorm:"not null;index" json:"advisor_id"`
	TeamMemberID     *uint          `gorm:"index" json:"team_member_id,omitempty"`
	FullName         string         `gorm:"size:100;not null" json:"full_name"`
	Email            string         `gorm:"size:255" json:"email"`
	PhoneNumber      string         `gorm:"size:20" json:"phone_number"`
	Gender           string         `gorm:"size:10" json:"gender"`
	DateOfBirth      *time.Time     `json:"date_of_birth,omitempty"`
	Anniversary      *time.Time     `json:"anniversary,omitempty"`
	LeadStatus       LeadStatus     `gorm:"size:20;not null;default:'Follow-up';index" json:"lead_status"`
	Source           string         `gorm:"size:50" json:"source"`
	InsuranceType    string         `gorm:"size:50" json:"insurance_type"`
	PolicyNumber     string         `gorm:"size:50" json:"policy_number"`
	CoverageAmount   float64        `json:"coverage_amount"`
	CompanyName      string         `gorm:"size:100" json:"company_name"`
	Referrer         string         `gorm:"size:100" json:"referrer"`
	PreferredPlan    string         `gorm:"size:100" json:"preferred_plan"`
	Address          string         `gorm:"type:text" json:"address"`
	Notes            string         `gorm:"type:text" json:"notes"`
	NextFollowUpDate *time.Time     `json:"next_follow_up_date,omitempty"`
	CustomFields     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"custom_fields"`
	CreatedAt        time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	FollowUps []FollowUp `gorm:"foreignKey:LeadID" json:"follow_ups,omitempty"`
}

// BeforeCreate hook is called before creating a new lead
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	if l.LeadStatus == "" {
		l.LeadStatus = FollowUpLead
	}
	return nil
}

// BeforeSave hook is called before saving the lead
func (l *Lead) BeforeSave(tx *gorm.DB) error {
	l.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the Lead model
func (Lead) TableName() string {
	return "lead"
}

// ReminderSubject projects the lead into the shape the reminder resolver
// operates on
func (l Lead) ReminderSubject() reminders.Subject {
	return reminders.Subject{
		ID:           strconv.FormatUint(uint64(l.ID), 10),
		FullName:     l.FullName,
		PhoneNumber:  l.PhoneNumber,
		LeadStatus:   string(l.LeadStatus),
		PolicyNumber: l.PolicyNumber,
		DateOfBirth:  l.DateOfBirth,
		Anniversary:  l.Anniversary,
		CreatedAt:    l.CreatedAt,
	}
}

// CreateLeadRequest represents the data needed to create a new lead
type CreateLeadRequest struct {
	FullName         string     `json:"full_name" binding:"required,min=2,max=100"`
	Email            string     `json:"email" binding:"omitempty,email"`
	PhoneNumber      string     `json:"phone_number" binding:"omitempty,max=20"`
	Gender           string     `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Anniversary      *time.Time `json:"anniversary"`
	LeadStatus       LeadStatus `json:"lead_status" binding:"omitempty,oneof='Hot Lead' 'Qualified Lead' 'Follow-up' 'Cold Lead' 'Lost Lead'"`
	Source           string     `json:"source" binding:"omitempty,max=50"`
	InsuranceType    string     `json:"insurance_type" binding:"omitempty,max=50"`
	PolicyNumber     string     `json:"policy_number" binding:"omitempty,max=50"`
	CoverageAmount   float64    `json:"coverage_amount" binding:"omitempty,min=0"`
	CompanyName      string     `json:"company_name" binding:"omitempty,max=100"`
	Referrer         string     `json:"referrer" binding:"omitempty,max=100"`
	PreferredPlan    string     `json:"preferred_plan" binding:"omitempty,max=100"`
	Address          string     `json:"address"`
	Notes            string     `json:"notes"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date"`
	TeamMemberID     *uint      `json:"team_member_id"`
}
