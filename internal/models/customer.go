package models

import (
	"strconv"
	"time"

	"saarthi/internal/reminders"

	"gorm.io/gorm"
)

// Customer represents a converted lead holding at least one policy
type Customer struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID       uint           `gorm:"not null;index" json:"advisor_id"`
	TeamMemberID    *uint          `gorm:"index" json:"team_member_id,omitempty"`
	LeadID          *uint          `gorm:"index" json:"lead_id,omitempty"`
	FullName        string         `gorm:"size:100;not null" json:"full_name"`
	Email           string         `gorm:"size:255" json:"email"`
	PhoneNumber     string         `gorm:"size:20" json:"phone_number"`
	Gender          string         `gorm:"size:10" json:"gender"`
	DateOfBirth     *time.Time     `json:"date_of_birth,omitempty"`
	Anniversary     *time.Time     `json:"anniversary,omitempty"`
	RenewalDate     *time.Time     `gorm:"index" json:"renewal_date,omitempty"`
	AppointmentDate *time.Time     `json:"appointment_date,omitempty"`
	PolicyNumber    string         `gorm:"size:50" json:"policy_number"`
	PlanName        string         `gorm:"size:100" json:"plan_name"`
	PremiumAmount   float64        `json:"premium_amount"`
	CoverageAmount  float64        `json:"coverage_amount"`
	CompanyName     string         `gorm:"size:100" json:"company_name"`
	Address         string         `gorm:"type:text" json:"address"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook is called before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return nil
}

// BeforeSave hook is called before saving the customer
func (c *Customer) BeforeSave(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customer"
}

// ReminderSubject projects the customer into the shape the reminder resolver
// operates on
func (c Customer) ReminderSubject() reminders.Subject {
	return reminders.Subject{
		ID:              strconv.FormatUint(uint64(c.ID), 10),
		FullName:        c.FullName,
		PhoneNumber:     c.PhoneNumber,
		PolicyNumber:    c.PolicyNumber,
		DateOfBirth:     c.DateOfBirth,
		Anniversary:     c.Anniversary,
		RenewalDate:     c.RenewalDate,
		AppointmentDate: c.AppointmentDate,
		CreatedAt:       c.CreatedAt,
	}
}

// ConvertLeadRequest carries the policy details supplied when a lead becomes
// a customer; identity fields are copied from the lead itself
type ConvertLeadRequest struct {
	RenewalDate     *time.Time `json:"renewal_date"`
	AppointmentDate *time.Time `json:"appointment_date"`
	PolicyNumber    string     `json:"policy_number" binding:"omitempty,max=50"`
	PlanName        string     `json:"plan_name" binding:"omitempty,max=100"`
	PremiumAmount   float64    `json:"premium_amount" binding:"omitempty,min=0"`
	CoverageAmount  float64    `json:"coverage_amount" binding:"omitempty,min=0"`
	CompanyName     string     `json:"company_name" binding:"omitempty,max=100"`
}

// CreateCustomerRequest represents the data needed to create a new customer
type CreateCustomerRequest struct {
	FullName        string     `json:"full_name" binding:"required,min=2,max=100"`
	Email           string     `json:"email" binding:"omitempty,email"`
	PhoneNumber     string     `json:"phone_number" binding:"omitempty,max=20"`
	Gender          string     `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Anniversary     *time.Time `json:"anniversary"`
	RenewalDate     *time.Time `json:"renewal_date"`
	AppointmentDate *time.Time `json:"appointment_date"`
	PolicyNumber    string     `json:"policy_number" binding:"omitempty,max=50"`
	PlanName        string     `json:"plan_name" binding:"omitempty,max=100"`
	PremiumAmount   float64    `json:"premium_amount" binding:"omitempty,min=0"`
	CoverageAmount  float64    `json:"coverage_amount" binding:"omitempty,min=0"`
	CompanyName     string     `json:"company_name" binding:"omitempty,max=100"`
	Address         string     `json:"address"`
	Notes           string     `json:"notes"`
	TeamMemberID    *uint      `json:"team_member_id"`
}
