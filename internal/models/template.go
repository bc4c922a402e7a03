package models

import (
	"time"

	"saarthi/internal/reminders"

	"gorm.io/gorm"
)

// MessageTemplate is an advisor's outreach template for one reminder category.
// Each advisor keeps at most one template per category; saving again replaces
// the previous text.
type MessageTemplate struct {
	ID              uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID       uint               `gorm:"not null;uniqueIndex:idx_template_advisor_category" json:"advisor_id"`
	Category        reminders.Category `gorm:"size:20;not null;uniqueIndex:idx_template_advisor_category" json:"category"`
	Name            string             `gorm:"size:100" json:"name"`
	TemplateMessage string             `gorm:"type:text;not null" json:"template_message"`
	CreatedAt       time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new template
func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	return nil
}

// BeforeSave hook is called before saving the template
func (t *MessageTemplate) BeforeSave(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the MessageTemplate model
func (MessageTemplate) TableName() string {
	return "message_template"
}

// UpsertTemplateRequest represents the data needed to save a template
type UpsertTemplateRequest struct {
	Category        string `json:"category" binding:"required"`
	Name            string `json:"name" binding:"omitempty,max=100"`
	TemplateMessage string `json:"template_message" binding:"required"`
}
