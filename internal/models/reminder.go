package models

import (
	"strconv"
	"time"

	"saarthi/internal/reminders"
)

// ReminderSourceType distinguishes which table a reminder subject came from
type ReminderSourceType string

const (
	ReminderSourceLead     ReminderSourceType = "lead"
	ReminderSourceCustomer ReminderSourceType = "customer"
)

// ReminderLog tracks which reminders were dispatched to avoid duplicate sends
// on the same day. The log is the authoritative dedup record; the worklist
// endpoint only reads it back as a display filter.
type ReminderLog struct {
	ID           uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID    uint               `gorm:"not null;index:idx_reminder_log_advisor_sent" json:"advisor_id"`
	TeamMemberID *uint              `gorm:"index" json:"team_member_id,omitempty"`
	SourceType   ReminderSourceType `gorm:"size:10;not null" json:"source_type"`
	SourceID     uint               `gorm:"not null;index" json:"source_id"`
	TemplateID   *uint              `json:"template_id,omitempty"`
	Category     reminders.Category `gorm:"size:20;not null;index" json:"category"`
	MessageSent  string             `gorm:"type:text" json:"message_sent"`
	SentAt       time.Time          `gorm:"not null;index:idx_reminder_log_advisor_sent" json:"sent_at"`
}

// TableName specifies the table name for the ReminderLog model
func (ReminderLog) TableName() string {
	return "reminder_log"
}

// SentLog projects the log row into the resolver's exclusion shape
func (r ReminderLog) SentLog() reminders.SentLog {
	return reminders.SentLog{
		SourceID: strconv.FormatUint(uint64(r.SourceID), 10),
		Category: r.Category,
	}
}

// DigestSent records that the daily digest email went out to an advisor,
// so the worker never mails the same advisor twice on one date
type DigestSent struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdvisorID  uint      `gorm:"not null;uniqueIndex:idx_digest_advisor_date" json:"advisor_id"`
	DigestDate string    `gorm:"size:10;not null;uniqueIndex:idx_digest_advisor_date" json:"digest_date"`
	SentAt     time.Time `gorm:"not null" json:"sent_at"`
}

// TableName specifies the table name for the DigestSent model
func (DigestSent) TableName() string {
	return "digest_sent"
}

// CreateReminderLogRequest represents the payload recorded when an advisor
// dispatches a reminder
type CreateReminderLogRequest struct {
	SourceType  ReminderSourceType `json:"source_type" binding:"required,oneof=lead customer"`
	SourceID    uint               `json:"source_id" binding:"required"`
	TemplateID  *uint              `json:"template_id"`
	Category    string             `json:"category" binding:"required"`
	MessageSent string             `json:"message_sent"`
}
