package services

import (
	"log"
	"time"

	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/reminders"

	"gorm.io/gorm"
)

type ReminderDigestWorker struct {
	db           *gorm.DB
	emailService *EmailService
	interval     time.Duration
}

func NewReminderDigestWorker() *ReminderDigestWorker {
	return &ReminderDigestWorker{
		db:           database.GetDB(),
		emailService: NewEmailService(),
		interval:     time.Hour, // Check every hour
	}
}

func (w *ReminderDigestWorker) Start() {
	go w.run()
}

func (w *ReminderDigestWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.sendDailyDigests()
	}
}

// Check if the digest has already gone out to this advisor today
func (w *ReminderDigestWorker) hasDigestBeenSent(advisorID uint, digestDate string) bool {
	var count int64
	w.db.Model(&models.DigestSent{}).
		Where("advisor_id = ? AND digest_date = ?", advisorID, digestDate).
		Count(&count)
	return count > 0
}

// Record that the digest was sent
func (w *ReminderDigestWorker) recordDigest(advisorID uint, digestDate string) {
	digest := models.DigestSent{
		AdvisorID:  advisorID,
		DigestDate: digestDate,
		SentAt:     time.Now(),
	}
	w.db.Create(&digest)
}

func (w *ReminderDigestWorker) sendDailyDigests() {
	today := time.Now()
	digestDate := today.Format("2006-01-02")

	var advisors []models.Advisor
	w.db.Find(&advisors)

	for _, advisor := range advisors {
		if !advisor.SubscriptionCurrent() {
			continue
		}
		if w.hasDigestBeenSent(advisor.ID, digestDate) {
			continue
		}
		w.sendDigestForAdvisor(advisor, today, digestDate)
	}
}

func (w *ReminderDigestWorker) sendDigestForAdvisor(advisor models.Advisor, today time.Time, digestDate string) {
	worklists := map[reminders.Category][]reminders.Subject{}

	leadSnap := w.leadSnapshot(advisor.ID, today)
	customerSnap := w.customerSnapshot(advisor.ID, today)

	for _, category := range reminders.Categories {
		if !category.Recurring() {
			continue
		}
		due := dueToday(reminders.BuildWorklist(leadSnap, category, "", today), category, today)
		due = append(due, dueToday(reminders.BuildWorklist(customerSnap, category, "", today), category, today)...)
		if len(due) > 0 {
			worklists[category] = due
		}
	}

	if len(worklists) == 0 {
		return
	}

	if err := w.emailService.SendReminderDigest(advisor, worklists, today); err != nil {
		log.Printf("Failed to send reminder digest to advisor %d: %v", advisor.ID, err)
		return
	}

	w.recordDigest(advisor.ID, digestDate)
	log.Printf("Sent reminder digest to advisor %d for %s", advisor.ID, digestDate)
}

// leadSnapshot pairs the advisor's leads with today's lead reminder logs so the
// worklist sees a consistent exclusion set
func (w *ReminderDigestWorker) leadSnapshot(advisorID uint, today time.Time) reminders.Snapshot {
	var leads []models.Lead
	w.db.Where("advisor_id = ?", advisorID).Find(&leads)

	subjects := make([]reminders.Subject, 0, len(leads))
	for _, l := range leads {
		subjects = append(subjects, l.ReminderSubject())
	}

	return reminders.Snapshot{
		Subjects: subjects,
		Logs:     w.sentLogsToday(advisorID, models.ReminderSourceLead, today),
	}
}

func (w *ReminderDigestWorker) customerSnapshot(advisorID uint, today time.Time) reminders.Snapshot {
	var customers []models.Customer
	w.db.Where("advisor_id = ?", advisorID).Find(&customers)

	subjects := make([]reminders.Subject, 0, len(customers))
	for _, c := range customers {
		subjects = append(subjects, c.ReminderSubject())
	}

	return reminders.Snapshot{
		Subjects: subjects,
		Logs:     w.sentLogsToday(advisorID, models.ReminderSourceCustomer, today),
	}
}

func (w *ReminderDigestWorker) sentLogsToday(advisorID uint, sourceType models.ReminderSourceType, today time.Time) []reminders.SentLog {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var rows []models.ReminderLog
	w.db.Where("advisor_id = ? AND source_type = ? AND sent_at >= ?", advisorID, sourceType, dayStart).Find(&rows)

	logs := make([]reminders.SentLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, r.SentLog())
	}
	return logs
}

// dueToday keeps only subjects whose next occurrence falls on the current date
func dueToday(subjects []reminders.Subject, category reminders.Category, today time.Time) []reminders.Subject {
	var due []reminders.Subject
	for _, s := range subjects {
		next, ok := s.UpcomingAnchor(category, today)
		if ok && next.Format("01-02") == today.Format("01-02") {
			due = append(due, s)
		}
	}
	return due
}
