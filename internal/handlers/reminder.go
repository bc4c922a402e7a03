package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"saarthi/internal/auth"
	"saarthi/internal/database"
	"saarthi/internal/models"
	"saarthi/internal/reminders"

	"github.com/gin-gonic/gin"
)

// messageLocation is the timezone reminder messages render dates in. The
// advisor base is Indian; template dates follow their wall clock, not the
// server's.
var messageLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.Local
	}
	return loc
}()

// defaultTemplates are used when the advisor has not saved their own text for
// a category
var defaultTemplates = map[reminders.Category]string{
	reminders.CategoryNurturing:   "Hi {name}, just checking in to see if you had any questions. Happy to help anytime!",
	reminders.CategoryBirthday:    "Happy birthday, {name}! Wishing you a wonderful year ahead.",
	reminders.CategoryAnniversary: "Happy anniversary, {name}! Warm wishes on {anniversary}.",
	reminders.CategoryRenewal:     "Hi {name}, your policy {policy_number} is due for renewal on {renewal_date}. Shall we connect?",
}

// GetReminderLeads returns the advisor's leads projected as reminder subjects,
// newest first (the nurturing view)
func GetReminderLeads(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var leads []models.Lead
	if err := db.Where("advisor_id = ?", advisorID).Order("created_at DESC").Find(&leads).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch leads", err)
		return
	}

	subjects := make([]reminders.Subject, 0, len(leads))
	for _, l := range leads {
		subjects = append(subjects, l.ReminderSubject())
	}

	c.JSON(http.StatusOK, subjects)
}

// GetReminderCustomers returns the advisor's customers that carry the anchor
// date for the requested category
func GetReminderCustomers(c *gin.Context) {
	category, err := reminders.ParseCategory(c.DefaultQuery("type", string(reminders.CategoryRenewal)))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown reminder type", err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	var customers []models.Customer
	if err := db.Where("advisor_id = ?", advisorID).Find(&customers).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch customers", err)
		return
	}

	subjects := make([]reminders.Subject, 0, len(customers))
	for _, cu := range customers {
		s := cu.ReminderSubject()
		if _, ok := s.Anchor(category); !ok {
			continue
		}
		subjects = append(subjects, s)
	}

	c.JSON(http.StatusOK, subjects)
}

// GetReminderLogs returns today's dispatch log, optionally narrowed to one category
func GetReminderLogs(c *gin.Context) {
	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := db.Where("advisor_id = ? AND sent_at >= ?", advisorID, dayStart)
	if raw := c.Query("category"); raw != "" {
		category, err := reminders.ParseCategory(raw)
		if err != nil {
			handleError(c, http.StatusBadRequest, "Unknown category", err)
			return
		}
		query = query.Where("category = ?", category)
	}

	var logs []models.ReminderLog
	if err := query.Order("sent_at DESC").Find(&logs).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch reminder logs", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// CreateReminderLog records that the advisor dispatched a reminder, which
// removes the subject from that category's worklist for the rest of the day
func CreateReminderLog(c *gin.Context) {
	var request models.CreateReminderLogRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	category, err := reminders.ParseCategory(request.Category)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown category", err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()

	// The subject must belong to the caller
	switch request.SourceType {
	case models.ReminderSourceLead:
		var lead models.Lead
		if err := db.Where("id = ? AND advisor_id = ?", request.SourceID, advisorID).First(&lead).Error; err != nil {
			handleError(c, http.StatusNotFound, "Lead not found", err)
			return
		}
	case models.ReminderSourceCustomer:
		var customer models.Customer
		if err := db.Where("id = ? AND advisor_id = ?", request.SourceID, advisorID).First(&customer).Error; err != nil {
			handleError(c, http.StatusNotFound, "Customer not found", err)
			return
		}
	}

	entry := models.ReminderLog{
		AdvisorID:   advisorID,
		SourceType:  request.SourceType,
		SourceID:    request.SourceID,
		TemplateID:  request.TemplateID,
		Category:    category,
		MessageSent: request.MessageSent,
		SentAt:      time.Now(),
	}

	if err := db.Create(&entry).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to record reminder", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// worklistEntry is one row of the resolved reminder worklist
type worklistEntry struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	LeadStatus  string `json:"lead_status,omitempty"`
	DisplayDate string `json:"display_date"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// GetReminderWorklist resolves the ordered list of subjects still due for a
// reminder today: subjects and today's dispatch logs are loaded together,
// already-dispatched subjects are excluded, the name search is applied, and
// each remaining subject gets its display date and rendered message
func GetReminderWorklist(c *gin.Context) {
	category, err := reminders.ParseCategory(c.Query("category"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown category", err)
		return
	}

	sourceType, err := worklistSource(c.Query("source"), category)
	if err != nil {
		handleError(c, http.StatusBadRequest, "Unknown source", err)
		return
	}

	advisorID := auth.AdvisorID(c)
	db := database.GetDB()
	today := time.Now()

	snap, err := loadSnapshot(advisorID, sourceType, category, today)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load worklist", err)
		return
	}

	message := defaultTemplates[category]
	var template models.MessageTemplate
	if err := db.Where("advisor_id = ? AND category = ?", advisorID, category).First(&template).Error; err == nil {
		message = template.TemplateMessage
	}

	subjects := reminders.BuildWorklist(snap, category, c.Query("search"), today)

	entries := make([]worklistEntry, 0, len(subjects))
	for _, s := range subjects {
		rendered := reminders.RenderTemplate(message, s, messageLocation)
		entries = append(entries, worklistEntry{
			ID:          s.ID,
			FullName:    s.FullName,
			PhoneNumber: s.PhoneNumber,
			LeadStatus:  s.LeadStatus,
			DisplayDate: reminders.FormatAnchorDate(s, category, today),
			Message:     rendered,
			WhatsAppURL: whatsappURL(s.PhoneNumber, rendered),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"source":   sourceType,
		"entries":  entries,
	})
}

// worklistSource picks which table feeds the worklist. Renewals only exist on
// customers; nurturing only makes sense for leads; birthdays and anniversaries
// can come from either.
func worklistSource(raw string, category reminders.Category) (models.ReminderSourceType, error) {
	switch raw {
	case "":
		if category == reminders.CategoryRenewal {
			return models.ReminderSourceCustomer, nil
		}
		return models.ReminderSourceLead, nil
	case string(models.ReminderSourceLead):
		if category == reminders.CategoryRenewal {
			return "", errors.New("renewal reminders come from customers")
		}
		return models.ReminderSourceLead, nil
	case string(models.ReminderSourceCustomer):
		if category == reminders.CategoryNurturing {
			return "", errors.New("nurturing reminders come from leads")
		}
		return models.ReminderSourceCustomer, nil
	default:
		return "", errors.New("source must be lead or customer")
	}
}

// loadSnapshot fetches the subjects and today's dispatch logs as one unit so
// the exclusion step never mixes logs from a different moment
func loadSnapshot(advisorID uint, sourceType models.ReminderSourceType, category reminders.Category, today time.Time) (reminders.Snapshot, error) {
	db := database.GetDB()
	var snap reminders.Snapshot

	switch sourceType {
	case models.ReminderSourceLead:
		var leads []models.Lead
		if err := db.Where("advisor_id = ?", advisorID).Find(&leads).Error; err != nil {
			return snap, err
		}
		for _, l := range leads {
			snap.Subjects = append(snap.Subjects, l.ReminderSubject())
		}
	case models.ReminderSourceCustomer:
		var customers []models.Customer
		if err := db.Where("advisor_id = ?", advisorID).Find(&customers).Error; err != nil {
			return snap, err
		}
		for _, cu := range customers {
			snap.Subjects = append(snap.Subjects, cu.ReminderSubject())
		}
	}

	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var logs []models.ReminderLog
	if err := db.Where("advisor_id = ? AND source_type = ? AND category = ? AND sent_at >= ?",
		advisorID, sourceType, category, dayStart).Find(&logs).Error; err != nil {
		return snap, err
	}
	for _, l := range logs {
		snap.Logs = append(snap.Logs, l.SentLog())
	}

	return snap, nil
}

// whatsappURL builds the wa.me dispatch link for a rendered message
func whatsappURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}
