package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"saarthi/internal/models"
	"saarthi/internal/reminders"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendWelcomeEmail greets a newly onboarded advisor
func (s *EmailService) SendWelcomeEmail(advisor models.Advisor) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(advisor.FullName, advisor.Email)
	subject := "Welcome to Saarthi"
	plainContent := fmt.Sprintf("Hello %s, your Saarthi workspace is ready. Add your first lead to get started.", advisor.FullName)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your Saarthi workspace is ready. Add your first lead to get started.</p>", advisor.FullName)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	_, err := s.client.Send(message)
	return err
}

// SendReminderDigest emails an advisor the day's outstanding reminders,
// grouped by category. Categories with an empty worklist are skipped.
func (s *EmailService) SendReminderDigest(advisor models.Advisor, worklists map[reminders.Category][]reminders.Subject, today time.Time) error {
	total := 0
	for _, subjects := range worklists {
		total += len(subjects)
	}
	if total == 0 {
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(advisor.FullName, advisor.Email)
	subject := fmt.Sprintf("Saarthi: %d reminders due today", total)

	var plain strings.Builder
	var html strings.Builder
	fmt.Fprintf(&plain, "Hello %s, here is today's outreach list:\n\n", advisor.FullName)
	fmt.Fprintf(&html, "<p>Hello %s, here is today's outreach list:</p>", advisor.FullName)

	for _, category := range reminders.Categories {
		subjects := worklists[category]
		if len(subjects) == 0 {
			continue
		}
		fmt.Fprintf(&plain, "%s:\n", category.Label())
		fmt.Fprintf(&html, "<h4>%s</h4><ul>", category.Label())
		for _, subj := range subjects {
			line := fmt.Sprintf("%s — %s", subj.FullName, reminders.FormatAnchorDate(subj, category, today))
			fmt.Fprintf(&plain, "  - %s\n", line)
			fmt.Fprintf(&html, "<li>%s</li>", line)
		}
		plain.WriteString("\n")
		html.WriteString("</ul>")
	}

	message := mail.NewSingleEmail(from, subject, to, plain.String(), html.String())
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send digest to %s: %d", advisor.Email, response.StatusCode)
	}
	return nil
}

// SendPaymentReceiptEmail confirms a successful subscription payment
func (s *EmailService) SendPaymentReceiptEmail(advisor models.Advisor, order models.PaymentOrder) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(advisor.FullName, advisor.Email)
	subject := fmt.Sprintf("Payment received for your %s plan", order.PlanCode)
	amount := float64(order.AmountPaise) / 100
	plainContent := fmt.Sprintf("Hello %s, we received your payment of ₹%.2f. Your subscription is active.", advisor.FullName, amount)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>We received your payment of <strong>₹%.2f</strong>. Your subscription is active.</p>", advisor.FullName, amount)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send receipt to %s: %d", advisor.Email, response.StatusCode)
	}
	return nil
}
