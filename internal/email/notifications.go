package email

import (
	"context"
	"log"

	"airvoice/internal/config"
	"airvoice/internal/models"
)

// SupervisorEmailGetter is an interface for getting supervisor emails.
type SupervisorEmailGetter interface {
	GetSupervisorEmails(ctx context.Context) ([]string, error)
}

// Notifier sends email notifications for feedback events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	db        SupervisorEmailGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db SupervisorEmailGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		db:        db,
	}
}

// NotifyUrgentFeedback alerts supervisors about urgent negative feedback.
func (n *Notifier) NotifyUrgentFeedback(feedback *models.Feedback) {
	if !n.service.IsEnabled() {
		return
	}

	emails, err := n.db.GetSupervisorEmails(context.Background())
	if err != nil {
		log.Printf("Failed to get supervisor emails: %v", err)
		return
	}
	if len(emails) == 0 {
		log.Println("No supervisor emails found for notification")
		return
	}

	subject, htmlBody, textBody := n.templates.UrgentFeedback(feedback)
	n.service.SendAsync(emails, subject, htmlBody, textBody)
}
