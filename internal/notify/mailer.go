// Package notify sends best-effort email notifications. Failures are
// logged and never surfaced to the request that triggered them.
package notify

import (
	"fmt"
	"time"

	"github.com/NeLsOnxX33/ai-chatbot-copilot/internal/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// Notifier receives domain events that may produce outbound mail
type Notifier interface {
	FeedbackReceived(sessionID string, rating *int, comment string)
}

// Mailer notifies the configured admin address over SMTP
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a mailer from SMTP configuration
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// FeedbackReceived emails the admin about a new feedback submission. The
// send happens on its own goroutine; the submission has already succeeded
// by the time this runs.
func (m *Mailer) FeedbackReceived(sessionID string, rating *int, comment string) {
	if !m.cfg.Configured() {
		log.Warn().Msg("Email configuration incomplete, skipping notification")
		return
	}

	ratingText := "N/A"
	if rating != nil {
		ratingText = fmt.Sprintf("%d", *rating)
	}
	if comment == "" {
		comment = "No comment provided"
	}

	subject := fmt.Sprintf("New Chatbot Feedback - Rating: %s/5", ratingText)
	body := fmt.Sprintf(
		"New feedback received from chatbot:\n\n"+
			"Session ID: %s\nRating: %s/5\nComment: %s\nTimestamp: %s\n",
		sessionID, ratingText, comment, time.Now().Format("2006-01-02 15:04:05"),
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Username)
	msg.SetHeader("To", m.cfg.AdminEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	go func() {
		if err := dialer.DialAndSend(msg); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to send feedback notification")
			return
		}
		log.Info().Str("session_id", sessionID).Msg("Feedback notification sent")
	}()
}

// Noop discards all notifications. Used in tests and when notifications
// are disabled.
type Noop struct{}

// FeedbackReceived implements Notifier
func (Noop) FeedbackReceived(string, *int, string) {}
