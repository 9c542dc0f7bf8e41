package report

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/config"
)

// Mailer sends report emails via SMTP
type Mailer struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewMailer creates a new report mailer
func NewMailer(cfg *config.Config, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendOrderSummary sends the daily order summary to the given recipients
func (m *Mailer) SendOrderSummary(to []string, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.SenderEmail
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		m.log.Errorf("Failed to send summary email: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Infof("Summary email sent to %d recipients", len(to))
	return nil
}
