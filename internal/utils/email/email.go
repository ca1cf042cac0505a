package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/tallytrace/finance-service/internal/config"
	"github.com/tallytrace/finance-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendVerification sends the email-verification link to a new user
func (s *Sender) SendVerification(to, firstName, verifyURL string) error {
	body := greeting(firstName) +
		"Welcome to Tally & Trace! Please confirm your email address by opening the link below:\n\n" +
		verifyURL + "\n\n" +
		"The link expires in " + fmt.Sprintf("%d", s.cfg.VerifyExpireHours) + " hours. " +
		"If you did not create an account, you can ignore this message.\n" +
		signature

	return s.send(to, "Confirm your email address", body)
}

// SendPasswordReset sends a password-reset link
func (s *Sender) SendPasswordReset(to, firstName, resetURL string) error {
	body := greeting(firstName) +
		"We received a request to reset your password. Open the link below to choose a new one:\n\n" +
		resetURL + "\n\n" +
		"The link expires in " + fmt.Sprintf("%d", s.cfg.ResetExpireHours) + " hours. " +
		"If you did not request a reset, your password is unchanged and you can ignore this message.\n" +
		signature

	return s.send(to, "Reset your password", body)
}

// SendUpcomingReminder sends a summary of obligations due within the next
// few days
func (s *Sender) SendUpcomingReminder(to, firstName string, items []models.UpcomingItem, leadDays int) error {
	body := greeting(firstName) +
		fmt.Sprintf("You have %d upcoming item(s) within the next %d day(s):\n\n", len(items), leadDays)
	for _, item := range items {
		body += fmt.Sprintf("  - %s: %.2f due %s\n", item.Name, item.Amount, item.DueDate)
	}
	body += signature

	return s.send(to, "Upcoming payments reminder", body)
}

func (s *Sender) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, subject)
	return nil
}

const signature = "\nBest regards,\nTally & Trace"

func greeting(firstName string) string {
	if firstName == "" {
		return "Hello,\n\n"
	}
	return fmt.Sprintf("Dear %s,\n\n", firstName)
}
