package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/brightshine/laundry-api/config"
)

// MailService handles outbound email. Delivery is best-effort: the
// caller commits its own state first and only logs a send failure.
type MailService interface {
	// SendWelcomeEmail sends the signup welcome mail
	SendWelcomeEmail(to, username string) error
}

// SMTPMailService implements MailService over plain SMTP
type SMTPMailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var mailServiceInstance MailService

// InitMailService initializes the mail service from configuration
func InitMailService(cfg *config.Config) MailService {
	mailServiceInstance = &SMTPMailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
	return mailServiceInstance
}

// GetMailService returns the initialized mail service instance
func GetMailService() MailService {
	return mailServiceInstance
}

// SetMailService sets the mail service instance (primarily for testing)
func SetMailService(service MailService) {
	mailServiceInstance = service
}

// SendWelcomeEmail sends the signup welcome mail over SMTP
func (s *SMTPMailService) SendWelcomeEmail(to, username string) error {
	if s.host == "" {
		// No SMTP configured (local development); skip delivery
		log.Printf("SMTP not configured, skipping welcome email to %s", to)
		return nil
	}

	subject := "Welcome to Bright & Shine"
	body := fmt.Sprintf(`Hi %s,

Welcome to Bright & Shine!

Your account has been created successfully.

Enjoy our laundry services anytime - fast & clean!
`, username)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
