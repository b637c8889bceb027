package services

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/authgate/backend/internal/config"
	"github.com/authgate/backend/internal/domain"
	"github.com/authgate/backend/pkg/logger"
)

// EmailClient delivers one-time codes out of band. The auth service invokes
// Send once per issued challenge and never retries; retry policy belongs to
// the mail infrastructure.
type EmailClient interface {
	Send(ctx context.Context, recipient domain.Email, subject, body string) error
}

// LogEmailClient logs deliveries instead of sending them. Used in
// development and tests; the body is never logged because it carries the
// code.
type LogEmailClient struct{}

func (LogEmailClient) Send(ctx context.Context, recipient domain.Email, subject, body string) error {
	logger.Info("email_delivered", map[string]interface{}{
		"recipient": recipient.String(),
		"subject":   subject,
	})
	return nil
}

// SMTPEmailClient delivers through a plain SMTP relay.
type SMTPEmailClient struct {
	cfg config.SMTPConfig
}

func NewSMTPEmailClient(cfg config.SMTPConfig) *SMTPEmailClient {
	return &SMTPEmailClient{cfg: cfg}
}

func (c *SMTPEmailClient) Send(ctx context.Context, recipient domain.Email, subject, body string) error {
	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		c.cfg.From, recipient.String(), subject, body)

	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", c.cfg.Host, c.cfg.Port)
	if err := smtp.SendMail(addr, auth, c.cfg.From, []string{recipient.String()}, []byte(message)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
