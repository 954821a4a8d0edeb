package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/config"
)

// SMTPSender sends email through a plain SMTP relay. Used when MAILER
// is set to "smtp".
type SMTPSender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSMTPSender creates an SMTP-backed mailer.
func NewSMTPSender(cfg *config.Config, logger *logrus.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers one message over SMTP.
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	e := email.NewEmail()
	e.From = msg.From
	e.To = []string{msg.To}
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	host := s.cfg.Get("SMTP_HOST")
	addr := fmt.Sprintf("%s:%s", host, s.cfg.Get("SMTP_PORT"))
	auth := smtp.PlainAuth("", s.cfg.Get("SMTP_USERNAME"), s.cfg.Get("SMTP_PASSWORD"), host)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", msg.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", msg.To, msg.Subject)
	return nil
}
