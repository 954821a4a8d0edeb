package service

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/apperr"
	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/mailer"
	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/repository"
)

// ContactService validates contact submissions, persists them and
// notifies the site operator by email.
type ContactService struct {
	db     *sql.DB
	mailer mailer.Mailer
	cfg    *config.Config
	log    *logrus.Logger
}

// NewContactService initializes the contact pipeline.
func NewContactService(db *sql.DB, m mailer.Mailer, cfg *config.Config, log *logrus.Logger) *ContactService {
	return &ContactService{db: db, mailer: m, cfg: cfg, log: log}
}

// Submit validates and persists an inquiry, then dispatches the
// notification email. A persistence failure aborts the submission; an
// email failure after persistence returns apperr.ErrNotification with
// the inquiry intact, so the caller reports success-with-warning.
func (s *ContactService) Submit(ctx context.Context, name, email, phone, message string) (*models.Inquiry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	message = strings.TrimSpace(message)

	switch {
	case name == "" || email == "" || phone == "" || message == "":
		return nil, fmt.Errorf("%w: all fields are required", apperr.ErrValidation)
	case !validEmail(email) || len(email) > maxEmailLen:
		return nil, fmt.Errorf("%w: please enter a valid email address", apperr.ErrValidation)
	case len(name) > maxNameLen:
		return nil, fmt.Errorf("%w: name is too long", apperr.ErrValidation)
	case len(phone) > maxPhoneLen:
		return nil, fmt.Errorf("%w: phone number is too long", apperr.ErrValidation)
	case len(message) > maxMessageLen:
		return nil, fmt.Errorf("%w: message is too long", apperr.ErrValidation)
	}

	inq := &models.Inquiry{Name: name, Email: email, Phone: phone, Message: message}
	err := repository.WithTx(ctx, s.db, func(ctx context.Context, r *repository.Repository) error {
		return r.CreateInquiry(ctx, inq)
	})
	if err != nil {
		return nil, err
	}

	msg := mailer.Message{
		From:    s.cfg.EmailFrom(),
		To:      s.cfg.EmailTo(),
		ReplyTo: email,
		Subject: "New message from HNF webshop",
		HTML:    inquiryHTML(inq),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The inquiry is already recorded; the operator just missed the
		// notification. The cause stays in the logs, not the response.
		s.log.Errorf("Failed to send contact notification for inquiry %d: %v", inq.ID, err)
		return inq, fmt.Errorf("%w: contact notification failed", apperr.ErrNotification)
	}

	s.log.Infof("Contact inquiry %d submitted by %s", inq.ID, inq.Email)
	return inq, nil
}

// inquiryHTML renders the notification body. Every user-supplied field
// is escaped before interpolation; newlines become <br> afterwards so a
// multi-line message keeps its shape without reopening the injection path.
func inquiryHTML(inq *models.Inquiry) string {
	safeName := html.EscapeString(inq.Name)
	safeEmail := html.EscapeString(inq.Email)
	safePhone := html.EscapeString(inq.Phone)
	safeMessage := strings.ReplaceAll(html.EscapeString(inq.Message), "\n", "<br>")

	return fmt.Sprintf(
		"<p><b>From:</b> %s (%s)</p>\n<p><b>Phone:</b> %s</p>\n<p><b>Message:</b></p>\n<p>%s</p>",
		safeName, safeEmail, safePhone, safeMessage,
	)
}
