// Package jobs schedules the recurring background work: a daily digest
// of new inquiries mailed to the site operator.
package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/mailer"
	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/repository"
)

// digestWindow is how far back each digest looks.
const digestWindow = 24 * time.Hour

// Digest mails the operator a summary of recent inquiries.
type Digest struct {
	db     *sql.DB
	mailer mailer.Mailer
	cfg    *config.Config
	log    *logrus.Logger
}

// NewDigest initializes the digest job.
func NewDigest(db *sql.DB, m mailer.Mailer, cfg *config.Config, log *logrus.Logger) *Digest {
	return &Digest{db: db, mailer: m, cfg: cfg, log: log}
}

// Start registers the job on its configured schedule and starts the
// scheduler. The returned cron can be stopped on shutdown.
func Start(d *Digest, log *logrus.Logger) (*cron.Cron, error) {
	c := cron.New()
	schedule := d.cfg.Get("DIGEST_SCHEDULE")
	_, err := c.AddFunc(schedule, func() {
		if err := d.Run(context.Background()); err != nil {
			log.Errorf("Inquiry digest failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", schedule, err)
	}
	c.Start()
	log.Infof("Inquiry digest scheduled: %s", schedule)
	return c, nil
}

// Run sends one digest covering the last 24 hours. Sends nothing when
// no inquiries arrived.
func (d *Digest) Run(ctx context.Context) error {
	inquiries, err := repository.New(d.db).ListInquiriesSince(ctx, time.Now().Add(-digestWindow))
	if err != nil {
		return err
	}
	if len(inquiries) == 0 {
		d.log.Info("Inquiry digest: nothing to report")
		return nil
	}

	msg := mailer.Message{
		From:    d.cfg.EmailFrom(),
		To:      d.cfg.EmailTo(),
		Subject: fmt.Sprintf("Inquiry digest: %d new message(s)", len(inquiries)),
		HTML:    digestHTML(inquiries),
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	d.log.Infof("Inquiry digest sent: %d inquiries", len(inquiries))
	return nil
}

// digestHTML renders the digest body with every user-supplied field
// escaped.
func digestHTML(inquiries []models.Inquiry) string {
	var b strings.Builder
	b.WriteString("<p>New inquiries in the last 24 hours:</p>\n<ul>\n")
	for _, inq := range inquiries {
		fmt.Fprintf(&b, "<li><b>%s</b> (%s, %s): %s</li>\n",
			html.EscapeString(inq.Name),
			html.EscapeString(inq.Email),
			html.EscapeString(inq.Phone),
			html.EscapeString(inq.Message),
		)
	}
	b.WriteString("</ul>")
	return b.String()
}
