// Package resend is a minimal client for the Resend transactional email
// API. Only the single "send" call the service needs is implemented.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/mailer"
)

// DefaultBaseURL is the production Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// Client sends email through the Resend HTTP API.
type Client struct {
	baseURL string
	cfg     *config.Config
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a Resend client. The API key is read from
// configuration on every send, so a key set after startup still works.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		cfg:     cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// NewClientWithBaseURL points the client at a non-default endpoint.
// Used by tests.
func NewClientWithBaseURL(cfg *config.Config, log *logrus.Logger, baseURL string) *Client {
	c := NewClient(cfg, log)
	c.baseURL = baseURL
	return c
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one message via POST /emails.
func (c *Client) Send(ctx context.Context, msg mailer.Message) error {
	apiKey := c.cfg.Get("RESEND_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}

	body, err := json.Marshal(sendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Errorf("Resend rejected email to %s: status %d: %s", msg.To, resp.StatusCode, detail)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	c.log.Infof("Email sent to %s: %s", msg.To, msg.Subject)
	return nil
}
