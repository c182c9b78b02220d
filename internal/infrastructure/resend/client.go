package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/domain"
)

// Client submits emails through the Resend API.
type Client struct {
	api *resend.Client
}

// NewClient returns a Client for cfg's API key and base URL. httpClient may be nil.
func NewClient(cfg *config.Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	api := resend.NewCustomClient(httpClient, cfg.ResendAPIKey)
	if cfg.ResendBaseURL != "" {
		// Request paths are resolved relative to the base, which needs the trailing slash.
		base, err := url.Parse(strings.TrimRight(cfg.ResendBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse RESEND_BASE_URL: %w", err)
		}
		api.BaseURL = base
	}
	return &Client{api: api}, nil
}

// Send submits one message. Any non-2xx response is returned as an error.
func (c *Client) Send(ctx context.Context, msg domain.Email) error {
	_, err := c.api.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
