// Package email sends transactional email through Resend using embedded
// HTML templates.
package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/iban-checker/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// sender is the part of resend's email service the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and sends them through Resend.
type Client struct {
	emails sender
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		emails: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   cfg.Report.From,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends it to every address in to.
func (c *Client) SendEmail(ctx context.Context, to []string, subject string, templateName Template, data any) error {
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", resp.Id).
		Int("recipients", len(to)).
		Msg("email sent")

	return nil
}
