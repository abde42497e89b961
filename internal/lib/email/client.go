// Package email sends the registrar notices through Resend.
//
// Bodies are rendered from the HTML templates embedded under templates/.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	senderName    = "College Records"
	defaultSender = "onboarding@resend.dev"
)

// emailSender is the part of the Resend API the client uses.
type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender emailSender
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Client for the configured Resend API key.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.SenderEmail
	if from == "" {
		from = defaultSender
	}

	return &Client{
		sender: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   from,
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(templateName Template, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to one recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.sender.Send(&resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, c.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", resp.Id).
		Msg("email sent")

	return nil
}
