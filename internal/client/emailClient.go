package client

import (
	"context"
	"fmt"
	"html"

	"birthday-song-service/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

type EmailClient interface {
	SendSongReady(ctx context.Context, toEmail, recipientName, shareURL string) error
}

type sendGridClientImpl struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailClient returns a SendGrid-backed client, or a client that only logs
// when no API key is configured.
func NewEmailClient(cfg *config.SendGrid, log logrus.FieldLogger) EmailClient {
	if cfg.APIKey == "" {
		return &logOnlyEmailClient{log: log}
	}

	return &sendGridClientImpl{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

func (c *sendGridClientImpl) SendSongReady(ctx context.Context, toEmail, recipientName, shareURL string) error {
	from := mail.NewEmail(c.fromName, c.fromEmail)
	to := mail.NewEmail("", toEmail)
	subject, text, htmlBody := songReadyContent(recipientName, shareURL)

	message := mail.NewSingleEmail(from, subject, to, text, htmlBody)

	resp, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status code %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// songReadyContent builds the message bodies. Values are escaped in the HTML
// part only.
func songReadyContent(recipientName, shareURL string) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("%s's birthday song is ready", recipientName)
	text = fmt.Sprintf("Thanks for your order! The birthday song for %s is ready. Share it here: %s", recipientName, shareURL)
	htmlBody = fmt.Sprintf(`<p>Thanks for your order!</p><p>The birthday song for <strong>%s</strong> is ready.</p><p><a href="%s">Listen and share</a></p>`,
		html.EscapeString(recipientName), html.EscapeString(shareURL))
	return subject, text, htmlBody
}

type logOnlyEmailClient struct {
	log logrus.FieldLogger
}

func (c *logOnlyEmailClient) SendSongReady(ctx context.Context, toEmail, recipientName, shareURL string) error {
	c.log.WithFields(logrus.Fields{
		"to":        toEmail,
		"recipient": recipientName,
		"share_url": shareURL,
	}).Info("email delivery disabled, skipping song ready email")
	return nil
}
