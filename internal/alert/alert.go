// Package alert sends email notifications for conditions that need a human:
// an over-temperature emergency or a probe that stopped reading.
package alert

import (
	"context"
	"time"

	mailgun "github.com/mailgun/mailgun-go/v3"

	"github.com/opensmoker/smokerd/internal/configuration"
)

const sendTimeout = 10 * time.Second

// Sender delivers one notification.
type Sender interface {
	Send(subject string, body string) error
}

// MailgunSender delivers notifications through the mailgun API.
type MailgunSender struct {
	config configuration.MailgunConfig
	client *mailgun.MailgunImpl
}

func NewMailgunSender(config configuration.MailgunConfig) *MailgunSender {
	return &MailgunSender{
		config: config,
		client: mailgun.NewMailgun(config.Domain, config.ApiKey),
	}
}

func (s *MailgunSender) Send(subject string, body string) error {
	message := s.client.NewMessage(s.config.Sender, subject, body, s.config.Recipients...)
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	_, _, err := s.client.Send(ctx, message)
	return err
}
