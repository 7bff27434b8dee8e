// Package notify sends transactional email. Handlers and services depend on
// Notifier only; which provider is active is decided once at startup.
package notify

import (
	"context"
	"digiroots/internal/config"
	"errors"
	"fmt"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNoRecipient = errors.New("notify: message has no recipient")

func (m Message) validate() error {
	if m.To == "" {
		return ErrNoRecipient
	}
	return nil
}

// New builds the notifier selected by MAIL_PROVIDER.
func New(cfg *config.Config) (Notifier, error) {
	switch cfg.MailProvider {
	case "smtp":
		return NewSMTPNotifier(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.MailFromName,
		})
	case "mailgun":
		return NewMailgunNotifier(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.SMTPFrom, cfg.MailFromName)
	case "log":
		return NewLogNotifier(), nil
	default:
		return nil, fmt.Errorf("notify: unknown provider %q", cfg.MailProvider)
	}
}
