package notify

import (
	"context"
	"digiroots/internal/logger"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v5"
	"go.uber.org/zap"
)

// MailgunNotifier delivers through the Mailgun HTTP API, for hosts where
// outbound SMTP is blocked.
type MailgunNotifier struct {
	mg     mailgun.Mailgun
	domain string
	from   string
}

func NewMailgunNotifier(domain, apiKey, from, fromName string) (*MailgunNotifier, error) {
	if domain == "" || apiKey == "" {
		return nil, errors.New("notify: mailgun domain and api key are required")
	}
	if from == "" {
		from = "no-reply@" + domain
	}
	return &MailgunNotifier{
		mg:     mailgun.NewMailgun(apiKey),
		domain: domain,
		from:   fmt.Sprintf("%s <%s>", fromName, from),
	}, nil
}

func (n *MailgunNotifier) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	m := mailgun.NewMessage(n.domain, n.from, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		m.SetHTML(msg.HTML)
	}

	resp, err := n.mg.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("notify: mailgun send: %w", err)
	}
	logger.WithCtx(ctx).Debug("Mailgun accepted message", zap.String("id", resp.ID))
	return nil
}
