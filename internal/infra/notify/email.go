// internal/infra/notify/email.go
package notify

import (
	"context"
	"fmt"

	"punchclock/internal/domain/notify"

	"github.com/resend/resend-go/v2"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailTransport delivers pages through the Resend API. Pointing To at an
// SMS gateway address turns pages into text messages.
type EmailTransport struct {
	emails emailSender
	from   string
	to     string
}

func NewEmailTransport(apiKey, from, to string) *EmailTransport {
	client := resend.NewClient(apiKey)
	return &EmailTransport{emails: client.Emails, from: from, to: to}
}

func (t *EmailTransport) Name() string { return "email" }

func (t *EmailTransport) Send(ctx context.Context, level notify.Level, body string) error {
	_, err := t.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    t.from,
		To:      []string{t.to},
		Subject: fmt.Sprintf("punchclock %s", level),
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}
