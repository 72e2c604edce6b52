package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// EmailNotifier delivers escalation alerts to the team inbox via Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
}

func NewEmailNotifier(apiKey, from, to string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, subject, message string) error {
	body := strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: subject,
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<p style="color: #333; font-size: 15px; line-height: 1.5;">%s</p>
				<p style="color: #aaa; font-size: 12px;">
					Sent by the feedback service. Review the admin dashboard for details.
				</p>
			</div>
		`, body),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	log.Printf("📧 Alert email sent (ID: %s)", sent.Id)
	return nil
}
