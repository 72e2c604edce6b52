package notify

import (
	"context"
	"log"
)

// LogNotifier implements the Notifier interface by logging alerts to stdout.
// Used when no email delivery is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, subject, message string) error {
	log.Printf("📨 [Alert] %s\n%s", subject, message)
	return nil
}
