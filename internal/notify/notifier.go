package notify

import "context"

// Notifier defines the interface for publishing escalation alerts.
// This abstraction allows swapping the log notifier with a real email
// integration without refactoring.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}
