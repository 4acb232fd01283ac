package domain

import "github.com/google/uuid"

// NotificationJob is an ephemeral unit of outbound mail. It is created at the
// moment of a lifecycle transition, consumed by the dispatcher, and discarded
// after delivery or final failure. It is never persisted.
type NotificationJob struct {
	ID       string
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// NewNotificationJob creates a job with a fresh correlation ID.
func NewNotificationJob(to, subject, htmlBody, textBody string) *NotificationJob {
	return &NotificationJob{
		ID:       uuid.NewString(),
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// Dispatcher accepts notification jobs for asynchronous, best-effort
// delivery. Enqueue never blocks the caller and gives no delivery signal.
type Dispatcher interface {
	Enqueue(job *NotificationJob)
}
