package domain

import "time"

// NotificationKind identifies which session transition produced a notification.
type NotificationKind string

const (
	NotifySessionCreated   NotificationKind = "session_created"
	NotifySessionConfirmed NotificationKind = "session_confirmed"
)

// Notification is the outbound event emitted after a session transition
// commits. Delivery is asynchronous and best-effort; failure never reaches
// the caller of the transition.
type Notification struct {
	Kind           NotificationKind
	SessionID      string
	RecipientID    string
	RecipientName  string
	RecipientEmail string
	SessionTitle   string
	ScheduledDate  time.Time
	EmittedAt      time.Time
}
