package domain

import "time"

// NotificationKind is the visual style of a toast.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "SUCCESS"
	NotifyError   NotificationKind = "ERROR"
	NotifyInfo    NotificationKind = "INFO"
	NotifyWarning NotificationKind = "WARNING"
)

// Notification is a short-lived user-visible message. A zero Duration means
// it stays until dismissed.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Duration  time.Duration    `json:"duration_ms"`
	CreatedAt time.Time        `json:"created_at"`
}
