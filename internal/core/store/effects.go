package store

import (
	"time"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// Effect is a side effect requested by an Action and carried out by the
// Store after the new state has been published.
type Effect interface {
	isEffect()
}

// Notify enqueues a user-visible notification. A zero Duration keeps it
// until dismissed; DefaultDuration asks for the notifier's default.
type Notify struct {
	Kind     domain.NotificationKind
	Message  string
	Duration time.Duration
}

// ScheduleSync (re)arms the debounced cloud sync.
type ScheduleSync struct{}

func (Notify) isEffect()       {}
func (ScheduleSync) isEffect() {}

// DefaultDuration selects the notifier's configured default lifetime.
const DefaultDuration time.Duration = -1

func notify(kind domain.NotificationKind, msg string) Notify {
	return Notify{Kind: kind, Message: msg, Duration: DefaultDuration}
}

// synced is the effect list of a user edit to cloud-backed data.
func synced(msg string) []Effect {
	return []Effect{notify(domain.NotifySuccess, msg), ScheduleSync{}}
}
