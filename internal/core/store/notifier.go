package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// DefaultNotificationDuration is how long a toast lives unless told otherwise.
const DefaultNotificationDuration = 3 * time.Second

// Notifier is the user-visible notification queue of one session. Entries
// are appended in arrival order with no deduplication.
type Notifier struct {
	mu              sync.Mutex
	items           []domain.Notification
	timers          map[string]*time.Timer
	defaultDuration time.Duration
	now             func() time.Time
}

// NewNotifier returns a Notifier. A non-positive defaultDuration selects
// DefaultNotificationDuration.
func NewNotifier(defaultDuration time.Duration) *Notifier {
	if defaultDuration <= 0 {
		defaultDuration = DefaultNotificationDuration
	}
	return &Notifier{
		timers:          make(map[string]*time.Timer),
		defaultDuration: defaultDuration,
		now:             time.Now,
	}
}

// Add appends a notification and returns its ID. It removes itself after d;
// d == 0 keeps it until Remove is called and a negative d uses the default.
func (n *Notifier) Add(kind domain.NotificationKind, message string, d time.Duration) string {
	if d < 0 {
		d = n.defaultDuration
	}
	id := uuid.NewString()

	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, domain.Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		Duration:  d,
		CreatedAt: n.now().UTC(),
	})
	if d > 0 {
		n.timers[id] = time.AfterFunc(d, func() { n.Remove(id) })
	}
	return id
}

// Remove drops the notification with id. Unknown IDs are ignored.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// List returns a copy of the pending notifications, oldest first.
func (n *Notifier) List() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification{}, n.items...)
}

// Close stops every pending removal timer.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
}
