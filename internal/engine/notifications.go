package engine

import "time"

// NotificationLevel represents the severity of a notification
type NotificationLevel int

const (
	// LevelInfo represents informational notifications
	LevelInfo NotificationLevel = iota
	// LevelWarning represents warnings, e.g. a change kept local because there is no credential
	LevelWarning
	// LevelError represents failed persistence
	LevelError
)

// Notification is a transient, non-blocking message for the user
type Notification struct {
	Level   NotificationLevel
	Message string
	At      time.Time
}

// Notifications is the queue of messages the UI shows until they expire.
// It is owned by the engine's loop and is not safe for concurrent use.
type Notifications struct {
	items []Notification
	now   func() time.Time
}

func newNotifications() *Notifications {
	return &Notifications{now: time.Now}
}

// Add queues a notification
func (n *Notifications) Add(level NotificationLevel, message string) {
	n.items = append(n.items, Notification{Level: level, Message: message, At: n.now()})
}

// All returns the queued notifications, oldest first
func (n *Notifications) All() []Notification {
	return n.items
}

// HasAny returns true if there are any notifications
func (n *Notifications) HasAny() bool {
	return len(n.items) > 0
}

// Clear removes all notifications
func (n *Notifications) Clear() {
	n.items = nil
}

// Expire drops notifications older than ttl and reports whether any were dropped
func (n *Notifications) Expire(ttl time.Duration) bool {
	cutoff := n.now().Add(-ttl)
	kept := n.items[:0]
	for _, item := range n.items {
		if item.At.After(cutoff) {
			kept = append(kept, item)
		}
	}
	dropped := len(kept) != len(n.items)
	n.items = kept
	return dropped
}
