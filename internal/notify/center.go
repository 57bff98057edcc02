// Package notify holds the in-memory queue of transient user-facing
// messages. Notifications are ephemeral value objects and are never
// persisted.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultTTL is how long a notification stays visible without user action.
const DefaultTTL = 5 * time.Second

type Notification struct {
	ID       int64    `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Center keeps notifications in insertion order and expires each one TTL
// after it was added. Duplicate messages are not coalesced.
type Center struct {
	log *zap.Logger
	ttl time.Duration

	mu      sync.Mutex
	items   []Notification
	lastID  int64
	subs    map[int]chan Notification
	nextSub int
}

func New(log *zap.Logger) *Center {
	return NewWithTTL(log, DefaultTTL)
}

func NewWithTTL(log *zap.Logger, ttl time.Duration) *Center {
	return &Center{
		log:  log,
		ttl:  ttl,
		subs: make(map[int]chan Notification),
	}
}

// Add appends a notification and schedules its removal after the TTL.
// The id is derived from the wall clock, nudged forward when two adds land
// in the same millisecond so dismissal by id stays unambiguous.
func (c *Center) Add(severity Severity, message string) Notification {
	c.mu.Lock()
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id

	n := Notification{ID: id, Severity: severity, Message: message}
	c.items = append(c.items, n)

	// Fan out under the lock so a concurrent cancel cannot close a channel
	// mid-send. Sends never block; a slow subscriber just misses the event,
	// the notification is still listable.
	for _, ch := range c.subs {
		select {
		case ch <- n:
		default:
		}
	}
	c.mu.Unlock()

	c.log.Debug("notification added",
		zap.Int64("id", n.ID),
		zap.String("severity", string(n.Severity)),
		zap.String("message", n.Message))

	time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	return n
}

// Dismiss removes a notification by id, whether by user action or expiry.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Active returns the currently visible notifications in insertion order.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Subscribe registers a live feed of newly added notifications. The returned
// cancel function must be called when the consumer goes away.
func (c *Center) Subscribe() (<-chan Notification, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Notification, 16)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}
