// Package notifications keeps the feed of short-lived toasts shown to site
// visitors and streams it to browsers.
package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTTL is how long a notification stays in the feed.
const DefaultTTL = 5 * time.Second

// subscriberBuffer bounds each subscriber's queue. A subscriber that falls
// this far behind misses events rather than stalling the feed.
const subscriberBuffer = 32

// afterFunc schedules fn after d and returns a function that cancels it.
type afterFunc func(d time.Duration, fn func()) (stop func() bool)

func realAfter(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Feed holds live notifications in creation order. Each entry removes
// itself by id exactly TTL after it was added, independent of any other
// activity on the feed.
type Feed struct {
	ttl    time.Duration
	after  afterFunc
	now    func() time.Time
	logger zerolog.Logger

	mu     sync.Mutex
	items  []Notification
	timers map[string]func() bool
	subs   map[int]chan Event
	nextID int
}

// NewFeed creates a Feed. A non-positive ttl selects DefaultTTL.
func NewFeed(ttl time.Duration, logger zerolog.Logger) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{
		ttl:    ttl,
		after:  realAfter,
		now:    time.Now,
		logger: logger.With().Str("component", "notifications").Logger(),
		timers: make(map[string]func() bool),
		subs:   make(map[int]chan Event),
	}
}

// Notify appends a notification and schedules its removal.
func (f *Feed) Notify(message string, typ Type) Notification {
	if !typ.Valid() {
		typ = TypeInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		CreatedAt: f.now(),
	}

	f.mu.Lock()
	f.items = append(f.items, n)
	f.timers[n.ID] = f.after(f.ttl, func() { f.expire(n.ID) })
	f.broadcast(Event{Kind: EventAdded, Notification: n})
	f.mu.Unlock()

	f.logger.Debug().Str("id", n.ID).Str("type", string(typ)).Msg("notification added")
	return n
}

func (f *Feed) expire(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.timers, id)
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			f.broadcast(Event{Kind: EventExpired, Notification: n})
			return
		}
	}
}

// List returns the live notifications in insertion order.
func (f *Feed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification{}, f.items...)
}

// Subscribe returns a channel of subsequent events and a function that
// unsubscribes and closes it.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	ch := make(chan Event, subscriberBuffer)
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if c, ok := f.subs[id]; ok {
				delete(f.subs, id)
				close(c)
			}
		})
	}
}

// broadcast requires f.mu.
func (f *Feed) broadcast(e Event) {
	for id, ch := range f.subs {
		select {
		case ch <- e:
		default:
			f.logger.Warn().Int("subscriber", id).Msg("subscriber lagging, event dropped")
		}
	}
}

// Close cancels pending expiries and closes every subscription.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, stop := range f.timers {
		stop()
		delete(f.timers, id)
	}
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
