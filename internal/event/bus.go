package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// HandlerFunc handles one event. Errors are counted and logged; they do
// not stop delivery to other subscribers.
type HandlerFunc func(ctx context.Context, ev any) error

// Subscription is a registered handler.
type Subscription struct {
	ID      uuid.UUID
	Pattern Topic
	handler HandlerFunc
}

// Stats holds delivery counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerErrors uint64
	HandlerPanics uint64
	Subscribers   int
}

// Bus delivers events synchronously to matching subscribers.
// It is safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription

	logger *slog.Logger

	published atomic.Uint64
	delivered atomic.Uint64
	errs      atomic.Uint64
	panics    atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for handler failures.
func WithLogger(l *slog.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for every event whose topic matches pattern.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	sub := &Subscription{ID: uuid.New(), Pattern: pattern, handler: fn}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()
	return sub, nil
}

// Unsubscribe removes sub.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.ID == sub.ID {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to the matching subscribers. ev must implement
// TopicProvider, which every Event does. A nil bus drops the event.
func (b *Bus) Publish(ctx context.Context, ev any) error {
	if b == nil {
		return nil
	}
	tp, ok := ev.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	t := tp.EventTopic()
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, t)
	}
	b.published.Add(1)

	b.mu.RLock()
	var matched []*Subscription
	for _, s := range b.subs {
		if t.Matches(s.Pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range matched {
		b.deliver(ctx, t, s, ev)
	}
	return nil
}

func (b *Bus) deliver(ctx context.Context, t Topic, s *Subscription, ev any) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			b.logger.Error("event handler panicked", "topic", t, "subscription", s.ID, "panic", r)
		}
	}()
	if err := s.handler(ctx, ev); err != nil {
		b.errs.Add(1)
		b.logger.Warn("event handler failed", "topic", t, "subscription", s.ID, "err", err)
		return
	}
	b.delivered.Add(1)
}

// Stats returns current counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerErrors: b.errs.Load(),
		HandlerPanics: b.panics.Load(),
		Subscribers:   n,
	}
}
