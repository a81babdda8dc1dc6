// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Stagecraft Contributors

// Package channel provides the synchronous listener channels owned by
// plugins and their display targets.
package channel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
)

// Listener reacts to an event fired on a channel. A non-nil error stops the
// dispatch and is returned to whoever fired the event.
type Listener func(ctx context.Context) error

// Target is anything that owns a listener channel.
type Target interface {
	// On subscribes l to events of the given type.
	On(eventType string, l Listener) *Subscription
	// Dispatch fires an event of the given type.
	Dispatch(ctx context.Context, eventType string) error
}

// Subscription is the handle returned by On.
type Subscription struct {
	id        ulid.ULID
	eventType string
	listener  Listener
	ch        *Channel
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() ulid.ULID {
	return s.id
}

// Type returns the subscribed event type.
func (s *Subscription) Type() string {
	return s.eventType
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}

// Cancel detaches the listener. Calling Cancel more than once is a no-op.
func (s *Subscription) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}
	s.ch.remove(s)
}

// Channel delivers events to listeners keyed by event type.
// Listeners for one type run in subscription order.
type Channel struct {
	mu        sync.Mutex
	listeners map[string][]*Subscription
}

// Compile-time interface check.
var _ Target = (*Channel)(nil)

// New creates an empty channel.
func New() *Channel {
	return &Channel{
		listeners: make(map[string][]*Subscription),
	}
}

// On subscribes l to events of the given type.
func (c *Channel) On(eventType string, l Listener) *Subscription {
	sub := &Subscription{
		id:        newID(),
		eventType: eventType,
		listener:  l,
		ch:        c,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listeners == nil {
		c.listeners = make(map[string][]*Subscription)
	}
	c.listeners[eventType] = append(c.listeners[eventType], sub)
	return sub
}

// Dispatch invokes every listener subscribed to eventType. The listener list
// is copied first, so listeners may subscribe or cancel while running.
// Dispatching a type nobody listens to is a no-op.
func (c *Channel) Dispatch(ctx context.Context, eventType string) error {
	c.mu.Lock()
	subs := make([]*Subscription, len(c.listeners[eventType]))
	copy(subs, c.listeners[eventType])
	c.mu.Unlock()

	for _, sub := range subs {
		if !sub.Active() {
			continue
		}
		if err := sub.listener(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Has reports whether any listener is subscribed to eventType.
func (c *Channel) Has(eventType string) bool {
	return c.Len(eventType) > 0
}

// Len returns the number of listeners subscribed to eventType.
func (c *Channel) Len(eventType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners[eventType])
}

func (c *Channel) remove(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := c.listeners[sub.eventType]
	for i, s := range subs {
		if s == sub {
			c.listeners[sub.eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(c.listeners[sub.eventType]) == 0 {
		delete(c.listeners, sub.eventType)
	}
}
