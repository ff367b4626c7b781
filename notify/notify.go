// Package notify delivers schedule notifications to registered listeners.
//
// Delivery is synchronous and follows registration order. Listeners are
// isolated from each other: an error or a panic in one listener is logged
// and delivery continues with the next one.
package notify

import (
	"fmt"
	"sync"

	"github.com/benjamonnguyen/astrosched"
)

type Listener func(astrosched.Notification) error

type subscription struct {
	id uint64
	fn Listener
}

type Dispatcher struct {
	l astrosched.Logger

	mu   sync.Mutex
	subs []subscription
	seq  uint64
}

func NewDispatcher(logger astrosched.Logger) *Dispatcher {
	if logger == nil {
		logger = astrosched.NopLogger{}
	}
	return &Dispatcher{l: logger}
}

// Subscribe registers fn and returns a func that unregisters it. Calling the
// returned func more than once is a no-op.
func (d *Dispatcher) Subscribe(fn Listener) (unsubscribe func()) {
	d.mu.Lock()
	d.seq++
	id := d.seq
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, s := range d.subs {
				if s.id == id {
					d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every listener with n in registration order.
func (d *Dispatcher) Publish(n astrosched.Notification) {
	// snapshot so listeners may (un)subscribe while being called
	d.mu.Lock()
	subs := make([]subscription, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()

	for _, s := range subs {
		if err := d.deliver(s, n); err != nil {
			d.l.Warn("listener failed", "listener", s.id, "kind", n.Kind, "error", err)
		}
	}
}

func (d *Dispatcher) deliver(s subscription, n astrosched.Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.l.Error("listener panicked", "listener", s.id, "kind", n.Kind, "panic", r)
		}
	}()
	if err := s.fn(n); err != nil {
		return fmt.Errorf("deliver %s notification: %w", n.Kind, err)
	}
	return nil
}

func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
