// SPDX-License-Identifier: Unlicense OR MIT

/*
Package notify delivers named system notifications about wall-clock time.

Three actions exist: ActionTimeTick fires on every wall-clock minute,
ActionTimeChanged fires when the wall clock jumps, and
ActionTimezoneChanged fires when the system time zone changes, carrying
the new zone name in the Intent.

A Broadcaster fans intents out to subscribed receivers. Sources such as
MinuteTicker, JumpDetector and ZoneWatcher run on their own goroutines
and call Broadcast; receivers are always invoked through the
Broadcaster's Dispatcher, normally the UI loop.
*/
package notify

import (
	"sync"
)

// Action names a notification.
type Action string

const (
	ActionTimeTick        Action = "time-tick"
	ActionTimeChanged     Action = "time-changed"
	ActionTimezoneChanged Action = "timezone-changed"
)

// Intent is a single notification.
type Intent struct {
	Action Action
	// TimeZone is the new zone identifier for ActionTimezoneChanged.
	TimeZone string
}

// Receiver handles intents. Receivers are compared by identity, so
// implementations are usually pointers.
type Receiver interface {
	Receive(Intent)
}

// ReceiverFunc adapts a function to a Receiver. Since functions are not
// comparable, a *ReceiverFunc must be used when subscribing.
type ReceiverFunc func(Intent)

func (f *ReceiverFunc) Receive(in Intent) { (*f)(in) }

// Dispatcher runs a function on the receivers' goroutine.
type Dispatcher func(fn func())

// Broadcaster routes intents to subscribed receivers.
type Broadcaster struct {
	dispatch Dispatcher

	mu   sync.Mutex
	subs map[Receiver]map[Action]bool
}

// NewBroadcaster returns a Broadcaster delivering through dispatch. A nil
// dispatch calls receivers directly on the broadcasting goroutine.
func NewBroadcaster(dispatch Dispatcher) *Broadcaster {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Broadcaster{
		dispatch: dispatch,
		subs:     make(map[Receiver]map[Action]bool),
	}
}

// Subscribe registers r for the given actions, adding to any actions it
// is already registered for.
func (b *Broadcaster) Subscribe(r Receiver, actions ...Action) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.subs[r]
	if set == nil {
		set = make(map[Action]bool)
		b.subs[r] = set
	}
	for _, a := range actions {
		set[a] = true
	}
}

// Unsubscribe removes every registration of r. Deliveries already handed
// to the dispatcher are dropped if they have not yet reached r.
func (b *Broadcaster) Unsubscribe(r Receiver) {
	b.mu.Lock()
	delete(b.subs, r)
	b.mu.Unlock()
}

// Broadcast delivers in to every receiver subscribed to its action.
func (b *Broadcaster) Broadcast(in Intent) {
	b.mu.Lock()
	var targets []Receiver
	for r, set := range b.subs {
		if set[in.Action] {
			targets = append(targets, r)
		}
	}
	b.mu.Unlock()
	for _, r := range targets {
		r := r
		b.dispatch(func() {
			if b.subscribed(r, in.Action) {
				r.Receive(in)
			}
		})
	}
}

func (b *Broadcaster) subscribed(r Receiver, a Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subs[r][a]
}
