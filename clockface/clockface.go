// SPDX-License-Identifier: Unlicense OR MIT

/*
Package clockface implements an analog clock widget for Gio.

A ClockFace stacks four images, a dial and hour, minute and second hands,
and rotates the hands about the dial center to show the current time.

The widget is inactive when created. Activate subscribes it to the
time-tick, time-changed and timezone-changed notifications and, when the
second hand is shown, starts a tick loop aligned to wall-clock second
boundaries. Deactivate undoes both. Every tick refreshes the displayed
time, recomputes the accessible description and asks the host to redraw.

All methods must be called from the goroutine that runs the host's UI
loop; the widget does no locking of its own.
*/
package clockface

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"

	"github.com/imankur/analogclock/clockface/art"
	"github.com/imankur/analogclock/internal/metrics"
	"github.com/imankur/analogclock/notify"
)

// ErrResourceResolution is returned by New when a layer image cannot be
// obtained.
var ErrResourceResolution = errors.New("clockface: cannot resolve layer image")

// Scheduler runs a function on the UI goroutine after a delay.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// Notifier manages notification subscriptions.
type Notifier interface {
	Subscribe(r notify.Receiver, actions ...notify.Action)
	Unsubscribe(r notify.Receiver)
}

// Invalidator requests a redraw. Repeated requests before the next frame
// are coalesced by the host.
type Invalidator interface {
	Invalidate()
}

// Options are read once by New.
type Options struct {
	ShowSecondHand bool
	// Dial, Hour, Minute and Second override the built-in images.
	Dial, Hour, Minute, Second image.Image
}

// DefaultOptions returns options with the second hand shown and the
// built-in images.
func DefaultOptions() Options {
	return Options{ShowSecondHand: true}
}

// Host carries the collaborators supplied by the embedding program. Only
// Scheduler is required, and only when the second hand is shown.
type Host struct {
	Scheduler   Scheduler
	Notifier    Notifier
	Invalidator Invalidator
	Clock       clockwork.Clock
	// DefaultZone reports the system zone. It is consulted at
	// construction and on every activation.
	DefaultZone func() *time.Location
	// Locale selects the description pattern. The zero Tag means the
	// locale named by the environment.
	Locale language.Tag
	// Hour24 forces a 24-hour description regardless of Locale.
	Hour24  bool
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

var subscribedActions = []notify.Action{
	notify.ActionTimeTick,
	notify.ActionTimeChanged,
	notify.ActionTimezoneChanged,
}

// ClockFace is an analog clock widget.
type ClockFace struct {
	seconds bool
	layers  [4]Layer

	sched       Scheduler
	notifier    Notifier
	invalidator Invalidator
	clock       clockwork.Clock
	defaultZone func() *time.Location
	log         *slog.Logger
	metrics     *metrics.Metrics

	time     *TimeModel
	override *time.Location
	pattern  string
	desc     string

	active bool
	cancel func()
}

// New creates an inactive ClockFace.
func New(opts Options, host Host) (*ClockFace, error) {
	if opts.ShowSecondHand && host.Scheduler == nil {
		return nil, errors.New("clockface: showing the second hand requires a Scheduler")
	}
	c := &ClockFace{
		seconds:     opts.ShowSecondHand,
		sched:       host.Scheduler,
		notifier:    host.Notifier,
		invalidator: host.Invalidator,
		clock:       host.Clock,
		defaultZone: host.DefaultZone,
		log:         host.Logger,
		metrics:     host.Metrics,
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.invalidator == nil {
		c.invalidator = nopInvalidator{}
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.defaultZone == nil {
		c.defaultZone = func() *time.Location { return time.Local }
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With("component", "clockface")

	sources := [4]image.Image{opts.Dial, opts.Hour, opts.Minute, opts.Second}
	for i, src := range sources {
		role := art.Role(i)
		if src == nil {
			img, err := art.Render(role, art.DefaultSize)
			if err != nil {
				return nil, fmt.Errorf("%w: %v: %v", ErrResourceResolution, role, err)
			}
			src = img
		}
		c.layers[i] = NewLayer(src)
	}

	locale := host.Locale
	if locale == language.Und {
		locale = LocaleFromEnv()
	}
	c.pattern = TimePattern(locale, host.Hour24)
	c.time = NewTimeModel(c.defaultZone(), c.clock.Now())
	return c, nil
}

// Activate subscribes to time notifications, refreshes the display and
// starts the second tick loop if the second hand is shown.
func (c *ClockFace) Activate() {
	if c.active {
		return
	}
	c.active = true
	c.metrics.SetActive(true)
	c.notifier.Subscribe(c, subscribedActions...)
	zone := c.override
	if zone == nil {
		zone = c.defaultZone()
	}
	c.time = NewTimeModel(zone, c.clock.Now())
	c.metrics.Tick(metrics.TriggerActivate)
	c.onTimeChanged()
	if c.seconds {
		c.tick()
	}
}

// Deactivate unsubscribes from notifications and cancels the pending
// tick. No tick runs after Deactivate returns.
func (c *ClockFace) Deactivate() {
	if !c.active {
		return
	}
	c.active = false
	c.metrics.SetActive(false)
	c.notifier.Unsubscribe(c)
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Active reports whether the clock is between Activate and Deactivate.
func (c *ClockFace) Active() bool {
	return c.active
}

// Receive handles a time notification.
func (c *ClockFace) Receive(in notify.Intent) {
	c.metrics.Notification(string(in.Action))
	if in.Action == notify.ActionTimezoneChanged && c.override == nil {
		c.time.SetLocation(c.resolveZone(in.TimeZone))
	}
	c.metrics.Tick(metrics.TriggerNotification)
	c.onTimeChanged()
}

// SetTimeZone pins the clock to the zone id. Unknown ids select UTC. The
// pinned zone wins over later timezone-changed notifications.
func (c *ClockFace) SetTimeZone(id string) {
	c.override = c.resolveZone(id)
	c.time.SetLocation(c.override)
	c.metrics.Override()
	c.metrics.Tick(metrics.TriggerOverride)
	c.onTimeChanged()
}

// TimeZone returns the zone of the displayed time.
func (c *ClockFace) TimeZone() *time.Location {
	return c.time.Location()
}

// Time returns the displayed time as of the last tick.
func (c *ClockFace) Time() time.Time {
	return c.time.Time()
}

// Description returns the accessible text for the displayed time.
func (c *ClockFace) Description() string {
	return c.desc
}

// tick is the self-scheduled update. It reschedules itself on the next
// wall-clock second boundary.
func (c *ClockFace) tick() {
	c.cancel = nil
	c.metrics.Tick(metrics.TriggerSchedule)
	c.onTimeChanged()
	if c.seconds {
		delay := NextTickDelay(c.clock.Now().UnixMilli())
		c.cancel = c.sched.Schedule(delay, c.tick)
	}
}

func (c *ClockFace) onTimeChanged() {
	c.time.Refresh(c.clock.Now())
	c.desc = c.time.Time().Format(c.pattern)
	c.invalidator.Invalidate()
}

func (c *ClockFace) resolveZone(id string) *time.Location {
	loc, err := ResolveZone(id)
	if err != nil {
		c.log.Warn("unknown time zone, using UTC", "zone", id, "err", err)
	}
	return loc
}

type nopNotifier struct{}

func (nopNotifier) Subscribe(notify.Receiver, ...notify.Action) {}
func (nopNotifier) Unsubscribe(notify.Receiver)                 {}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate() {}
