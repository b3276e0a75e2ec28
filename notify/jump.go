// SPDX-License-Identifier: Unlicense OR MIT

package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	defaultJumpInterval  = 5 * time.Second
	defaultJumpThreshold = 2 * time.Second
)

// JumpDetector broadcasts ActionTimeChanged when the wall clock moves
// by a different amount than elapsed time, as happens when the system
// time is set.
type JumpDetector struct {
	// Clock measures elapsed time and paces sampling.
	Clock clockwork.Clock
	// Wall reads the wall clock. It defaults to time.Now with the
	// monotonic reading stripped.
	Wall        func() time.Time
	Interval    time.Duration
	Threshold   time.Duration
	Broadcaster *Broadcaster
	Logger      *slog.Logger
}

// Run samples until ctx is done.
func (d *JumpDetector) Run(ctx context.Context) error {
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	wall := d.Wall
	if wall == nil {
		wall = func() time.Time { return time.Now().Round(0) }
	}
	interval := d.Interval
	if interval <= 0 {
		interval = defaultJumpInterval
	}
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = defaultJumpThreshold
	}
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	t := clock.NewTicker(interval)
	defer t.Stop()
	lastMono, lastWall := clock.Now(), wall()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Chan():
			mono, w := clock.Now(), wall()
			skew := w.Sub(lastWall) - mono.Sub(lastMono)
			lastMono, lastWall = mono, w
			if skew > threshold || skew < -threshold {
				log.Info("wall clock jumped", "skew", skew)
				d.Broadcaster.Broadcast(Intent{Action: ActionTimeChanged})
			}
		}
	}
}
