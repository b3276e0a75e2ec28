// SPDX-License-Identifier: Unlicense OR MIT

package notify

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// MinuteTicker broadcasts ActionTimeTick at every wall-clock minute
// boundary.
type MinuteTicker struct {
	Clock       clockwork.Clock
	Broadcaster *Broadcaster
}

// Run ticks until ctx is done.
func (m *MinuteTicker) Run(ctx context.Context) error {
	clock := m.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(untilNextMinute(clock.Now())):
			m.Broadcaster.Broadcast(Intent{Action: ActionTimeTick})
		}
	}
}

func untilNextMinute(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}
