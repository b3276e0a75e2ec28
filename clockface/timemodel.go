// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import "time"

// TimeModel is a point in time bound to a zone. It is updated in place
// and only reflects the current time right after Refresh.
type TimeModel struct {
	t   time.Time
	loc *time.Location
}

// NewTimeModel returns a model at now in loc. A nil loc means UTC.
func NewTimeModel(loc *time.Location, now time.Time) *TimeModel {
	m := &TimeModel{loc: loc}
	if m.loc == nil {
		m.loc = time.UTC
	}
	m.Refresh(now)
	return m
}

// Refresh moves the model to now, keeping its zone. Precision is
// truncated to milliseconds.
func (m *TimeModel) Refresh(now time.Time) {
	m.t = now.Truncate(time.Millisecond).In(m.loc)
}

// SetLocation changes the zone without changing the instant.
func (m *TimeModel) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	m.loc = loc
	m.t = m.t.In(loc)
}

func (m *TimeModel) Location() *time.Location { return m.loc }
func (m *TimeModel) Time() time.Time          { return m.t }

// Hour12 returns the hour on a 12-hour dial, 0 through 11.
func (m *TimeModel) Hour12() int { return m.t.Hour() % 12 }
func (m *TimeModel) Minute() int { return m.t.Minute() }
func (m *TimeModel) Second() int { return m.t.Second() }
