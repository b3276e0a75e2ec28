// SPDX-License-Identifier: Unlicense OR MIT

package clockface

import (
	"image"
	"time"

	"github.com/imankur/analogclock/clockface/art"
)

// unbounded is the constraint at or above which a dimension is treated
// as unspecified, matching the infinity used by Gio lists.
const unbounded = 1e6

// HourAngle returns the hour hand angle in degrees clockwise from
// twelve. The hand moves once per hour.
func HourAngle(m *TimeModel) float32 { return float32(m.Hour12()) * 30 }

// MinuteAngle returns the minute hand angle in degrees.
func MinuteAngle(m *TimeModel) float32 { return float32(m.Minute()) * 6 }

// SecondAngle returns the second hand angle in degrees.
func SecondAngle(m *TimeModel) float32 { return float32(m.Second()) * 6 }

// NextTickDelay returns the time from nowMillis, in milliseconds since
// the Unix epoch, to the next whole second. The result is in (0, 1s].
func NextTickDelay(nowMillis int64) time.Duration {
	r := nowMillis % 1000
	if r < 0 {
		r += 1000
	}
	return time.Duration(1000-r) * time.Millisecond
}

// FitScale returns the factor that fits natural into size, clamped so
// that it never exceeds 1.
func FitScale(size, natural image.Point) float32 {
	if natural.X <= 0 || natural.Y <= 0 {
		return 1
	}
	s := float32(size.X) / float32(natural.X)
	if sy := float32(size.Y) / float32(natural.Y); sy < s {
		s = sy
	}
	if s < 1 {
		return s
	}
	return 1
}

// DefaultSize resolves a dimension from a minimum and a maximum
// constraint: an unbounded maximum yields the minimum, a bounded one
// yields the maximum.
func DefaultSize(minimum, maximum int) int {
	if maximum >= unbounded {
		return minimum
	}
	return maximum
}

// Step is one hand of a Plan.
type Step struct {
	Layer art.Role
	// Rotate is the rotation in degrees applied on top of the previous
	// steps' rotations before drawing Layer.
	Rotate float32
}

// Plan describes how a frame is drawn: the dial at Center scaled by
// Scale, then each hand after rotating by its Step.
type Plan struct {
	Center image.Point
	Scale  float32
	Hands  []Step
}

// Plan computes the drawing plan for a widget of the given size at the
// displayed time.
func (c *ClockFace) Plan(size image.Point) Plan {
	p := Plan{
		Center: size.Div(2),
		Scale:  FitScale(size, c.layers[art.Dial].Size),
	}
	hour := HourAngle(c.time)
	minute := MinuteAngle(c.time)
	p.Hands = append(p.Hands,
		Step{Layer: art.Hour, Rotate: hour},
		Step{Layer: art.Minute, Rotate: minute - hour},
	)
	if c.seconds {
		p.Hands = append(p.Hands, Step{Layer: art.Second, Rotate: SecondAngle(c.time) - minute})
	}
	return p
}
