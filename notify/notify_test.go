// SPDX-License-Identifier: Unlicense OR MIT

package notify

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

type recorder struct {
	got []Intent
}

func (r *recorder) Receive(in Intent) { r.got = append(r.got, in) }

func TestBroadcasterRoutesByAction(t *testing.T) {
	b := NewBroadcaster(nil)
	ticks, zones := new(recorder), new(recorder)
	b.Subscribe(ticks, ActionTimeTick, ActionTimeChanged)
	b.Subscribe(zones, ActionTimezoneChanged)

	b.Broadcast(Intent{Action: ActionTimeTick})
	b.Broadcast(Intent{Action: ActionTimezoneChanged, TimeZone: "Asia/Tokyo"})
	b.Broadcast(Intent{Action: ActionTimeChanged})

	assert.Equal(t, []Intent{{Action: ActionTimeTick}, {Action: ActionTimeChanged}}, ticks.got)
	assert.Equal(t, []Intent{{Action: ActionTimezoneChanged, TimeZone: "Asia/Tokyo"}}, zones.got)
}

func TestBroadcasterDropsAfterUnsubscribe(t *testing.T) {
	var queued []func()
	b := NewBroadcaster(func(fn func()) { queued = append(queued, fn) })
	r := new(recorder)
	b.Subscribe(r, ActionTimeTick)
	b.Broadcast(Intent{Action: ActionTimeTick})
	b.Unsubscribe(r)
	for _, fn := range queued {
		fn()
	}
	assert.Empty(t, r.got)
}

func TestReceiverFunc(t *testing.T) {
	b := NewBroadcaster(nil)
	n := 0
	f := ReceiverFunc(func(Intent) { n++ })
	b.Subscribe(&f, ActionTimeChanged)
	b.Broadcast(Intent{Action: ActionTimeChanged})
	b.Broadcast(Intent{Action: ActionTimeTick})
	assert.Equal(t, 1, n)
}

func TestUntilNextMinute(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Minute, untilNextMinute(base))
	assert.Equal(t, 15*time.Second, untilNextMinute(base.Add(45*time.Second)))
	assert.Equal(t, time.Millisecond, untilNextMinute(base.Add(59*time.Second+999*time.Millisecond)))
}

func chanReceiver(b *Broadcaster, actions ...Action) <-chan Intent {
	ch := make(chan Intent, 8)
	f := ReceiverFunc(func(in Intent) { ch <- in })
	b.Subscribe(&f, actions...)
	return ch
}

func expectIntent(t *testing.T, ch <-chan Intent) Intent {
	t.Helper()
	select {
	case in := <-ch:
		return in
	case <-time.After(time.Second):
		t.Fatal("no intent broadcast")
		return Intent{}
	}
}

func expectNone(t *testing.T, ch <-chan Intent) {
	t.Helper()
	select {
	case in := <-ch:
		t.Fatalf("unexpected intent %+v", in)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMinuteTicker(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 30, 0, time.UTC))
	b := NewBroadcaster(nil)
	ch := chanReceiver(b, ActionTimeTick)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go (&MinuteTicker{Clock: fc, Broadcaster: b}).Run(ctx)

	fc.BlockUntil(1)
	fc.Advance(29 * time.Second)
	expectNone(t, ch)
	fc.Advance(time.Second)
	assert.Equal(t, ActionTimeTick, expectIntent(t, ch).Action)
}

func TestJumpDetector(t *testing.T) {
	fc := clockwork.NewFakeClock()
	var skew atomic.Int64
	b := NewBroadcaster(nil)
	ch := chanReceiver(b, ActionTimeChanged)
	d := &JumpDetector{
		Clock:       fc,
		Wall:        func() time.Time { return fc.Now().Add(time.Duration(skew.Load())) },
		Interval:    time.Second,
		Threshold:   time.Second,
		Broadcaster: b,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	fc.BlockUntil(1)
	fc.Advance(time.Second)
	expectNone(t, ch)

	skew.Store(int64(time.Hour))
	fc.Advance(time.Second)
	assert.Equal(t, ActionTimeChanged, expectIntent(t, ch).Action)

	// The jump is accounted for once; steady time after it is quiet.
	fc.Advance(time.Second)
	expectNone(t, ch)
}

func TestZoneWatcherRefresh(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultTimezonePath, []byte("Europe/Berlin\n"), 0o644))
	b := NewBroadcaster(nil)
	ch := chanReceiver(b, ActionTimezoneChanged)
	z := &ZoneWatcher{Fs: fs, Broadcaster: b}

	assert.Equal(t, time.Local, z.Current())
	assert.False(t, z.Refresh(), "first resolution only records the zone")
	assert.Equal(t, "Europe/Berlin", z.Current().String())

	require.NoError(t, afero.WriteFile(fs, DefaultTimezonePath, []byte("Asia/Tokyo\n"), 0o644))
	assert.True(t, z.Refresh())
	assert.Equal(t, Intent{Action: ActionTimezoneChanged, TimeZone: "Asia/Tokyo"}, expectIntent(t, ch))
	assert.False(t, z.Refresh())
}

func TestZoneWatcherUnknown(t *testing.T) {
	z := &ZoneWatcher{Fs: afero.NewMemMapFs()}
	_, err := z.Resolve()
	assert.ErrorIs(t, err, ErrZoneUnknown)
	assert.False(t, z.Refresh())
}

func TestZoneFromPath(t *testing.T) {
	assert.Equal(t, "America/New_York", zoneFromPath("/usr/share/zoneinfo/America/New_York"))
	assert.Equal(t, "UTC", zoneFromPath("../usr/share/zoneinfo/posix/UTC"))
	assert.Equal(t, "", zoneFromPath("/etc/localtime.bak"))
}
