// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"errors"
	"image/color"
	"log/slog"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/spf13/afero"

	"github.com/imankur/analogclock/clockface"
	"github.com/imankur/analogclock/internal/config"
	"github.com/imankur/analogclock/internal/looper"
	"github.com/imankur/analogclock/internal/metrics"
	"github.com/imankur/analogclock/internal/resource"
	"github.com/imankur/analogclock/notify"
)

var background = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

// run owns the UI goroutine: window events and looper callbacks are
// handled from the same select loop.
func run(ctx context.Context, cfg *config.Config, fs afero.Fs, log *slog.Logger, m *metrics.Metrics) error {
	opts, err := resource.LoadOptions(fs, cfg)
	if err != nil {
		return err
	}
	w := app.NewWindow(
		app.Title("Analog Clock"),
		app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)),
	)

	lp := looper.New(nil)
	b := notify.NewBroadcaster(lp.Post)
	zones := &notify.ZoneWatcher{Broadcaster: b, Logger: log.With("component", "zones")}
	zones.Refresh()
	startSources(ctx, b, zones, log)

	face, err := clockface.New(opts, clockface.Host{
		Scheduler:   lp,
		Notifier:    b,
		Invalidator: w,
		DefaultZone: zones.Current,
		Logger:      log,
		Metrics:     m,
	})
	if err != nil {
		return err
	}
	if cfg.TimeZone != "" {
		face.SetTimeZone(cfg.TimeZone)
	}
	defer face.Deactivate()

	var ops op.Ops
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-lp.C():
			fn()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.StageEvent:
				if e.Stage >= system.StageRunning {
					face.Activate()
				} else {
					face.Deactivate()
				}
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, background)
				layout.Center.Layout(gtx, face.Layout)
				e.Frame(gtx.Ops)
			}
		}
	}
}

func startSources(ctx context.Context, b *notify.Broadcaster, zones *notify.ZoneWatcher, log *slog.Logger) {
	runners := map[string]func(context.Context) error{
		"minute ticker": (&notify.MinuteTicker{Broadcaster: b}).Run,
		"jump detector": (&notify.JumpDetector{Broadcaster: b, Logger: log}).Run,
		"zone watcher":  zones.Run,
	}
	for name, fn := range runners {
		name, fn := name, fn
		go func() {
			if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("notification source stopped", "source", name, "err", err)
			}
		}()
	}
}
