// SPDX-License-Identifier: Unlicense OR MIT

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const (
	DefaultLocaltimePath = "/etc/localtime"
	DefaultTimezonePath  = "/etc/timezone"
)

// ErrZoneUnknown is returned by ZoneWatcher.Resolve when neither the
// localtime link nor the timezone file name a zone.
var ErrZoneUnknown = errors.New("notify: system time zone unknown")

// ZoneWatcher tracks the system time zone and broadcasts
// ActionTimezoneChanged when it changes.
//
// The zone name is taken from the target of the localtime symlink when the
// filesystem can read links, and from the timezone file otherwise.
type ZoneWatcher struct {
	Fs            afero.Fs
	LocaltimePath string
	TimezonePath  string
	Broadcaster   *Broadcaster
	Logger        *slog.Logger

	mu   sync.Mutex
	name string
	loc  *time.Location
}

// Resolve reads the current system zone name.
func (z *ZoneWatcher) Resolve() (string, error) {
	fs := z.fs()
	if lr, ok := fs.(afero.LinkReader); ok {
		if target, err := lr.ReadlinkIfPossible(z.localtimePath()); err == nil {
			if name := zoneFromPath(target); name != "" {
				return name, nil
			}
		}
	}
	data, err := afero.ReadFile(fs, z.timezonePath())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrZoneUnknown, err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrZoneUnknown
	}
	return name, nil
}

// Current returns the last resolved zone, or time.Local if none has been
// resolved.
func (z *ZoneWatcher) Current() *time.Location {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.loc == nil {
		return time.Local
	}
	return z.loc
}

// Refresh resolves the zone again and broadcasts when it differs from the
// previous one. The first successful resolution only records the zone.
func (z *ZoneWatcher) Refresh() bool {
	name, err := z.Resolve()
	if err != nil {
		z.logger().Debug("resolving system zone", "err", err)
		return false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		z.logger().Warn("loading system zone", "zone", name, "err", err)
		return false
	}
	z.mu.Lock()
	prev := z.name
	z.name, z.loc = name, loc
	z.mu.Unlock()
	if prev == "" || prev == name {
		return false
	}
	z.logger().Info("system time zone changed", "from", prev, "to", name)
	if z.Broadcaster != nil {
		z.Broadcaster.Broadcast(Intent{Action: ActionTimezoneChanged, TimeZone: name})
	}
	return true
}

// Run watches the zone files until ctx is done.
func (z *ZoneWatcher) Run(ctx context.Context) error {
	z.Refresh()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("notify: creating zone watcher: %w", err)
	}
	defer w.Close()
	dirs := map[string]bool{
		filepath.Dir(z.localtimePath()): true,
		filepath.Dir(z.timezonePath()):  true,
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("notify: watching %s: %w", dir, err)
		}
	}
	watched := map[string]bool{
		filepath.Clean(z.localtimePath()): true,
		filepath.Clean(z.timezonePath()):  true,
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if watched[filepath.Clean(ev.Name)] {
				z.Refresh()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			z.logger().Warn("zone watcher", "err", err)
		}
	}
}

// zoneFromPath extracts "Area/City" from a path like
// /usr/share/zoneinfo/Area/City.
func zoneFromPath(p string) string {
	const marker = "zoneinfo/"
	i := strings.LastIndex(p, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimPrefix(p[i+len(marker):], "posix/")
}

func (z *ZoneWatcher) fs() afero.Fs {
	if z.Fs == nil {
		return afero.NewOsFs()
	}
	return z.Fs
}

func (z *ZoneWatcher) localtimePath() string {
	if z.LocaltimePath == "" {
		return DefaultLocaltimePath
	}
	return z.LocaltimePath
}

func (z *ZoneWatcher) timezonePath() string {
	if z.TimezonePath == "" {
		return DefaultTimezonePath
	}
	return z.TimezonePath
}

func (z *ZoneWatcher) logger() *slog.Logger {
	if z.Logger == nil {
		return slog.Default()
	}
	return z.Logger
}
