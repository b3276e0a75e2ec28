// SPDX-License-Identifier: Unlicense OR MIT

// Package metrics holds the Prometheus collectors of the clock widget.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "analogclock"

// Trigger labels for Ticks.
const (
	TriggerSchedule     = "schedule"
	TriggerNotification = "notification"
	TriggerActivate     = "activate"
	TriggerOverride     = "override"
)

type Metrics struct {
	Ticks         *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Overrides     prometheus.Counter
	Active        prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Clock updates by trigger.",
		}, []string{"trigger"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "System notifications received by action.",
		}, []string{"action"}),
		Overrides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timezone_overrides_total",
			Help:      "Explicit time zone overrides applied.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active",
			Help:      "1 while the clock widget is active.",
		}),
	}
	for _, c := range []prometheus.Collector{m.Ticks, m.Notifications, m.Overrides, m.Active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Tick(trigger string) {
	if m == nil {
		return
	}
	m.Ticks.WithLabelValues(trigger).Inc()
}

func (m *Metrics) Notification(action string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(action).Inc()
}

func (m *Metrics) Override() {
	if m == nil {
		return
	}
	m.Overrides.Inc()
}

func (m *Metrics) SetActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.Active.Set(1)
	} else {
		m.Active.Set(0)
	}
}
