// SPDX-License-Identifier: Unlicense OR MIT

package main

// analogclock shows an analog clock in a window.

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gioui.org/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/imankur/analogclock/internal/config"
	"github.com/imankur/analogclock/internal/logger"
	"github.com/imankur/analogclock/internal/metrics"

	_ "time/tzdata"
)

var (
	flagConfig      string
	flagTimeZone    string
	flagSecondHand  bool
	flagLogLevel    string
	flagLogFormat   string
	flagMetricsAddr string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "path to a YAML configuration file")
	f.StringVar(&flagTimeZone, "time-zone", "", "pin the clock to a time zone, such as Europe/Oslo or GMT+2")
	f.BoolVar(&flagSecondHand, "second-hand", true, "show the second hand")
	f.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&flagLogFormat, "log-format", "", "log format: text or json")
	f.StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

var rootCmd = &cobra.Command{
	Use:          "analogclock",
	Short:        "Show an analog clock",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, afero.NewOsFs())
		if err != nil {
			return err
		}
		log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		slog.SetDefault(log)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		m, err := metrics.New(reg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		if cfg.MetricsAddr != "" {
			go serveMetrics(ctx, cfg.MetricsAddr, reg, log)
		}

		go func() {
			defer cancel()
			if err := run(ctx, cfg, afero.NewOsFs(), log, m); err != nil {
				log.Error("clock window failed", "err", err)
				os.Exit(1)
			}
			os.Exit(0)
		}()
		app.Main()
		return nil
	},
}

// loadConfig reads the configuration file and overlays explicitly set
// flags.
func loadConfig(cmd *cobra.Command, fs afero.Fs) (*config.Config, error) {
	cfg, err := config.Load(fs, flagConfig)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("time-zone") {
		cfg.TimeZone = flagTimeZone
	}
	if flags.Changed("second-hand") {
		show := flagSecondHand
		cfg.ShowSecondHand = &show
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = flagMetricsAddr
	}
	return cfg, cfg.Validate()
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	log.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("metrics server", "err", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
