package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"actcal/internal/app"
	"actcal/internal/cache"
	"actcal/internal/fetch"
	"actcal/internal/logging"
	"actcal/internal/metrics"
	"actcal/internal/model"
	"actcal/internal/notify"
	"actcal/internal/refresh"
	"actcal/internal/source"
	"actcal/internal/ui"
)

// runWatch keeps the configured games' snapshots warm until interrupted,
// pushing notifications for newly observed activities and serving prometheus
// metrics when an address is configured.
func runWatch(cfg *model.Config) error {
	log := logging.NewLogger("actcal")

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	var reqLog *fetch.RequestLog
	if cfg.RequestLogPath != "" {
		rl, err := fetch.OpenRequestLog(cfg.RequestLogPath)
		if err != nil {
			return err
		}
		defer rl.Close()
		reqLog = rl
	}

	client := fetch.NewClient(cfg.FetchTimeout(), m, reqLog)
	pipeline := source.NewPipeline(client, cfg, log)
	svc := app.NewService(pipeline, cache.NewStore(m), cfg.CacheTTL(), log)

	notifier := notify.NewNotifier(cfg.GotifyURL, cfg.GotifyToken)
	games := refresh.GamesFromNames(cfg.RefreshGames)
	if len(games) == 0 {
		games = model.Games()
	}
	warmer := refresh.NewWarmer(svc, games, notifier, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("metrics server failed")
			}
		}()
		ui.PrintInfo("Serving metrics on " + cfg.MetricsAddr + "/metrics")
	}

	schedule := cfg.RefreshCron
	if schedule == "" {
		schedule = refresh.DefaultSchedule
	}

	names := make([]string, 0, len(games))
	for _, game := range games {
		names = append(names, game.String())
	}
	ui.PrintInfo(fmt.Sprintf("%s Watching %s on schedule %q", ui.SymbolBell, strings.Join(names, ", "), schedule))
	if notifier.Enabled() {
		ui.PrintInfo("Gotify notifications enabled")
	}

	if err := warmer.Start(ctx, schedule); err != nil {
		return err
	}

	<-ctx.Done()
	ui.PrintInfo("Shutting down...")
	warmer.Stop()
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}
