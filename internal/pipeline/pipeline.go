// Package pipeline wires one fetch-compute-evaluate-notify pass.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/juv/sma-tracker/internal/apperr"
	"github.com/juv/sma-tracker/internal/evaluate"
	"github.com/juv/sma-tracker/internal/marketdata"
	"github.com/juv/sma-tracker/internal/metrics"
	"github.com/juv/sma-tracker/internal/notify"
	"github.com/juv/sma-tracker/internal/sma"
)

// Runner executes evaluations. Each run is fully self-contained; nothing is
// shared across runs, so overlapping runs are safe.
type Runner struct {
	client     *marketdata.Client
	notifier   notify.Notifier
	symbol     string
	windowDays int
	mode       evaluate.Mode
	log        zerolog.Logger
}

// NewRunner builds a runner over the given market data client and notifier.
func NewRunner(client *marketdata.Client, notifier notify.Notifier, symbol string, windowDays int, mode evaluate.Mode, log zerolog.Logger) *Runner {
	return &Runner{
		client:     client,
		notifier:   notifier,
		symbol:     symbol,
		windowDays: windowDays,
		mode:       mode,
		log:        log,
	}
}

// Run performs a single evaluation and delivers the report. On a delivery
// failure the computed report is returned alongside the error; on earlier
// failures the report is nil.
func (r *Runner) Run(ctx context.Context) (*evaluate.Report, error) {
	r.log.Info().Str("symbol", r.symbol).Msg("fetching chart data")

	snap, err := r.client.FetchSnapshot(ctx, r.symbol, r.windowDays)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		metrics.EvaluationsTotal.WithLabelValues("fetch_error").Inc()
		return nil, err
	}

	avg, err := sma.Compute(snap.DailyCloses)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("insufficient_data").Inc()
		return nil, err
	}

	report := evaluate.Evaluate(r.mode, snap.CurrentPrice, avg, snap.YesterdayClose())
	r.log.Info().
		Str("symbol", snap.Symbol).
		Str("currency", snap.Currency).
		Float64("price", report.CurrentPrice).
		Float64("sma200", report.SMA200).
		Float64("yesterday_close", report.YesterdayClose).
		Stringer("classification", report.Classification).
		Msg("evaluation complete")

	if err := r.notifier.Notify(ctx, report.Message); err != nil {
		metrics.EvaluationsTotal.WithLabelValues("delivery_error").Inc()
		return &report, fmt.Errorf("%w: %v", apperr.ErrDelivery, err)
	}
	metrics.NotificationsTotal.WithLabelValues(r.notifier.Name()).Inc()
	metrics.EvaluationsTotal.WithLabelValues("ok").Inc()
	return &report, nil
}
