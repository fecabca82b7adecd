// Binary tracker evaluates the S&P 500 against its 200-day simple moving
// average and reports the result, once, on a cron schedule, or as a
// long-lived Telegram-answering process.
package main

import (
	"context"
	"errors"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/juv/sma-tracker/internal/config"
	"github.com/juv/sma-tracker/internal/evaluate"
	"github.com/juv/sma-tracker/internal/marketdata"
	"github.com/juv/sma-tracker/internal/metrics"
	"github.com/juv/sma-tracker/internal/notify"
	"github.com/juv/sma-tracker/internal/pipeline"
	"github.com/juv/sma-tracker/internal/scheduler"
	"github.com/juv/sma-tracker/internal/telegram"
	"github.com/juv/sma-tracker/internal/util"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel)
	log.Info().Str("mode", cfg.App.Mode).Msg("starting sma-tracker")

	evalMode, err := evaluate.ParseMode(cfg.Eval.Mode)
	if err != nil {
		log.Fatal().Err(err).Msg("parse evaluation mode")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := marketdata.NewClient(cfg.Market.BaseURL, cfg.Market.Timeout(), log)

	var bot *telegram.Bot
	var notifier notify.Notifier = notify.NewLogNotifier(log)
	if cfg.Telegram.Token != "" {
		bot, err = telegram.New(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.Timeout(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram setup")
		}
		notifier = bot
	}

	runner := pipeline.NewRunner(client, notifier, cfg.Market.Symbol, cfg.Market.WindowDays, evalMode, log)

	switch cfg.App.Mode {
	case config.ModeOnce:
		if _, err := runner.Run(ctx); err != nil {
			log.Error().Err(err).Msg("evaluation failed")
			os.Exit(1)
		}

	case config.ModeCron:
		sched, err := scheduler.New(cfg.Schedule.Cron, runner, log)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler setup")
		}
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("scheduler stopped")
			os.Exit(1)
		}

	case config.ModeServer:
		sched, err := scheduler.New(cfg.Schedule.Cron, runner, log)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler setup")
		}
		// Both activities must stop gracefully for a clean exit; either one
		// failing takes the process down with it.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return sched.Run(gctx) })
		g.Go(func() error { return bot.Listen(gctx, runner) })
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("server stopped abnormally")
			os.Exit(1)
		}
	}

	log.Info().Msg("shutdown complete")
}
