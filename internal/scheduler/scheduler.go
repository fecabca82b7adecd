// Package scheduler fires recurring evaluations on a cron expression.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/juv/sma-tracker/internal/apperr"
	"github.com/juv/sma-tracker/internal/evaluate"
)

// Runner triggers an evaluation per firing. Satisfied by pipeline.Runner.
type Runner interface {
	Run(ctx context.Context) (*evaluate.Report, error)
}

// Scheduler owns the cron schedule driving recurring pipeline runs. A
// firing's failure (or panic) is logged and never halts subsequent firings.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	runner   Runner
	log      zerolog.Logger
}

// New validates the schedule expression. The grammar has six fields with a
// leading seconds column, matching the default "0 */1 * * * 1-5" (weekdays,
// every minute).
func New(spec string, runner Runner, log zerolog.Logger) (*Scheduler, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: cron schedule %q: %v", apperr.ErrConfig, spec, err)
	}
	return &Scheduler{spec: spec, schedule: schedule, runner: runner, log: log}, nil
}

// Run starts the schedule and blocks until the context is canceled, then
// waits for in-flight firings to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.Recover(&cronLogger{log: s.log})))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if _, err := s.runner.Run(ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled evaluation failed")
		}
	}))

	s.log.Info().Str("schedule", s.spec).Msg("cron scheduler started")
	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.log.Info().Msg("cron scheduler stopped")
	return ctx.Err()
}

// cronLogger adapts zerolog to cron's logging interface so recovered job
// panics surface in the process log.
type cronLogger struct {
	log zerolog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
