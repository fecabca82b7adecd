package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/juv/sma-tracker/internal/apperr"
	"github.com/juv/sma-tracker/internal/evaluate"
)

type countingRunner struct {
	runs int64
	err  error
}

func (r *countingRunner) Run(context.Context) (*evaluate.Report, error) {
	atomic.AddInt64(&r.runs, 1)
	if r.err != nil {
		return nil, r.err
	}
	return &evaluate.Report{}, nil
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	_, err := New("not a schedule", &countingRunner{}, zerolog.Nop())
	if !errors.Is(err, apperr.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewAcceptsSecondsGrammar(t *testing.T) {
	for _, spec := range []string{"0 */1 * * * 1-5", "* * * * * *", "0 0 18 * * 1-5"} {
		if _, err := New(spec, &countingRunner{}, zerolog.Nop()); err != nil {
			t.Fatalf("New(%q) returned error: %v", spec, err)
		}
	}
}

func TestRunFiresAndStops(t *testing.T) {
	runner := &countingRunner{}
	sched, err := New("* * * * * *", runner, zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	if err := sched.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if atomic.LoadInt64(&runner.runs) == 0 {
		t.Fatalf("expected at least one firing")
	}
}

func TestRunSurvivesFailingFirings(t *testing.T) {
	runner := &countingRunner{err: errors.New("upstream down")}
	sched, err := New("* * * * * *", runner, zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	_ = sched.Run(ctx)
	if atomic.LoadInt64(&runner.runs) < 2 {
		t.Fatalf("expected the schedule to keep firing after failures, got %d runs", atomic.LoadInt64(&runner.runs))
	}
}
