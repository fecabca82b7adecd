// Package notify abstracts delivery of evaluation reports to their recipient.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers a rendered report. Name identifies the channel for
// metrics labels.
type Notifier interface {
	Notify(ctx context.Context, text string) error
	Name() string
}

// LogNotifier records reports on the process log instead of an external
// channel. Used when no bot credential is configured.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier returns a notifier writing to the given logger.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the report text. It never fails.
func (n *LogNotifier) Notify(_ context.Context, text string) error {
	n.log.Info().Msg(text)
	return nil
}

// Name identifies the channel.
func (n *LogNotifier) Name() string { return "log" }
