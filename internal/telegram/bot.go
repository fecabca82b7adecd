// Package telegram hosts the chat-facing command listener and the delivery
// channel for evaluation reports.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/juv/sma-tracker/internal/evaluate"
)

// Kept below the HTTP client timeout so long-poll requests can complete.
const updateTimeoutSecs = 25

// Runner triggers an evaluation on demand. Satisfied by pipeline.Runner.
type Runner interface {
	Run(ctx context.Context) (*evaluate.Report, error)
}

// Bot wraps the Telegram API client with the tracker's single-recipient
// semantics: it sends reports to one configured chat and answers commands
// from that chat only.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

// New authorizes against the Telegram API with an explicit HTTP timeout.
func New(token string, chatID int64, timeout time.Duration, log zerolog.Logger) (*Bot, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("telegram bot authorized")
	return &Bot{api: api, chatID: chatID, log: log}, nil
}

// Notify satisfies notify.Notifier by sending the text to the configured chat.
func (b *Bot) Notify(_ context.Context, text string) error {
	return b.send(text)
}

// Name identifies the channel for metrics labels.
func (b *Bot) Name() string { return "telegram" }

func (b *Bot) send(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", b.chatID, err)
	}
	return nil
}

// Listen long-polls for updates and dispatches recognized commands until the
// context is canceled. Command handling failures are logged and answered in
// chat; they never stop the loop.
func (b *Bot) Listen(ctx context.Context, runner Runner) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSecs
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Int64("chat_id", b.chatID).Msg("listening for commands")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info().Msg("command listener stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, runner, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, runner Runner, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Chat.ID != b.chatID {
		b.log.Warn().Int64("chat_id", update.Message.Chat.ID).Msg("ignoring message from unknown chat")
		return
	}

	cmd := ParseCommand(update.Message.Text)
	b.log.Debug().Stringer("command", cmd).Msg("command received")

	switch cmd {
	case CommandHelp:
		if err := b.send(HelpText); err != nil {
			b.log.Error().Err(err).Msg("failed to answer help command")
		}
	case CommandFetch:
		// The pipeline delivers the report to this chat itself; only a
		// failure needs an explicit reply here.
		if _, err := runner.Run(ctx); err != nil {
			b.log.Error().Err(err).Msg("fetch command failed")
			if sendErr := b.send("Fetching S&P 500 data failed, please try again later."); sendErr != nil {
				b.log.Error().Err(sendErr).Msg("failed to answer fetch command")
			}
		}
	case CommandUnknown:
		b.log.Warn().Str("text", update.Message.Text).Msg("unhandled message")
	}
}
