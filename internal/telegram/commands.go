package telegram

import "strings"

// Command enumerates the inbound commands the bot understands. Dispatch is
// an exhaustive switch over this set; anything else is CommandUnknown.
type Command int

const (
	CommandUnknown Command = iota
	CommandHelp
	CommandFetch
)

// String returns the command name for logs.
func (c Command) String() string {
	switch c {
	case CommandHelp:
		return "help"
	case CommandFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// HelpText lists the supported commands.
const HelpText = "These commands are supported:\n" +
	"/help - display this text.\n" +
	"/fetch - retrieve current S&P 500 index data."

// ParseCommand maps a message text onto the closed command set. The bot-name
// suffix Telegram appends in group chats (/help@SomeBot) is stripped.
func ParseCommand(text string) Command {
	cmd := strings.TrimSpace(text)
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	switch strings.ToLower(cmd) {
	case "/help":
		return CommandHelp
	case "/fetch":
		return CommandFetch
	default:
		return CommandUnknown
	}
}
