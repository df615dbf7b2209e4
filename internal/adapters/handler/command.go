package handler

import (
	"context"
	"cybot/internal/core/domain"
	"cybot/internal/core/port"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/rs/zerolog/log"
)

// EntryCommand is the single chat command the toolbox listens on.
const EntryCommand = "/cy"

const failureNotice = "⚠️ command failed, please try again later."

// Command is the host boundary: it turns a Telegram update into a token list
// and a caller context, runs the dispatcher, and sends back the reply. Errors
// a module lets escape end up here and become a plain failure notice.
type Command struct {
	dispatcher *domain.Dispatcher
	sender     port.TextSender
	timeout    time.Duration
}

func NewCommand(dispatcher *domain.Dispatcher, sender port.TextSender, timeout time.Duration) *Command {
	return &Command{dispatcher: dispatcher, sender: sender, timeout: timeout}
}

func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	tokens, ok := ParseTokens(update.Message.Text)
	if !ok {
		return
	}

	log.Debug().Str("message", update.Message.Text).Msg("received command")

	message := &domain.Message{
		ID:             update.Message.ID,
		ChatID:         update.Message.Chat.ID,
		SenderID:       strconv.FormatInt(update.Message.From.ID, 10),
		SenderName:     getUserNameOrFirstName(update.Message.From),
		DeliveryTarget: strconv.FormatInt(update.Message.Chat.ID, 10),
		Text:           update.Message.Text,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.dispatcher.Dispatch(ctx, tokens, message)
	if err != nil {
		log.Error().Err(err).Strs("tokens", tokens).Msg("command failed")
		if err := c.sender.SendMessageReply(ctx, message, failureNotice); err != nil {
			log.Error().Err(err).Msg("failed to send failure notice")
		}
		return
	}

	if response == "" {
		return
	}

	if err := c.sender.SendMessageReply(ctx, message, response); err != nil {
		log.Error().Err(err).Msg("failed to send command reply")
	}
}

// ParseTokens splits a message into whitespace-delimited tokens and strips
// the entry command. The second value is false when the message is not an
// entry command at all, e.g. "/cyberpunk" or plain chatter.
func ParseTokens(text string) ([]string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	// "/cy@botname" in group chats addresses a specific bot
	entry, _, _ := strings.Cut(fields[0], "@")
	if entry != EntryCommand {
		return nil, false
	}

	return fields[1:], true
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
