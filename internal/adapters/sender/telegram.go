package sender

import (
	"context"
	"cybot/internal/core/domain"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const TelegramMessageLimit = 4096

// TelegramBot is the slice of the bot API the sender needs.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type TelegramSender struct {
	bot TelegramBot
}

func NewTelegramSender(bot TelegramBot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// SendMessageReply answers an incoming command in its chat, as a reply to
// the triggering message. Text beyond the Telegram limit is chunked.
func (s *TelegramSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) error {
	for i, chunk := range splitMessage(text) {
		params := &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   chunk,
		}

		// only the first chunk quotes the triggering message
		if i == 0 {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			}
		}

		if _, err := s.bot.SendMessage(ctx, params); err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send reply")
			return err
		}
	}

	return nil
}

// SendMessage delivers text to a stored delivery target outside of a live
// exchange. The target is the stringified chat ID captured at subscribe time.
func (s *TelegramSender) SendMessage(ctx context.Context, target string, text string) error {
	chatID, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid delivery target %q: %w", target, err)
	}

	for _, chunk := range splitMessage(text) {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send push message")
			return err
		}
	}

	return nil
}

func splitMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= TelegramMessageLimit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > 0 {
		size := min(len(runes), TelegramMessageLimit)
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}

	return chunks
}
