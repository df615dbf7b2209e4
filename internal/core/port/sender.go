package port

import (
	"context"
	"cybot/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a reply to a specified message with the given
	// text and returns an error if any.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) error
	// SendMessage delivers text to an opaque delivery target outside of a
	// live request/response exchange, as needed by the daily push.
	SendMessage(ctx context.Context, target string, text string) error
}
