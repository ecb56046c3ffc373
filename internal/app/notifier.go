package app

import (
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// ErrSend marks a failure of the outbound Telegram channel. It is never
// escalated further: there is no lower-level fallback channel.
var ErrSend = fmt.Errorf("failed to send telegram message")

// Notifier delivers messages to the single configured recipient chat.
type Notifier struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Logger
}

func NewNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Logger) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

// Notify sends text to the recipient. Exactly one outbound message per
// successful call; a failure wraps ErrSend and is left to the caller to log.
func (n *Notifier) Notify(text string) error {
	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	n.logger.Debugf("Message delivered to chat %d", n.chatID)
	return nil
}
