package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/contest-digest/internal/contest"
	"github.com/pfrederiksen/contest-digest/internal/digest"
)

// messageSender is satisfied by *telegram.Client
type messageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier sends the digest to one chat
type TelegramNotifier struct {
	client messageSender
}

// NewTelegramNotifier wraps a Telegram client
func NewTelegramNotifier(client messageSender) *TelegramNotifier {
	return &TelegramNotifier{client: client}
}

// Notify sends the full digest as plain text
func (n *TelegramNotifier) Notify(ctx context.Context, s *contest.Schedule) error {
	if err := n.client.SendMessage(ctx, digest.Format(s)); err != nil {
		return fmt.Errorf("failed to send telegram digest: %w", err)
	}
	return nil
}
