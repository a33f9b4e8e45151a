package test

import (
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// NotifierStub records notifications.
type NotifierStub struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (n *NotifierStub) Notify(msg model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

// Sent returns a copy of recorded notifications.
func (n *NotifierStub) Sent() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notification(nil), n.sent...)
}

// ByChannel returns recorded notifications for a channel.
func (n *NotifierStub) ByChannel(ch model.NotificationChannel) []model.Notification {
	var result []model.Notification
	for _, msg := range n.Sent() {
		if msg.Channel == ch {
			result = append(result, msg)
		}
	}
	return result
}
