package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront/internal/adapter/discord"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultTimeout = 5 * time.Second

// MessageSender delivers a single notification over the network.
type MessageSender interface {
	SendWebhook(ctx context.Context, webhookURL string, n model.Notification) error
	SendDirectMessage(ctx context.Context, n model.Notification) error
}

// Dispatcher queues notifications and delivers them from a worker pool.
// Notify never blocks; messages are dropped when the queue is full.
type Dispatcher struct {
	sender  MessageSender
	routes  map[model.NotificationChannel]string
	timeout time.Duration
	workers int
	logger  *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	quit   chan struct{}
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs a notification dispatcher.
func NewDispatcher(sender MessageSender, webhooks config.WebhookConfig, timeout time.Duration, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		sender: sender,
		routes: map[model.NotificationChannel]string{
			model.ChannelNewRegistration:   webhooks.NewRegistration,
			model.ChannelOrderConfirmation: webhooks.OrderConfirmation,
			model.ChannelOrderStatus:       webhooks.OrderStatusChange,
			model.ChannelRedeemRequest:     webhooks.RedeemRequest,
		},
		timeout: timeout,
		workers: workers,
		logger:  logger,
		jobs:    make(chan model.Notification, queueSize),
	}
}

// Notify enqueues n for delivery.
func (d *Dispatcher) Notify(n model.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	select {
	case d.jobs <- n:
	default:
		d.logger.Warn("notification queue full, dropping message",
			slog.String("id", n.ID),
			slog.String("channel", string(n.Channel)),
		)
	}
}

// Start launches delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.quit = make(chan struct{})

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, d.quit)
	}
}

// Stop halts intake, waits for in-flight deliveries to finish within their
// send timeout, then releases the workers' context. Queued messages that no
// worker picked up are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel == nil {
		return
	}

	close(d.quit)
	d.wg.Wait()
	d.cancel()
	d.cancel = nil
	d.quit = nil

	if pending := len(d.jobs); pending > 0 {
		d.logger.Warn("notifications dropped on shutdown", slog.Int("pending", pending))
	}
}

func (d *Dispatcher) worker(ctx context.Context, quit <-chan struct{}) {
	defer d.wg.Done()
	for {
		select {
		case <-quit:
			return
		default:
		}
		select {
		case <-quit:
			return
		case n := <-d.jobs:
			d.deliver(ctx, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n model.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var err error
	if n.Channel == model.ChannelDirectMessage {
		err = d.sender.SendDirectMessage(sendCtx, n)
	} else {
		err = d.sender.SendWebhook(sendCtx, d.routes[n.Channel], n)
	}

	switch {
	case err == nil:
		d.logger.Debug("notification delivered", slog.String("id", n.ID), slog.String("channel", string(n.Channel)))
	case errors.Is(err, discord.ErrNotConfigured):
		d.logger.Debug("notification channel disabled", slog.String("id", n.ID), slog.String("channel", string(n.Channel)))
	default:
		d.logger.Error("notification delivery failed",
			slog.String("id", n.ID),
			slog.String("channel", string(n.Channel)),
			slog.String("error", err.Error()),
		)
	}
}
