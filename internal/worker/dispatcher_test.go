package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/discord"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type delivery struct {
	url string
	n   model.Notification
}

type senderStub struct {
	mu        sync.Mutex
	webhooks  []delivery
	direct    []model.Notification
	webhookFn func(ctx context.Context, url string, n model.Notification) error
	block     chan struct{}
	entered   chan struct{}
}

func (s *senderStub) SendWebhook(ctx context.Context, url string, n model.Notification) error {
	if s.block != nil {
		if s.entered != nil {
			s.entered <- struct{}{}
		}
		<-s.block
	}
	if s.webhookFn != nil {
		if err := s.webhookFn(ctx, url, n); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks = append(s.webhooks, delivery{url: url, n: n})
	return nil
}

func (s *senderStub) SendDirectMessage(ctx context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.direct = append(s.direct, n)
	return nil
}

func (s *senderStub) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.webhooks), len(s.direct)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var testWebhooks = config.WebhookConfig{
	NewRegistration:   "https://hooks.test/registration",
	OrderConfirmation: "https://hooks.test/orders",
	OrderStatusChange: "https://hooks.test/status",
	RedeemRequest:     "https://hooks.test/redeem",
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(&senderStub{}, config.WebhookConfig{}, 0, 0, 0, testLogger())
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
	if cap(d.jobs) != 1 {
		t.Fatalf("expected queue size default to 1, got %d", cap(d.jobs))
	}
	if d.timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", d.timeout)
	}
}

func TestDispatcherRoutesChannels(t *testing.T) {
	sender := &senderStub{}
	d := NewDispatcher(sender, testWebhooks, time.Second, 2, 16, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Notify(model.Notification{Channel: model.ChannelOrderConfirmation, Content: "order"})
	d.Notify(model.Notification{Channel: model.ChannelRedeemRequest, Content: "redeem"})
	d.Notify(model.Notification{Channel: model.ChannelDirectMessage, Recipient: "42", Content: "dm"})

	waitFor(t, func() bool {
		w, dm := sender.counts()
		return w == 2 && dm == 1
	})

	sender.mu.Lock()
	defer sender.mu.Unlock()
	urls := map[string]string{}
	for _, w := range sender.webhooks {
		urls[w.n.Content] = w.url
		if w.n.ID == "" {
			t.Fatal("expected notification id to be assigned")
		}
	}
	if urls["order"] != testWebhooks.OrderConfirmation || urls["redeem"] != testWebhooks.RedeemRequest {
		t.Fatalf("unexpected routing: %v", urls)
	}
	if sender.direct[0].Recipient != "42" {
		t.Fatalf("unexpected direct message: %+v", sender.direct[0])
	}
}

func TestDispatcherSurvivesFailures(t *testing.T) {
	var calls int
	var mu sync.Mutex
	sender := &senderStub{webhookFn: func(ctx context.Context, url string, n model.Notification) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		switch n.Content {
		case "fail":
			return errors.New("boom")
		case "disabled":
			return discord.ErrNotConfigured
		}
		return nil
	}}
	d := NewDispatcher(sender, testWebhooks, time.Second, 1, 8, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Notify(model.Notification{Channel: model.ChannelOrderStatus, Content: "fail"})
	d.Notify(model.Notification{Channel: model.ChannelOrderStatus, Content: "disabled"})
	d.Notify(model.Notification{Channel: model.ChannelOrderStatus, Content: "ok"})

	waitFor(t, func() bool {
		w, _ := sender.counts()
		return w == 1
	})
	mu.Lock()
	defer mu.Unlock()
	if calls != 3 {
		t.Fatalf("expected three delivery attempts, got %d", calls)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	d := NewDispatcher(&senderStub{}, testWebhooks, time.Second, 1, 2, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			d.Notify(model.Notification{Channel: model.ChannelNewRegistration})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify must not block when the queue is full")
	}
	if len(d.jobs) != 2 {
		t.Fatalf("expected queue to hold 2 messages, got %d", len(d.jobs))
	}
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	deadlines := make(chan bool, 1)
	sender := &senderStub{webhookFn: func(ctx context.Context, url string, n model.Notification) error {
		_, ok := ctx.Deadline()
		deadlines <- ok
		return nil
	}}
	d := NewDispatcher(sender, testWebhooks, 50*time.Millisecond, 1, 1, testLogger())
	d.Start(context.Background())
	defer d.Stop()

	d.Notify(model.Notification{Channel: model.ChannelNewRegistration})
	select {
	case ok := <-deadlines:
		if !ok {
			t.Fatal("expected send context to carry a deadline")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for delivery")
	}
}

func TestDispatcherStartOutlivesStartContext(t *testing.T) {
	sender := &senderStub{}
	d := NewDispatcher(sender, testWebhooks, time.Second, 1, 4, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	defer d.Stop()

	d.Notify(model.Notification{Channel: model.ChannelNewRegistration})
	waitFor(t, func() bool {
		w, _ := sender.counts()
		return w == 1
	})
}

func TestDispatcherStopWaitsForWorkers(t *testing.T) {
	sendErr := make(chan error, 1)
	sender := &senderStub{
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
		webhookFn: func(ctx context.Context, url string, n model.Notification) error {
			sendErr <- ctx.Err()
			return nil
		},
	}
	d := NewDispatcher(sender, testWebhooks, time.Second, 1, 4, testLogger())
	d.Start(context.Background())
	d.Notify(model.Notification{Channel: model.ChannelNewRegistration})

	select {
	case <-sender.entered:
	case <-time.After(time.Second):
		t.Fatal("delivery did not start")
	}

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned before in-flight delivery finished")
	case <-time.After(30 * time.Millisecond):
	}

	close(sender.block)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	if err := <-sendErr; err != nil {
		t.Fatalf("in-flight send saw a cancelled context: %v", err)
	}
	if w, _ := sender.counts(); w != 1 {
		t.Fatalf("expected in-flight delivery to complete, got %d", w)
	}
}

func TestDispatcherStopIsIdempotentAndRestartable(t *testing.T) {
	sender := &senderStub{}
	d := NewDispatcher(sender, testWebhooks, time.Second, 2, 4, testLogger())
	d.Stop()

	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Start(context.Background())
	defer d.Stop()
	d.Notify(model.Notification{Channel: model.ChannelNewRegistration})
	waitFor(t, func() bool {
		w, _ := sender.counts()
		return w == 1
	})
}
