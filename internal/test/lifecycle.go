package test

import (
	"context"
	"errors"

	"go.uber.org/fx"
)

// LifecycleRecorder is an fx.Lifecycle that runs hooks on demand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// Start runs OnStart hooks in registration order and stops at the first error.
func (l *LifecycleRecorder) Start(ctx context.Context) error {
	for _, h := range l.Hooks {
		if h.OnStart == nil {
			continue
		}
		if err := h.OnStart(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Stop runs OnStop hooks in reverse order, like fx does.
func (l *LifecycleRecorder) Stop(ctx context.Context) error {
	var errs []error
	for i := len(l.Hooks) - 1; i >= 0; i-- {
		if l.Hooks[i].OnStop == nil {
			continue
		}
		errs = append(errs, l.Hooks[i].OnStop(ctx))
	}
	return errors.Join(errs...)
}

// ShutdownerStub signals Called on the first Shutdown.
type ShutdownerStub struct {
	Called chan struct{}
}

// NewShutdownerStub returns a stub with a buffered Called channel.
func NewShutdownerStub() *ShutdownerStub {
	return &ShutdownerStub{Called: make(chan struct{}, 1)}
}

func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	select {
	case s.Called <- struct{}{}:
	default:
	}
	return nil
}
