package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"expenses/internal/amqp"
	applog "expenses/internal/log"
)

// SummaryConsumer delivers published summaries until ctx is done or the
// subscription breaks.
type SummaryConsumer interface {
	ConsumeSummaries(ctx context.Context, handler func(*amqp.SpendingSummaryMessage) error) error
}

// SummaryWorker consumes spending summaries, logs them and keeps the most
// recent one per window.
type SummaryWorker struct {
	consumer     SummaryConsumer
	logger       *applog.Logger
	retryDelay   time.Duration
	maxRetryWait time.Duration

	mu     sync.RWMutex
	latest map[int]amqp.SpendingSummaryMessage
}

func NewSummaryWorker(consumer SummaryConsumer, logger *applog.Logger) *SummaryWorker {
	if logger == nil {
		logger = applog.Default()
	}
	return &SummaryWorker{
		consumer:     consumer,
		logger:       logger.WithComponent(applog.ComponentSummarizer),
		retryDelay:   time.Second,
		maxRetryWait: 30 * time.Second,
		latest:       make(map[int]amqp.SpendingSummaryMessage),
	}
}

// HandleSummary processes a single summary message.
func (w *SummaryWorker) HandleSummary(ctx context.Context, msg *amqp.SpendingSummaryMessage) error {
	if msg == nil || msg.WindowDays <= 0 {
		return fmt.Errorf("invalid summary message")
	}

	w.mu.Lock()
	if prev, ok := w.latest[msg.WindowDays]; ok && prev.GeneratedAt.After(msg.GeneratedAt) {
		w.mu.Unlock()
		w.logger.DebugContext(ctx, "Ignoring out-of-order summary",
			applog.FieldWindowDays, msg.WindowDays)
		return nil
	}
	w.latest[msg.WindowDays] = *msg
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Received spending summary", applog.NewFields().
		WithOperation(applog.OpSummarize).
		WithSummary(msg.WindowDays, msg.Count, msg.Total, msg.ByCategory).
		ToSlice()...)
	return nil
}

// Latest returns the most recent summary seen for the window.
func (w *SummaryWorker) Latest(windowDays int) (amqp.SpendingSummaryMessage, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	msg, ok := w.latest[windowDays]
	return msg, ok
}

// Run consumes until ctx is cancelled, resubscribing with a growing delay
// whenever the subscription fails.
func (w *SummaryWorker) Run(ctx context.Context) error {
	delay := w.retryDelay
	for {
		err := w.consumer.ConsumeSummaries(ctx, func(msg *amqp.SpendingSummaryMessage) error {
			return w.HandleSummary(ctx, msg)
		})
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errors.New("subscription ended")
		}
		w.logger.WarnContext(ctx, "Summary subscription failed, retrying",
			applog.FieldError, err.Error(),
			"retry_in", delay.String())

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay *= 2
		if delay > w.maxRetryWait {
			delay = w.maxRetryWait
		}
	}
}
