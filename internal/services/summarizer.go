package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

// SummarizerConfig holds configuration for the summarizer
type SummarizerConfig struct {
	// Interval between runs after the first one at startup (default: 24h)
	Interval time.Duration

	// Windows are the trailing window lengths in days (default: 7 and 30)
	Windows []int
}

// DefaultSummarizerConfig returns sensible defaults
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		Interval: 24 * time.Hour,
		Windows:  []int{7, 30},
	}
}

// ExpenseSource supplies the expenses a summary is computed from.
type ExpenseSource interface {
	Snapshot(ctx context.Context) ([]core.Expense, error)
}

// SummarySink receives every computed window summary.
type SummarySink interface {
	Report(ctx context.Context, summary core.WindowSummary) error
}

// SummaryPublisher is implemented by the AMQP client.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, summary core.WindowSummary) error
}

// Summarizer periodically totals recent spending and hands each window
// summary to its sinks.
type Summarizer struct {
	source ExpenseSource
	sinks  []SummarySink
	config SummarizerConfig
	logger *applog.Logger
	now    func() time.Time
}

func NewSummarizer(source ExpenseSource, config SummarizerConfig, logger *applog.Logger, sinks ...SummarySink) *Summarizer {
	if logger == nil {
		logger = applog.Default()
	}
	if len(config.Windows) == 0 {
		config.Windows = DefaultSummarizerConfig().Windows
	}
	return &Summarizer{
		source: source,
		sinks:  sinks,
		config: config,
		logger: logger.WithComponent(applog.ComponentSummarizer),
		now:    time.Now,
	}
}

// RunOnce computes one summary per configured window from a single snapshot
// and reports each to every sink. A failing sink does not stop the others;
// their errors are joined.
func (s *Summarizer) RunOnce(ctx context.Context) ([]core.WindowSummary, error) {
	expenses, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot expenses: %w", err)
	}

	now := s.now()
	summaries := make([]core.WindowSummary, 0, len(s.config.Windows))
	var errs []error
	for _, days := range s.config.Windows {
		summary := core.Summarize(expenses, now, days)
		summaries = append(summaries, summary)
		for _, sink := range s.sinks {
			if err := sink.Report(ctx, summary); err != nil {
				errs = append(errs, fmt.Errorf("report %d-day summary: %w", days, err))
			}
		}
	}
	return summaries, errors.Join(errs...)
}

// Run summarises immediately and then every configured interval until ctx
// is cancelled. Failed runs are logged and retried on the next tick.
func (s *Summarizer) Run(ctx context.Context) error {
	interval := s.config.Interval
	if interval <= 0 {
		interval = DefaultSummarizerConfig().Interval
	}

	s.logger.InfoContext(ctx, "Summarizer started",
		"interval", interval.String(),
		"windows", s.config.Windows)

	s.runAndLog(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Summarizer stopped")
			return nil
		case <-ticker.C:
			s.runAndLog(ctx)
		}
	}
}

func (s *Summarizer) runAndLog(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.LogError(ctx, "Summary run failed", err, applog.OpSummarize, nil)
	}
}

// LogSink writes summaries to the structured log.
type LogSink struct {
	logger *applog.Logger
}

func NewLogSink(logger *applog.Logger) *LogSink {
	if logger == nil {
		logger = applog.Default()
	}
	return &LogSink{logger: logger.WithComponent(applog.ComponentSummarizer)}
}

func (l *LogSink) Report(ctx context.Context, summary core.WindowSummary) error {
	byCategory := make(map[string]float64, len(summary.ByCategory))
	for c, total := range summary.ByCategory {
		byCategory[c.String()] = total
	}
	l.logger.InfoContext(ctx, fmt.Sprintf("Spending summary for the last %d days", summary.WindowDays),
		applog.NewFields().
			WithOperation(applog.OpSummarize).
			WithSummary(summary.WindowDays, summary.Count, summary.Total, byCategory).
			ToSlice()...)
	return nil
}

// PublishSink forwards summaries to a message broker.
type PublishSink struct {
	publisher SummaryPublisher
}

func NewPublishSink(p SummaryPublisher) *PublishSink {
	return &PublishSink{publisher: p}
}

func (p *PublishSink) Report(ctx context.Context, summary core.WindowSummary) error {
	if err := p.publisher.PublishSummary(ctx, summary); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
