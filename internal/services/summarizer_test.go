package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"expenses/internal/core"
)

type staticSource struct {
	expenses []core.Expense
	err      error
}

func (s staticSource) Snapshot(context.Context) ([]core.Expense, error) {
	return s.expenses, s.err
}

type recordingSink struct {
	mu        sync.Mutex
	summaries []core.WindowSummary
	err       error
}

func (r *recordingSink) Report(_ context.Context, s core.WindowSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.summaries)
}

type fakePublisher struct {
	published []core.WindowSummary
}

func (f *fakePublisher) PublishSummary(_ context.Context, s core.WindowSummary) error {
	f.published = append(f.published, s)
	return nil
}

func expenseAt(category core.Category, amount float64, t time.Time) core.Expense {
	return core.Expense{ID: t.String(), Category: category, Amount: amount, Date: core.NewInstant(t)}
}

func TestSummarizer_RunOnce(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	source := staticSource{expenses: []core.Expense{
		expenseAt(core.Food, 10, now.AddDate(0, 0, -1)),
		expenseAt(core.Travel, 20, now.AddDate(0, 0, -10)),
		expenseAt(core.Food, 5, now.AddDate(0, 0, -40)),
		expenseAt(core.Bills, 7, now.AddDate(0, 0, 3)),
	}}
	sink := &recordingSink{}
	s := NewSummarizer(source, DefaultSummarizerConfig(), nil, sink)
	s.now = func() time.Time { return now }

	summaries, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(summaries) != 2 || sink.count() != 2 {
		t.Fatalf("expected two summaries, got %d (sink %d)", len(summaries), sink.count())
	}

	week, month := summaries[0], summaries[1]
	if week.WindowDays != 7 || week.Count != 2 || week.Total != 17 {
		t.Errorf("unexpected 7-day summary: %+v", week)
	}
	if month.WindowDays != 30 || month.Count != 3 || month.Total != 37 {
		t.Errorf("unexpected 30-day summary: %+v", month)
	}
	if month.ByCategory[core.Travel] != 20 {
		t.Errorf("unexpected travel total: %v", month.ByCategory)
	}
}

func TestSummarizer_SinkErrorsDoNotStopOthers(t *testing.T) {
	failing := &recordingSink{err: errors.New("boom")}
	ok := &recordingSink{}
	s := NewSummarizer(staticSource{}, SummarizerConfig{Windows: []int{7}}, nil, failing, ok)

	_, err := s.RunOnce(context.Background())
	if err == nil {
		t.Fatal("expected joined sink error")
	}
	if ok.count() != 1 {
		t.Fatalf("healthy sink received %d summaries, want 1", ok.count())
	}
}

func TestSummarizer_SourceError(t *testing.T) {
	sink := &recordingSink{}
	s := NewSummarizer(staticSource{err: errors.New("down")}, DefaultSummarizerConfig(), nil, sink)
	if _, err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
	if sink.count() != 0 {
		t.Fatal("sink should not be called when the snapshot fails")
	}
}

func TestSummarizer_RunReportsAtStartupAndStops(t *testing.T) {
	sink := &recordingSink{}
	s := NewSummarizer(staticSource{}, SummarizerConfig{Interval: time.Hour}, nil, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for sink.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("startup run did not report, got %d summaries", sink.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestPublishSink(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewPublishSink(pub)
	summary := core.WindowSummary{WindowDays: 30, Count: 1, Total: 9}
	if err := sink.Report(context.Background(), summary); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].WindowDays != 30 {
		t.Fatalf("unexpected published summaries: %+v", pub.published)
	}
}

func TestLogSink(t *testing.T) {
	if err := NewLogSink(nil).Report(context.Background(), core.WindowSummary{WindowDays: 7}); err != nil {
		t.Fatalf("LogSink.Report: %v", err)
	}
}
