package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"expenses/internal/cache"
	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/store"
)

const analysisKey = "analysis"

// ExpenseServiceConfig controls result caching.
type ExpenseServiceConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultExpenseServiceConfig returns sensible defaults
func DefaultExpenseServiceConfig() ExpenseServiceConfig {
	return ExpenseServiceConfig{
		CacheSize: 100,
		CacheTTL:  5 * time.Minute,
	}
}

// ExpenseService validates submissions, stores them and answers list and
// analysis queries. Query results are cached until the next write.
type ExpenseService struct {
	store  store.Store
	logger *applog.Logger

	// mu orders cache fills after purges so a read that started before a
	// write cannot repopulate the cache with stale data.
	mu            sync.RWMutex
	listCache     *cache.LRUCache[[]core.Expense]
	analysisCache *cache.LRUCache[core.Analysis]
}

func NewExpenseService(st store.Store, cfg ExpenseServiceConfig, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.Default()
	}
	return &ExpenseService{
		store:         st,
		logger:        logger.WithComponent(applog.ComponentExpense),
		listCache:     cache.NewLRUCache[[]core.Expense](cfg.CacheSize, cfg.CacheTTL),
		analysisCache: cache.NewLRUCache[core.Analysis](1, cfg.CacheTTL),
	}
}

// Caches returns the service caches so a cache.Manager can clean them.
func (s *ExpenseService) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.listCache, s.analysisCache}
}

// CreateExpense validates the raw input and stores it. Validation failures
// are returned unwrapped as one of the core.Err* sentinels.
func (s *ExpenseService) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	n, err := core.ValidateExpense(in)
	if err != nil {
		s.logger.DebugContext(ctx, "Expense rejected",
			applog.FieldOperation, applog.OpCreate,
			applog.FieldErrorType, applog.ErrorTypeValidation,
			applog.FieldError, err.Error())
		return core.Expense{}, err
	}

	s.mu.Lock()
	e, err := s.store.Add(ctx, n)
	if err == nil {
		s.listCache.Purge()
		s.analysisCache.Purge()
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.LogError(ctx, "Failed to store expense", err, applog.OpCreate,
			applog.NewFields().WithErrorType(applog.ErrorTypeDatabase))
		return core.Expense{}, fmt.Errorf("store expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense created", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(e.ID, e.Category.String(), e.Amount, e.Date.String()).
		ToSlice()...)

	return e, nil
}

// ListExpenses returns the expenses matching filter in insertion order.
func (s *ExpenseService) ListExpenses(ctx context.Context, filter core.Filter) ([]core.Expense, error) {
	key := filter.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if cached, ok := s.listCache.Get(key); ok {
		s.logger.DebugContext(ctx, "Expense list served from cache",
			applog.FieldOperation, applog.OpList,
			applog.FieldCacheHit, true,
			applog.FieldCount, len(cached))
		return cloneExpenses(cached), nil
	}

	expenses, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	s.listCache.Set(key, cloneExpenses(expenses))

	s.logger.DebugContext(ctx, "Expenses listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldCacheHit, false,
		applog.FieldCount, len(expenses))
	return expenses, nil
}

// Analyze totals every stored expense per category.
func (s *ExpenseService) Analyze(ctx context.Context) (core.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cached, ok := s.analysisCache.Get(analysisKey); ok {
		return cloneAnalysis(cached), nil
	}

	expenses, err := s.store.List(ctx, core.Filter{})
	if err != nil {
		return core.Analysis{}, fmt.Errorf("list expenses: %w", err)
	}
	result := core.Analyze(expenses)
	s.analysisCache.Set(analysisKey, cloneAnalysis(result))

	s.logger.DebugContext(ctx, "Spending analysed",
		applog.FieldOperation, applog.OpAnalyze,
		applog.FieldCount, len(expenses),
		applog.FieldCategory, result.HighestSpending.Category.String())
	return result, nil
}

// Snapshot returns every stored expense without touching the caches.
func (s *ExpenseService) Snapshot(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx, core.Filter{})
}

// Close releases the store when it holds resources.
func (s *ExpenseService) Close() error {
	var errs []error
	if c, ok := s.store.(interface{ Close() error }); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func cloneExpenses(in []core.Expense) []core.Expense {
	out := make([]core.Expense, len(in))
	copy(out, in)
	return out
}

func cloneAnalysis(a core.Analysis) core.Analysis {
	out := a
	out.Analysis = make([]core.CategoryTotal, len(a.Analysis))
	copy(out.Analysis, a.Analysis)
	return out
}
