package store

import (
	"context"

	"expenses/internal/core"
)

// Ports implemented by every expense backend.
type (
	// ExpenseWriter appends a validated expense, assigning its identifier.
	ExpenseWriter interface {
		Add(ctx context.Context, e core.NewExpense) (core.Expense, error)
	}

	// ExpenseLister returns stored expenses in insertion order.
	ExpenseLister interface {
		// List returns the expenses matching filter. An empty filter
		// returns everything.
		List(ctx context.Context, filter core.Filter) ([]core.Expense, error)
	}

	// Store is the full backend contract.
	Store interface {
		ExpenseWriter
		ExpenseLister
	}

	// IDGenerator produces unique expense identifiers.
	IDGenerator func() string
)
