package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Travel        Category = "Travel"
	Entertainment Category = "Entertainment"
	Bills         Category = "Bills"
	Shopping      Category = "Shopping"

	// NoCategory is reported as the highest spending category when nothing
	// has been spent yet.
	NoCategory Category = "None"
)

// Categories is the fixed set of spending categories in reporting order.
var Categories = []Category{Food, Travel, Entertainment, Bills, Shopping}

type (
	Category string

	// Instant is a UTC timestamp with millisecond precision.
	Instant struct {
		time.Time
	}

	Expense struct {
		ID          string   `json:"id"`
		Category    Category `json:"category"`
		Amount      float64  `json:"amount"`
		Date        Instant  `json:"date"`
		Description string   `json:"description"`
	}

	// NewExpense is a validated expense that has not been assigned an ID yet.
	NewExpense struct {
		Category    Category
		Amount      float64
		Date        Instant
		Description string
	}
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
)

// ParseCategory matches s case-insensitively against the predefined
// categories and returns the canonical spelling.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) String() string {
	return string(c)
}

// NewInstant normalises t to UTC and truncates it to milliseconds.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC().Truncate(time.Millisecond)}
}

// Build attaches an identifier to a validated expense.
func (n NewExpense) Build(id string) Expense {
	return Expense{
		ID:          id,
		Category:    n.Category,
		Amount:      n.Amount,
		Date:        n.Date,
		Description: n.Description,
	}
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("expense id cannot be empty")
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if !(e.Amount > 0) {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() || !e.Date.InRange() {
		return ErrInvalidDate
	}
	return nil
}
