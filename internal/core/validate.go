package core

import "math"

// ExpenseInput carries the raw values of a submitted expense as decoded from
// JSON (string, float64, bool, nil, ...). Keeping them untyped lets the
// validator tell an absent field from one with the wrong type.
type ExpenseInput struct {
	Category    any
	Amount      any
	Date        any
	Description any
}

// ValidateExpense checks the input in a fixed order (presence, category,
// amount, date) and returns the first failure.
func ValidateExpense(in ExpenseInput) (NewExpense, error) {
	if isFalsy(in.Category) || isFalsy(in.Amount) || isFalsy(in.Date) {
		return NewExpense{}, ErrMissingField
	}

	name, ok := in.Category.(string)
	if !ok {
		return NewExpense{}, ErrInvalidCategory
	}
	category, err := ParseCategory(name)
	if err != nil {
		return NewExpense{}, err
	}

	amount, ok := in.Amount.(float64)
	if !ok || math.IsNaN(amount) || amount <= 0 {
		return NewExpense{}, ErrInvalidAmount
	}

	date, err := instantFromValue(in.Date)
	if err != nil {
		return NewExpense{}, ErrInvalidDate
	}

	description, _ := in.Description.(string)

	return NewExpense{
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: description,
	}, nil
}

// isFalsy treats nil, empty strings, zero numbers and false as absent.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0 || math.IsNaN(val)
	case int:
		return val == 0
	case int64:
		return val == 0
	case bool:
		return !val
	default:
		return false
	}
}
