package core

// Filter selects expenses by category and/or an inclusive date range. The
// date range is only active when both bounds were supplied.
type Filter struct {
	Category Category
	// HasRange is set when both startDate and endDate were given.
	HasRange bool
	// RangeValid is false when a bound failed to parse; such a range
	// matches nothing.
	RangeValid bool
	Start      Instant
	End        Instant
}

// NewFilter builds a Filter from raw query values. A partial range is
// ignored.
func NewFilter(category, startDate, endDate string) Filter {
	f := Filter{Category: Category(category)}
	if startDate == "" || endDate == "" {
		return f
	}
	f.HasRange = true
	start, errStart := ParseInstant(startDate)
	end, errEnd := ParseInstant(endDate)
	if errStart != nil || errEnd != nil {
		return f
	}
	f.RangeValid = true
	f.Start = start
	f.End = end
	return f
}

// Match reports whether e satisfies every active condition.
func (f Filter) Match(e Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.HasRange {
		if !f.RangeValid {
			return false
		}
		if !e.Date.Within(f.Start, f.End) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the filter selects every expense.
func (f Filter) IsEmpty() bool {
	return f.Category == "" && !f.HasRange
}

// Key identifies the filter for caching.
func (f Filter) Key() string {
	key := "c=" + string(f.Category)
	if f.HasRange {
		if !f.RangeValid {
			return key + "|invalid"
		}
		key += "|" + f.Start.String() + "|" + f.End.String()
	}
	return key
}

// Apply returns the expenses matching f, keeping their order.
func (f Filter) Apply(expenses []Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
