package core

import "time"

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Total    float64  `json:"total"`
}

// Analysis lists totals for every category in reporting order together
// with the category that has the highest total.
type Analysis struct {
	Analysis        []CategoryTotal `json:"analysis"`
	HighestSpending CategoryTotal   `json:"highestSpending"`
}

// Analyze sums expenses per predefined category. The highest spending
// entry starts as {None, 0} and is only replaced by a strictly greater
// total, so ties go to the earlier category and an all-zero result
// reports None.
func Analyze(expenses []Expense) Analysis {
	sums := make(map[Category]float64, len(Categories))
	for _, e := range expenses {
		sums[e.Category] += e.Amount
	}

	result := Analysis{
		Analysis:        make([]CategoryTotal, 0, len(Categories)),
		HighestSpending: CategoryTotal{Category: NoCategory, Total: 0},
	}
	for _, c := range Categories {
		entry := CategoryTotal{Category: c, Total: sums[c]}
		result.Analysis = append(result.Analysis, entry)
		if entry.Total > result.HighestSpending.Total {
			result.HighestSpending = entry
		}
	}
	return result
}

// WindowSummary aggregates spending over the last WindowDays days.
type WindowSummary struct {
	WindowDays  int                  `json:"windowDays"`
	From        Instant              `json:"from"`
	GeneratedAt Instant              `json:"generatedAt"`
	Count       int                  `json:"count"`
	Total       float64              `json:"total"`
	ByCategory  map[Category]float64 `json:"byCategory"`
}

// Summarize totals the expenses dated on or after now minus days. There is
// no upper bound, so future-dated expenses are counted too. ByCategory only
// holds categories that had at least one qualifying expense.
func Summarize(expenses []Expense, now time.Time, days int) WindowSummary {
	from := NewInstant(now.AddDate(0, 0, -days))
	summary := WindowSummary{
		WindowDays:  days,
		From:        from,
		GeneratedAt: NewInstant(now),
		ByCategory:  make(map[Category]float64),
	}
	for _, e := range expenses {
		if e.Date.Before(from.Time) {
			continue
		}
		summary.Count++
		summary.Total += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	return summary
}
