package amqp

import (
	"encoding/json"
	"time"

	"expenses/internal/core"
)

// SpendingSummaryType is set as the AMQP message type of published summaries.
const SpendingSummaryType = "expenses.spending_summary"

// SpendingSummaryMessage carries the spending totals of one trailing window.
type SpendingSummaryMessage struct {
	WindowDays  int                `json:"windowDays"`
	From        time.Time          `json:"from"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Count       int                `json:"count"`
	Total       float64            `json:"total"`
	ByCategory  map[string]float64 `json:"byCategory"`
	Timestamp   time.Time          `json:"timestamp"`
}

func NewSpendingSummaryMessage(s core.WindowSummary) *SpendingSummaryMessage {
	byCategory := make(map[string]float64, len(s.ByCategory))
	for c, total := range s.ByCategory {
		byCategory[string(c)] = total
	}
	return &SpendingSummaryMessage{
		WindowDays:  s.WindowDays,
		From:        s.From.Time,
		GeneratedAt: s.GeneratedAt.Time,
		Count:       s.Count,
		Total:       s.Total,
		ByCategory:  byCategory,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SpendingSummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SpendingSummaryMessageFromJSON(data []byte) (*SpendingSummaryMessage, error) {
	var msg SpendingSummaryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
