package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"expenses/internal/core"
)

// maxBodyBytes caps the size of a submitted expense.
const maxBodyBytes = 1 << 20

// ErrInvalidJSON is returned when the body is malformed or is a JSON
// primitive.
var ErrInvalidJSON = errors.New("invalid JSON body")

// ParseExpenseInput decodes the request body into raw expense values.
// Numbers stay float64 so the validator sees what the client sent. An empty
// body or a top-level array yields no fields, leaving the missing-field
// report to the validator.
func ParseExpenseInput(w http.ResponseWriter, r *http.Request) (core.ExpenseInput, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return core.ExpenseInput{}, nil
		}
		return core.ExpenseInput{}, ErrInvalidJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return core.ExpenseInput{}, ErrInvalidJSON
	}

	switch body := raw.(type) {
	case map[string]any:
		return core.ExpenseInput{
			Category:    body["category"],
			Amount:      body["amount"],
			Date:        body["date"],
			Description: body["description"],
		}, nil
	case []any:
		return core.ExpenseInput{}, nil
	default:
		return core.ExpenseInput{}, ErrInvalidJSON
	}
}

// ParseFilter builds a list filter from the category, startDate and
// endDate query parameters.
func ParseFilter(query url.Values) core.Filter {
	return core.NewFilter(query.Get("category"), query.Get("startDate"), query.Get("endDate"))
}
