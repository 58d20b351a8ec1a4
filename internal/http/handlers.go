package http

import (
	"errors"
	"net/http"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

// Client-facing error messages.
const (
	msgMissingField    = "Category, amount, and date are required"
	msgInvalidCategory = "Invalid category"
	msgInvalidAmount   = "Amount must be positive"
	msgInvalidDate     = "Invalid date format"
	msgInvalidJSON     = "Invalid JSON body"
	msgInternal        = "Internal server error"
	msgRateLimited     = "Rate limit exceeded. Please try again later."
)

// validationMessage maps a validation failure to its client message. The
// second result is false for errors that are not the client's fault.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, core.ErrMissingField):
		return msgMissingField, true
	case errors.Is(err, core.ErrInvalidCategory):
		return msgInvalidCategory, true
	case errors.Is(err, core.ErrInvalidAmount):
		return msgInvalidAmount, true
	case errors.Is(err, core.ErrInvalidDate):
		return msgInvalidDate, true
	case errors.Is(err, ErrInvalidJSON):
		return msgInvalidJSON, true
	default:
		return "", false
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := ParseExpenseInput(w, r)
	if err == nil {
		var e core.Expense
		e, err = s.service.CreateExpense(ctx, in)
		if err == nil {
			NewJSONResponse().Status(http.StatusCreated).Data(e).Write(w)
			return
		}
	}

	if msg, ok := validationMessage(err); ok {
		BadRequestError(msg).Write(w)
		return
	}
	s.internalError(w, r, "Failed to create expense", err, applog.OpCreate)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses(r.Context(), ParseFilter(r.URL.Query()))
	if err != nil {
		s.internalError(w, r, "Failed to list expenses", err, applog.OpList)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	NewJSONResponse().Data(expenses).Write(w)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.service.Analyze(r.Context())
	if err != nil {
		s.internalError(w, r, "Failed to analyse expenses", err, applog.OpAnalyze)
		return
	}
	NewJSONResponse().Data(analysis).Write(w)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error, op string) {
	applog.FromContext(r.Context()).LogError(r.Context(), msg, err, op,
		applog.NewFields().WithErrorType(applog.ErrorTypeInternal))
	InternalServerError().Write(w)
}
