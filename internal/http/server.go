package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/middleware/ratelimit"
	"expenses/internal/middleware/security"
)

// ExpenseService is what the handlers need from the service layer.
type ExpenseService interface {
	CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
	ListExpenses(ctx context.Context, filter core.Filter) ([]core.Expense, error)
	Analyze(ctx context.Context) (core.Analysis, error)
}

// Options tune the server. The zero value disables rate limiting and uses
// the default logger.
type Options struct {
	// RateLimitPerMinute caps POST /expenses per client IP; 0 disables it.
	RateLimitPerMinute int
	Logger             *applog.Logger
	// Ready backs /readyz; nil means always ready.
	Ready func(ctx context.Context) error
}

type Server struct {
	http.Server
	service     ExpenseService
	logger      *applog.Logger
	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	ready       func(ctx context.Context) error

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc ExpenseService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Default()
	}

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		service:  svc,
		logger:   logger.WithComponent(applog.ComponentHTTP),
		detector: security.NewDetector(),
		ready:    opts.Ready,
	}

	var create http.Handler = http.HandlerFunc(s.handleCreateExpense)
	if opts.RateLimitPerMinute > 0 {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
		create = s.rateLimiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(create)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /expenses", create)
	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("GET /expenses/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	requestLog := applog.RequestMiddleware(logger, requestID, s.detector.ExtractClientIP)

	s.Handler = headers.Middleware(requestLog(s.withSuspiciousRequestLog(withRecovery(mux))))
	return s
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "HTTP server shutting down", applog.FieldOperation, applog.OpShutdown)
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRecovery turns a panic in a handler into the generic 500 envelope.
func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				applog.FromContext(r.Context()).ErrorContext(r.Context(), "Handler panic recovered",
					applog.FieldError, rec,
					applog.FieldErrorType, applog.ErrorTypeInternal,
					"stack", string(debug.Stack()))
				InternalServerError().Write(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withSuspiciousRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request detected",
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldPath, r.URL.Path)
	TooManyRequestsError().Write(w)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", applog.FieldError, err.Error())
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
