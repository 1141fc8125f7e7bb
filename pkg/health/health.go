// Package health serves liveness and readiness endpoints over named
// dependency probes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker probes one dependency and returns nil when it is usable.
type Checker func(ctx context.Context) error

// Status is the reported health of the service or one of its dependencies.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the body of both health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of a single dependency probe.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler serves the health endpoints. Checkers added with Register gate
// readiness; checkers added with RegisterInformational are probed and
// reported but never flip the overall status.
type Handler struct {
	mu       sync.RWMutex
	required map[string]Checker
	optional map[string]Checker
}

// NewHandler creates a health handler with no checkers registered.
func NewHandler() *Handler {
	return &Handler{
		required: make(map[string]Checker),
		optional: make(map[string]Checker),
	}
}

// Register adds a checker the service cannot operate without. When it fails,
// readiness reports down.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.required[name] = checker
}

// RegisterInformational adds a checker for a dependency the service degrades
// around rather than depends on. Its result appears in the readiness body
// but does not affect the overall status.
func (h *Handler) RegisterInformational(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.optional[name] = checker
}

// LivenessHandler reports that the process is running. It never fails.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler probes every registered dependency and answers 503 when
// any required one is down. Informational results are included in the body
// either way.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		required, optional := h.snapshot()

		checks := make(map[string]CheckResult, len(required)+len(optional))
		overall := StatusUp
		if runChecks(ctx, required, checks) {
			overall = StatusDown
		}
		runChecks(ctx, optional, checks)

		w.Header().Set("Content-Type", "application/json")
		if overall == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(Response{
			Status:    overall,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	}
}

func (h *Handler) snapshot() (required, optional map[string]Checker) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	required = make(map[string]Checker, len(h.required))
	for name, check := range h.required {
		required[name] = check
	}
	optional = make(map[string]Checker, len(h.optional))
	for name, check := range h.optional {
		optional[name] = check
	}
	return required, optional
}

// runChecks probes each checker, records the results into out, and reports
// whether any probe failed.
func runChecks(ctx context.Context, checkers map[string]Checker, out map[string]CheckResult) bool {
	failed := false
	for name, check := range checkers {
		if err := check(ctx); err != nil {
			out[name] = CheckResult{Status: StatusDown, Error: err.Error()}
			failed = true
		} else {
			out[name] = CheckResult{Status: StatusUp}
		}
	}
	return failed
}
