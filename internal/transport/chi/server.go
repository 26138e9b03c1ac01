package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/request"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/peoplefinder/internal/usecase/health"
)

// maxBodyBytes bounds the search request body.
const maxBodyBytes = 64 << 10

// Client-facing messages. Internal error text is never exposed.
const (
	msgQueryRequired  = "Query is required"
	msgInvalidQuery   = "Invalid query"
	msgInvalidBody    = "Invalid request body"
	msgInternal       = "Internal Server Error"
	msgModelProvider  = "Filter model provider error"
	msgModelThrottled = "Filter model rate limit exceeded, retry later"
)

// Searcher runs free-text employee searches.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// PageSizes configures request pagination.
type PageSizes struct {
	Default int
	Max     int
}

// Server serves the search API.
type Server struct {
	search        Searcher
	health        HealthChecker
	pages         PageSizes
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, pages PageSizes, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pages.Default <= 0 {
		pages.Default = request.DefaultPageSize
	}
	if pages.Max <= 0 {
		pages.Max = request.MaxPageSize
	}
	s := &Server{search: search, health: health, pages: pages, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, msgInvalidQuery),
		sentinelHandler(domain.ErrRateLimited, http.StatusServiceUnavailable, msgModelThrottled),
		sentinelHandler(domain.ErrModelProviderError, http.StatusBadGateway, msgModelProvider),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Post("/api/search", s.SearchEmployees)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchEmployees handles POST /api/search.
func (s *Server) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	query, ok := body.Query.(string)
	if !ok || strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	req, err := request.New(query, body.Page, body.PageSize, s.pages.Default, s.pages.Max)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(&page))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}
