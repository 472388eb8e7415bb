package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
	"github.com/cypherlabdev/cashout-simulator-service/internal/service"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/scenario"
)

// maxBodyBytes bounds a betslip request body
const maxBodyBytes = 1 << 20

// EvaluationHandler handles HTTP requests for betslip evaluations
type EvaluationHandler struct {
	service *service.EvaluationService
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewEvaluationHandler creates a new evaluation HTTP handler. A nil limiter disables throttling.
func NewEvaluationHandler(service *service.EvaluationService, limiter *rate.Limiter, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		limiter: limiter,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *EvaluationHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/evaluations - Evaluate a betslip
	mux.HandleFunc("/api/v1/evaluations", h.handleCreateEvaluation)

	// GET /api/v1/evaluations/:id - Get a cached evaluation
	mux.HandleFunc("/api/v1/evaluations/", h.handleGetEvaluation)

	// GET /api/v1/bet-types - List supported bet types
	mux.HandleFunc("/api/v1/bet-types", h.handleBetTypes)
}

// handleCreateEvaluation handles POST /api/v1/evaluations[?sort=total]
func (h *EvaluationHandler) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Enumeration is CPU bound; shed load before decoding
	if h.limiter != nil && !h.limiter.Allow() {
		h.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req models.BetslipRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	eval, err := h.service.Evaluate(r.Context(), &req)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("evaluation failed")
			h.errorResponse(w, status, "evaluation failed")
			return
		}
		h.logger.Debug().Err(err).Int("status", status).Msg("rejected betslip")
		h.errorResponse(w, status, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, withSorting(eval, r))
}

// handleGetEvaluation handles GET /api/v1/evaluations/:id[?sort=total]
func (h *EvaluationHandler) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idText := strings.TrimPrefix(r.URL.Path, "/api/v1/evaluations/")
	if idText == "" || strings.Contains(idText, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/evaluations/:id")
		return
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "id must be a UUID")
		return
	}

	eval, err := h.service.GetEvaluation(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrEvaluationNotFound) {
			h.errorResponse(w, http.StatusNotFound, "evaluation not found")
			return
		}
		h.logger.Error().
			Err(err).
			Str("evaluation_id", id.String()).
			Msg("failed to retrieve evaluation")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve evaluation")
		return
	}

	h.jsonResponse(w, http.StatusOK, withSorting(eval, r))
}

// handleBetTypes handles GET /api/v1/bet-types
func (h *EvaluationHandler) handleBetTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	types := h.service.BetTypes()
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"count":     len(types),
		"bet_types": types,
	})
}

// statusForError maps service and engine errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidBetslip),
		errors.Is(err, scenario.ErrUnknownBetType),
		errors.Is(err, scenario.ErrNoLegs):
		return http.StatusBadRequest
	case errors.Is(err, scenario.ErrTooManyUnknownLegs),
		errors.Is(err, scenario.ErrWorkBudgetExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// withSorting returns a copy ordered by total return when ?sort=total is set.
// Cached evaluations are shared and never reordered in place.
func withSorting(eval *models.Evaluation, r *http.Request) *models.Evaluation {
	if r.URL.Query().Get("sort") != "total" {
		return eval
	}
	sorted := *eval
	sorted.Scenarios = eval.SortedScenarios()
	return &sorted
}

// jsonResponse writes a JSON response
func (h *EvaluationHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *EvaluationHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
