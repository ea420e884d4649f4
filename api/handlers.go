/*
handlers.go - HTTP API handlers for the savings ledger

PURPOSE:
  Exposes the goal and budget services via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Goals:
    GET    /api/goals                    List caller's goals
    POST   /api/goals                    Create goal
    GET    /api/goals/{id}               Goal detail
    PATCH  /api/goals/{id}/contribution  Add a contribution
    DELETE /api/goals/{id}               Delete goal

  Budgets:
    GET    /api/budgets                  List caller's budgets
    POST   /api/budgets                  Create budget
    GET    /api/budgets/{id}             Budget detail
    PATCH  /api/budgets/{id}/spend       Record spending
    DELETE /api/budgets/{id}             Delete budget

CALLER IDENTITY:
  The owner id arrives in the X-Owner-ID header, already authenticated
  upstream. This layer performs no authentication; the services enforce
  ownership. A missing header fails the identifier validation (400).

ERROR HANDLING:
  Domain errors map to status codes by kind:
  - 400: validation (input shape or business rule)
  - 403: ownership violation
  - 404: missing record
  - 409: version conflict after retries exhausted
  - 500: everything else (store failures included)

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
  - finance/errors.go: The error kinds mapped here
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/finance"
	"github.com/warp/savings-ledger/goals"
)

// ownerHeader carries the pre-authenticated caller identity.
const ownerHeader = "X-Owner-ID"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Goals   *goals.Service
	Budgets *budgets.Service
}

// NewHandler creates a new handler over the two entity services.
func NewHandler(goalSvc *goals.Service, budgetSvc *budgets.Service) *Handler {
	return &Handler{Goals: goalSvc, Budgets: budgetSvc}
}

// =============================================================================
// GOAL HANDLERS
// =============================================================================

// CreateGoal creates a new savings goal.
// POST /api/goals
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	goal, err := h.Goals.CreateGoal(r.Context(), ownerID(r), req.Name, req.TargetAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalDTO(goal))
}

// ListGoals returns the caller's goals.
// GET /api/goals
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.Goals.GoalsByOwner(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalDTOs(list))
}

// GetGoal returns a single goal.
// GET /api/goals/{id}
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.Goals.Goal(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalDTO(goal))
}

// AddContribution applies a contribution to a goal.
// PATCH /api/goals/{id}/contribution
func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	var req ContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	goal, err := h.Goals.AddContribution(r.Context(), ownerID(r), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalDTO(goal))
}

// DeleteGoal removes a goal.
// DELETE /api/goals/{id}
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.Goals.DeleteGoal(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BUDGET HANDLERS
// =============================================================================

// CreateBudget creates a new budget.
// POST /api/budgets
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	budget, err := h.Budgets.CreateBudget(r.Context(), ownerID(r), req.Category, req.LimitAmount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetDTO(budget))
}

// ListBudgets returns the caller's budgets.
// GET /api/budgets
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := h.Budgets.BudgetsByOwner(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetDTOs(list))
}

// GetBudget returns a single budget.
// GET /api/budgets/{id}
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := h.Budgets.Budget(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetDTO(budget))
}

// RecordSpend records spending against a budget.
// PATCH /api/budgets/{id}/spend
func (h *Handler) RecordSpend(w http.ResponseWriter, r *http.Request) {
	var req SpendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	budget, err := h.Budgets.RecordSpend(r.Context(), ownerID(r), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBudgetDTO(budget))
}

// DeleteBudget removes a budget.
// DELETE /api/budgets/{id}
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := h.Budgets.DeleteBudget(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func ownerID(r *http.Request) string {
	return r.Header.Get(ownerHeader)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the finance error kinds to status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case finance.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case finance.IsAuthorization(err):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	case finance.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, finance.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "Conflicting update, please retry", nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
