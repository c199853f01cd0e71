/*
handlers.go - HTTP API handlers for the calculator engine

PURPOSE:
  Exposes the calculator facade via REST. Handles HTTP
  request/response, JSON serialization, and delegates to calc.

ENDPOINTS:
  POST   /api/calculations   Compute one operation
  GET    /api/calculations   Current history
  DELETE /api/calculations   Clear history
  POST   /api/undo           Undo last action
  POST   /api/redo           Redo last undone action
  POST   /api/save           Persist history explicitly
  POST   /api/load           Reload history from the archive
  GET    /api/operations     Supported operation names

ERROR HANDLING:
  - 400: Unparsable request body, bad operand, unknown operation name
  - 409: Nothing to undo / nothing to redo
  - 422: Mathematically undefined result (divide by zero, ...)
  - 500: Archive failures
  Observer failures do NOT fail the request: the mutation committed,
  so the response is 200 with a warning field.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/warp/calc-engine/calc"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the facade all endpoints delegate to.
type Handler struct {
	Calc *calc.Calculator
}

// NewHandler creates a handler around the calculator.
func NewHandler(c *calc.Calculator) *Handler {
	return &Handler{Calc: c}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// Compute handles POST /api/calculations.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Calc.ParseOperand(req.OperandA)
	if err != nil {
		respondCalcError(w, err)
		return
	}
	b, err := h.Calc.ParseOperand(req.OperandB)
	if err != nil {
		respondCalcError(w, err)
		return
	}

	record, err := h.Calc.Compute(r.Context(), req.Operation, a, b)
	var obsErr *calc.AggregateObserverError
	if err != nil && !errors.As(err, &obsErr) {
		respondCalcError(w, err)
		return
	}

	resp := ComputeResponse{Calculation: toCalculationDTO(record)}
	if obsErr != nil {
		resp.Warning = obsErr.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetHistory handles GET /api/calculations.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	records := h.Calc.History()
	respondJSON(w, http.StatusOK, HistoryResponse{
		Calculations: toCalculationDTOs(records),
		Count:        len(records),
	})
}

// ClearHistory handles DELETE /api/calculations.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	err := h.Calc.ClearHistory(r.Context())
	h.respondStatus(w, "cleared", err)
}

// =============================================================================
// UNDO / REDO HANDLERS
// =============================================================================

// Undo handles POST /api/undo.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := h.Calc.Undo(r.Context()); err != nil {
		respondCalcError(w, err)
		return
	}
	h.respondStatus(w, "undone", nil)
}

// Redo handles POST /api/redo.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	if err := h.Calc.Redo(r.Context()); err != nil {
		respondCalcError(w, err)
		return
	}
	h.respondStatus(w, "redone", nil)
}

// =============================================================================
// PERSISTENCE HANDLERS
// =============================================================================

// Save handles POST /api/save.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.Calc.Save(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondStatus(w, "saved", nil)
}

// Load handles POST /api/load.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.Calc.Load(r.Context()); err != nil {
		respondCalcError(w, err)
		return
	}
	h.respondStatus(w, "loaded", nil)
}

// ListOperations handles GET /api/operations.
func (h *Handler) ListOperations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, calc.NewRegistry().Names())
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// respondStatus reports a committed mutation. An observer error is a
// warning, anything else from this path would be a programming error
// upstream and is treated the same way.
func (h *Handler) respondStatus(w http.ResponseWriter, status string, err error) {
	resp := StatusResponse{Status: status, Count: len(h.Calc.History())}
	if err != nil {
		resp.Warning = err.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondCalcError(w http.ResponseWriter, err error) {
	switch {
	case calc.IsDomainError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case calc.IsNoOp(err):
		respondError(w, http.StatusConflict, err.Error())
	case calc.IsClientError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}
