/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the calc
  domain types. Decimal values cross the wire as strings so clients
  never lose precision to JSON floats.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/calc-engine/calc"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ComputeRequest asks for one calculation.
type ComputeRequest struct {
	Operation string `json:"operation"`
	OperandA  string `json:"operand_a"`
	OperandB  string `json:"operand_b"`
}

// CalculationDTO represents one history record in API responses.
type CalculationDTO struct {
	Operation string    `json:"operation"`
	OperandA  string    `json:"operand_a"`
	OperandB  string    `json:"operand_b"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// ComputeResponse returns the new record. Warning carries an observer
// failure message when the calculation committed but a side effect
// (auto-save, audit log) did not.
type ComputeResponse struct {
	Calculation CalculationDTO `json:"calculation"`
	Warning     string         `json:"warning,omitempty"`
}

// HistoryResponse lists the current history, oldest first.
type HistoryResponse struct {
	Calculations []CalculationDTO `json:"calculations"`
	Count        int              `json:"count"`
}

// StatusResponse reports an action outcome plus the resulting history
// length (used by undo/redo/clear/save/load).
type StatusResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Warning string `json:"warning,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toCalculationDTO(c calc.Calculation) CalculationDTO {
	return CalculationDTO{
		Operation: c.Op.DisplayName(),
		OperandA:  c.OperandA.String(),
		OperandB:  c.OperandB.String(),
		Result:    c.Result.String(),
		Timestamp: c.Timestamp,
	}
}

func toCalculationDTOs(records []calc.Calculation) []CalculationDTO {
	out := make([]CalculationDTO, len(records))
	for i, c := range records {
		out[i] = toCalculationDTO(c)
	}
	return out
}
