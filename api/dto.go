/*
dto.go - Request/response data structures for the HTTP API

Amounts travel as JSON decimal strings (shopspring's default
marshalling); unquoted numbers are accepted on input. Keeping decimals
textual at the boundary avoids the float round-trip class of bugs.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/goals"
)

// =============================================================================
// REQUESTS
// =============================================================================

type CreateGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

type ContributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CreateBudgetRequest struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

type SpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type GoalDTO struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	IsComplete      bool            `json:"is_complete"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func toGoalDTO(g *goals.Goal) GoalDTO {
	return GoalDTO{
		ID:              string(g.ID),
		OwnerID:         string(g.OwnerID),
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		ProgressPercent: g.ProgressPercent,
		IsComplete:      g.IsComplete,
		RemainingAmount: g.Remaining(),
		CreatedAt:       g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       g.UpdatedAt.Format(time.RFC3339),
	}
}

func toGoalDTOs(list []goals.Goal) []GoalDTO {
	dtos := make([]GoalDTO, len(list))
	for i := range list {
		dtos[i] = toGoalDTO(&list[i])
	}
	return dtos
}

type BudgetDTO struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Category        string          `json:"category"`
	LimitAmount     decimal.Decimal `json:"limit_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	IsExceeded      bool            `json:"is_exceeded"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func toBudgetDTO(b *budgets.Budget) BudgetDTO {
	return BudgetDTO{
		ID:              string(b.ID),
		OwnerID:         string(b.OwnerID),
		Category:        b.Category,
		LimitAmount:     b.LimitAmount,
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.Remaining(),
		IsExceeded:      b.IsExceeded(),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBudgetDTOs(list []budgets.Budget) []BudgetDTO {
	dtos := make([]BudgetDTO, len(list))
	for i := range list {
		dtos[i] = toBudgetDTO(&list[i])
	}
	return dtos
}

// ErrorResponse is the JSON shape of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
