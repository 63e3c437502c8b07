package model

import (
	"agent-portal-service/src/internal/entity"

	"github.com/shopspring/decimal"
)

const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"

	TransactionPageSize = 20
)

type TransactionListRequest struct {
	UserID    string `json:"-" validate:"required"`
	Search    string `json:"search"`
	Type      string `json:"type"`
	Direction string `json:"direction" validate:"omitempty,oneof=credit debit"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Page      int    `json:"page"`
}

type TransactionFilter struct {
	Search    string
	Type      string
	Direction string
	StartDate string
	EndDate   string
}

// TransactionStats is always computed over the entire unfiltered collection,
// unlike the order history stats. Observed behavior, preserved.
type TransactionStats struct {
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	Count        int             `json:"count"`
}

type TransactionListResponse struct {
	Items      []entity.Transaction `json:"items"`
	Stats      TransactionStats     `json:"stats"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
	Matched    int                  `json:"matched"`
}
