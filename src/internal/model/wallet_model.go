package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type BalanceRequest struct {
	UserID string `json:"-" validate:"required"`
}

type BalanceResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	LoanBalance      decimal.Decimal `json:"loanBalance"`
	AdminLoanBalance decimal.Decimal `json:"adminLoanBalance"`
	HasLoan          bool            `json:"hasLoan"`
}

type TopupInitializeRequest struct {
	UserID string          `json:"-" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Email  string          `json:"email" validate:"required,email"`
}

type TopupVerifyRequest struct {
	UserID    string `json:"-" validate:"required"`
	Reference string `json:"reference" validate:"required"`
}

type VerifySMSRequest struct {
	UserID    string `json:"-" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	Code      string `json:"code" validate:"required"`
}

// TopupResult wraps the upstream payment-provider payload without reshaping
// it; Pending marks a payment awaiting confirmation, which is informational
// rather than a failure.
type TopupResult struct {
	Pending bool            `json:"pending"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
