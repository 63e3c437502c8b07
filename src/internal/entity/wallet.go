package entity

import "github.com/shopspring/decimal"

// WalletBalance mirrors the upstream loan/balance payload.
type WalletBalance struct {
	Balance          decimal.Decimal `json:"balance"`
	LoanBalance      decimal.Decimal `json:"loanBalance"`
	AdminLoanBalance decimal.Decimal `json:"adminLoanBalance"`
	HasLoan          bool            `json:"hasLoan"`
}
