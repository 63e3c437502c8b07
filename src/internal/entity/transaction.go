package entity

import "github.com/shopspring/decimal"

// Transaction is a wallet ledger line. Amount is signed: positive is a
// credit, negative a debit. Type is a free-form tag from upstream.
type Transaction struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	CreatedAt    string          `json:"createdAt"`
}

func (t *Transaction) IsCredit() bool {
	return t.Amount.Sign() >= 0
}
