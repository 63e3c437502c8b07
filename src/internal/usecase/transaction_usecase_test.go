package usecase_test

import (
	"fmt"
	"testing"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []entity.Transaction {
	return []entity.Transaction{
		{ID: "tx-1", Amount: decimal.NewFromInt(100), Type: "deposit", Description: "Wallet top-up", Reference: "ref-100", CreatedAt: "2024-02-01T09:00:00"},
		{ID: "tx-2", Amount: decimal.NewFromInt(-40), Type: "purchase", Description: "Bundle purchase", Reference: "ref-101", CreatedAt: "2024-02-02T09:00:00"},
		{ID: "tx-3", Amount: decimal.NewFromInt(-10), Type: "purchase", Description: "Bundle purchase", Reference: "ref-102", CreatedAt: "2024-02-03T09:00:00"},
		{ID: "tx-4", Amount: decimal.NewFromInt(25), Type: "refund", Description: "Order refund", Reference: "ref-103", CreatedAt: "2024-02-04T09:00:00"},
	}
}

func TestTransactionStatsIgnoreFilters(t *testing.T) {
	transactions := sampleTransactions()

	all := usecase.TransactionStatsOf(transactions)
	assert.Equal(t, 4, all.Count)
	assert.True(t, all.TotalCredits.Equal(decimal.NewFromInt(125)))
	assert.True(t, all.TotalDebits.Equal(decimal.NewFromInt(50)))

	// filtering the collection does not feed back into the stats: they are
	// recomputed from the unfiltered source on every request
	filtered := usecase.FilterTransactions(transactions, model.TransactionFilter{Type: "purchase"})
	require.Len(t, filtered, 2)
	again := usecase.TransactionStatsOf(transactions)
	assert.Equal(t, all, again)
}

func TestFilterTransactionsByDirection(t *testing.T) {
	transactions := sampleTransactions()

	credits := usecase.FilterTransactions(transactions, model.TransactionFilter{Direction: model.DirectionCredit})
	require.Len(t, credits, 2)
	assert.Equal(t, "tx-1", credits[0].ID)
	assert.Equal(t, "tx-4", credits[1].ID)

	debits := usecase.FilterTransactions(transactions, model.TransactionFilter{Direction: model.DirectionDebit})
	require.Len(t, debits, 2)
	assert.Equal(t, "tx-2", debits[0].ID)
}

func TestFilterTransactionsBySearch(t *testing.T) {
	transactions := sampleTransactions()

	byRef := usecase.FilterTransactions(transactions, model.TransactionFilter{Search: "ref-101"})
	require.Len(t, byRef, 1)
	assert.Equal(t, "tx-2", byRef[0].ID)

	byDescription := usecase.FilterTransactions(transactions, model.TransactionFilter{Search: "refund"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "tx-4", byDescription[0].ID)
}

func TestZeroAmountCountsAsCredit(t *testing.T) {
	tx := entity.Transaction{Amount: decimal.Zero}
	assert.True(t, tx.IsCredit())
}

func TestPaginateTransactions(t *testing.T) {
	transactions := make([]entity.Transaction, 0, 45)
	for i := 0; i < 45; i++ {
		transactions = append(transactions, entity.Transaction{ID: fmt.Sprintf("tx-%d", i)})
	}

	page1, totalPages := usecase.PaginateTransactions(transactions, 1, model.TransactionPageSize)
	assert.Equal(t, 3, totalPages)
	require.Len(t, page1, 20)
	assert.Equal(t, "tx-0", page1[0].ID)

	page3, _ := usecase.PaginateTransactions(transactions, 3, model.TransactionPageSize)
	require.Len(t, page3, 5)
	assert.Equal(t, "tx-40", page3[0].ID)

	// out-of-range pages clamp instead of returning nothing
	clamped, _ := usecase.PaginateTransactions(transactions, 9, model.TransactionPageSize)
	assert.Len(t, clamped, 5)

	empty, totalPages := usecase.PaginateTransactions(nil, 1, model.TransactionPageSize)
	assert.Equal(t, 1, totalPages)
	assert.Empty(t, empty)
}

func TestResolvePageResetsOnFilterChange(t *testing.T) {
	oldSig := usecase.FilterSignature(model.TransactionFilter{Search: "bundle"})
	newSig := usecase.FilterSignature(model.TransactionFilter{Search: "bundle", Type: "purchase"})

	assert.Equal(t, 3, usecase.ResolvePage(3, oldSig, oldSig))
	assert.Equal(t, 1, usecase.ResolvePage(3, oldSig, newSig))
	assert.Equal(t, 1, usecase.ResolvePage(0, oldSig, oldSig))
}

func TestFilterSignatureNormalizesSearch(t *testing.T) {
	a := usecase.FilterSignature(model.TransactionFilter{Search: "  Bundle "})
	b := usecase.FilterSignature(model.TransactionFilter{Search: "bundle"})
	assert.Equal(t, a, b)
}
