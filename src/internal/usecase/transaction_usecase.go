package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type TransactionBackend interface {
	Transactions(ctx context.Context, token, userID string) ([]entity.Transaction, error)
}

type TransactionUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Wallet   TransactionBackend
	Config   *viper.Viper
	Redis    redis.UniversalClient
}

func NewTransactionUseCase(
	logger log.Log,
	validate *validator.Validate,
	wallet TransactionBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
) *TransactionUseCase {
	return &TransactionUseCase{
		Log:      logger,
		Validate: validate,
		Wallet:   wallet,
		Config:   cfg,
		Redis:    redisClient,
	}
}

// List filters and paginates the wallet ledger. Stats are computed over the
// whole unfiltered collection on purpose: changing a filter must not change
// them. The page resets to 1 whenever the filter set differs from the one
// previously served to this user.
func (c *TransactionUseCase) List(ctx context.Context, token string, request *model.TransactionListRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("transaction-usecase", errObj.Message, "List", utils.ConvertString(request))
		return result
	}

	transactions, err := c.Wallet.Transactions(ctx, token, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load transactions"
		result.Error = errObj
		c.Log.Error("transaction-usecase", err.Error(), "List", request.UserID)
		return result
	}

	filter := model.TransactionFilter{
		Search:    request.Search,
		Type:      request.Type,
		Direction: request.Direction,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
	}

	stats := TransactionStatsOf(transactions)
	filtered := FilterTransactions(transactions, filter)

	page := c.resolvePage(ctx, request.UserID, filter, request.Page)
	pageItems, totalPages := PaginateTransactions(filtered, page, model.TransactionPageSize)

	result.Data = &model.TransactionListResponse{
		Items:      pageItems,
		Stats:      stats,
		Page:       page,
		PageSize:   model.TransactionPageSize,
		TotalPages: totalPages,
		Matched:    len(filtered),
	}
	return result
}

// resolvePage compares the filter signature with the previously served one
// and forces page 1 on any change.
func (c *TransactionUseCase) resolvePage(ctx context.Context, userID string, filter model.TransactionFilter, requested int) int {
	signature := FilterSignature(filter)
	key := fmt.Sprintf("TX:FILTER:%s", userID)
	previous, _ := c.Redis.Get(ctx, key).Result()
	page := ResolvePage(requested, previous, signature)
	if redisErr := c.Redis.Set(ctx, key, signature, 30*time.Minute).Err(); redisErr != nil {
		c.Log.Error("transaction-usecase", redisErr.Error(), "resolvePage", userID)
	}
	return page
}

// FilterTransactions applies search, type, direction and date range in
// sequence without mutating the source slice.
func FilterTransactions(transactions []entity.Transaction, filter model.TransactionFilter) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(transactions))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for i := range transactions {
		tx := transactions[i]
		if search != "" && !transactionMatches(&tx, search) {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Direction == model.DirectionCredit && !tx.IsCredit() {
			continue
		}
		if filter.Direction == model.DirectionDebit && tx.IsCredit() {
			continue
		}
		if !withinRange(tx.CreatedAt, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func transactionMatches(tx *entity.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(tx.Description), search) ||
		strings.Contains(strings.ToLower(tx.Reference), search) ||
		strings.Contains(strings.ToLower(tx.Type), search)
}

// TransactionStatsOf totals the whole collection: credits as a positive sum,
// debits as an absolute value.
func TransactionStatsOf(transactions []entity.Transaction) model.TransactionStats {
	stats := model.TransactionStats{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}
	for i := range transactions {
		stats.Count++
		if transactions[i].IsCredit() {
			stats.TotalCredits = stats.TotalCredits.Add(transactions[i].Amount)
		} else {
			stats.TotalDebits = stats.TotalDebits.Add(transactions[i].Amount.Abs())
		}
	}
	return stats
}

// PaginateTransactions slices one page out of the filtered collection. Page
// numbers are 1-based and clamped into the valid range.
func PaginateTransactions(transactions []entity.Transaction, page, size int) ([]entity.Transaction, int) {
	if size < 1 {
		size = model.TransactionPageSize
	}
	totalPages := (len(transactions) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	if start >= len(transactions) {
		return []entity.Transaction{}, totalPages
	}
	end := start + size
	if end > len(transactions) {
		end = len(transactions)
	}
	return transactions[start:end], totalPages
}

// FilterSignature canonicalizes a filter set for change detection.
func FilterSignature(filter model.TransactionFilter) string {
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(filter.Search)),
		filter.Type,
		filter.Direction,
		filter.StartDate,
		filter.EndDate,
	}, "|")
}

// ResolvePage returns the requested page, or 1 when the filter signature
// differs from the previously observed one.
func ResolvePage(requested int, previousSignature, signature string) int {
	if requested < 1 {
		return 1
	}
	if previousSignature != signature {
		return 1
	}
	return requested
}
