package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/pkg/guard"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type TopupBackend interface {
	BalanceBackend
	TopupInitialize(ctx context.Context, token string, req *model.TopupInitializeRequest) (json.RawMessage, error)
	TopupVerify(ctx context.Context, token, userID, reference string) (json.RawMessage, error)
	VerifySMS(ctx context.Context, token, userID, reference, code string) (json.RawMessage, error)
}

type WalletUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Wallet   TopupBackend
	Config   *viper.Viper
	Redis    redis.UniversalClient
	Guard    *guard.SlotGuard
}

func NewWalletUseCase(
	logger log.Log,
	validate *validator.Validate,
	wallet TopupBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
	slotGuard *guard.SlotGuard,
) *WalletUseCase {
	return &WalletUseCase{
		Log:      logger,
		Validate: validate,
		Wallet:   wallet,
		Config:   cfg,
		Redis:    redisClient,
		Guard:    slotGuard,
	}
}

// GetBalance fetches upstream and refreshes the cached balance the cart
// pre-checks read.
func (c *WalletUseCase) GetBalance(ctx context.Context, request *model.BalanceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	balance, err := c.Wallet.Balance(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load wallet balance"
		result.Error = errObj
		c.Log.Error("wallet-usecase", err.Error(), "GetBalance", request.UserID)
		return result
	}

	c.CacheBalance(ctx, request.UserID, balance.Balance.String())

	result.Data = &model.BalanceResponse{
		Balance:          balance.Balance,
		LoanBalance:      balance.LoanBalance,
		AdminLoanBalance: balance.AdminLoanBalance,
		HasLoan:          balance.HasLoan,
	}
	return result
}

// RefreshBalance is the background variant used by the periodic refresher;
// it only updates the cache.
func (c *WalletUseCase) RefreshBalance(ctx context.Context, userID string) error {
	balance, err := c.Wallet.Balance(ctx, userID)
	if err != nil {
		return err
	}
	c.CacheBalance(ctx, userID, balance.Balance.String())
	return nil
}

func (c *WalletUseCase) CacheBalance(ctx context.Context, userID, balance string) {
	key := fmt.Sprintf(balanceKeyPattern, userID)
	if err := c.Redis.Set(ctx, key, balance, balanceCacheTTL).Err(); err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "CacheBalance", userID)
	}
}

func (c *WalletUseCase) TopupInitialize(ctx context.Context, token string, request *model.TopupInitializeRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("topup:init:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.TopupResult{}
		return result
	}
	defer c.Guard.Release(guardKey)

	payload, err := c.Wallet.TopupInitialize(ctx, token, request)
	if err != nil {
		result.Error = asUsecaseError(err, "failed to initialize top-up")
		c.Log.Error("wallet-usecase", err.Error(), "TopupInitialize", request.UserID)
		return result
	}

	result.Data = &model.TopupResult{Payload: payload}
	return result
}

// TopupVerify surfaces a not-yet-confirmed payment as informational
// ("pending"), distinct from a hard failure.
func (c *WalletUseCase) TopupVerify(ctx context.Context, token string, request *model.TopupVerifyRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	payload, err := c.Wallet.TopupVerify(ctx, token, request.UserID, request.Reference)
	if err != nil {
		result.Error = asUsecaseError(err, "failed to verify top-up")
		c.Log.Error("wallet-usecase", err.Error(), "TopupVerify", request.Reference)
		return result
	}

	result.Data = &model.TopupResult{
		Pending: paymentPending(payload),
		Payload: payload,
	}

	// a confirmed top-up changes the balance; refresh the cache
	if err := c.RefreshBalance(ctx, request.UserID); err != nil {
		c.Log.Error("wallet-usecase", err.Error(), "TopupVerify-refresh", request.UserID)
	}
	return result
}

func (c *WalletUseCase) VerifySMS(ctx context.Context, token string, request *model.VerifySMSRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	payload, err := c.Wallet.VerifySMS(ctx, token, request.UserID, request.Reference, request.Code)
	if err != nil {
		result.Error = asUsecaseError(err, "failed to verify code")
		c.Log.Error("wallet-usecase", err.Error(), "VerifySMS", request.Reference)
		return result
	}

	result.Data = &model.TopupResult{
		Pending: paymentPending(payload),
		Payload: payload,
	}
	return result
}

func paymentPending(payload json.RawMessage) bool {
	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return false
	}
	return parsed.Status == "pending"
}
