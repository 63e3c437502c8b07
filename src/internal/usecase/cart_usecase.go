package usecase

import (
	"context"
	"fmt"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/model/converter"
	"agent-portal-service/src/pkg/guard"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/phone"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type CartBackend interface {
	GetCart(ctx context.Context, token, userID string) (*entity.Cart, error)
	AddItem(ctx context.Context, token, userID, productID, mobileNumber string) error
	RemoveItem(ctx context.Context, token, cartItemID string) error
	Clear(ctx context.Context, token, userID string) error
}

type CatalogBackend interface {
	ListAgentProducts(ctx context.Context) ([]entity.Product, error)
}

type OrderSubmitBackend interface {
	Submit(ctx context.Context, token, userID string, expectedBalance, totalAmount decimal.Decimal) (string, []model.RowError, error)
}

type BalanceBackend interface {
	Balance(ctx context.Context, userID string) (*entity.WalletBalance, error)
}

type CartUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Cart     CartBackend
	Catalog  CatalogBackend
	Orders   OrderSubmitBackend
	Wallet   BalanceBackend
	Config   *viper.Viper
	Redis    redis.UniversalClient
	Guard    *guard.SlotGuard
}

func NewCartUseCase(
	logger log.Log,
	validate *validator.Validate,
	cart CartBackend,
	catalog CatalogBackend,
	orders OrderSubmitBackend,
	wallet BalanceBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
	slotGuard *guard.SlotGuard,
) *CartUseCase {
	return &CartUseCase{
		Log:      logger,
		Validate: validate,
		Cart:     cart,
		Catalog:  catalog,
		Orders:   orders,
		Wallet:   wallet,
		Config:   cfg,
		Redis:    redisClient,
		Guard:    slotGuard,
	}
}

// AddToCart mirrors (not replaces) the upstream validation: mobile number
// shape, affordability against the most recently fetched balance, and a
// duplicate-line confirmation. Only one add per user may be in flight; a
// second concurrent call is dropped without error. On success the cart is
// re-fetched from upstream instead of inserted locally.
func (c *CartUseCase) AddToCart(ctx context.Context, token string, request *model.AddCartItemRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("cart-usecase", errObj.Message, "AddToCart", utils.ConvertString(request))
		return result
	}

	if !phone.Valid(request.MobileNumber) {
		errObj := httpError.NewBadRequest()
		errObj.Message = "mobile number must be 10 digits with a valid carrier prefix"
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("cart:add:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		c.Log.Info("cart-usecase", "add dropped, another add in flight", "AddToCart", request.UserID)
		result.Data = &model.AddCartItemResponse{Dropped: true}
		return result
	}
	defer c.Guard.Release(guardKey)

	product, err := c.findProduct(ctx, request.ProductID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("product %s not found", request.ProductID)
		result.Error = errObj
		c.Log.Error("cart-usecase", errObj.Message, "AddToCart", utils.ConvertString(err))
		return result
	}

	cart, err := c.Cart.GetCart(ctx, token, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load cart"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "AddToCart", request.UserID)
		return result
	}

	if line := cart.FindLine(request.ProductID, request.MobileNumber); line != nil && !request.Confirm {
		errObj := httpError.NewConflict()
		errObj.Message = "this product is already in the cart for that number; confirm to add again"
		errObj.Data = map[string]string{"code": "DUPLICATE_CART_LINE", "cartItemId": line.ID}
		result.Error = errObj
		return result
	}

	balance, err := c.lastFetchedBalance(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load wallet balance"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "AddToCart", request.UserID)
		return result
	}

	if !CanAfford(cart.Total(), product.EffectivePrice(), balance) {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "insufficient balance, please top up"
		result.Error = errObj
		return result
	}

	if err := c.Cart.AddItem(ctx, token, request.UserID, request.ProductID, request.MobileNumber); err != nil {
		result.Error = asUsecaseError(err, "failed to add to cart")
		c.Log.Error("cart-usecase", err.Error(), "AddToCart", request.UserID)
		return result
	}

	refreshed, err := c.Cart.GetCart(ctx, token, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "item added but cart refresh failed"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "AddToCart-refresh", request.UserID)
		return result
	}

	result.Data = &model.AddCartItemResponse{
		Added: true,
		Cart:  converter.CartToResponse(refreshed),
	}
	return result
}

// ListProducts serves the catalog the main dashboard page renders.
func (c *CartUseCase) ListProducts(ctx context.Context) utils.Result {
	var result utils.Result
	products, err := c.Catalog.ListAgentProducts(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load products"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "ListProducts", "")
		return result
	}
	result.Data = products
	return result
}

func (c *CartUseCase) GetCart(ctx context.Context, token, userID string) utils.Result {
	var result utils.Result
	cart, err := c.Cart.GetCart(ctx, token, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load cart"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "GetCart", userID)
		return result
	}
	result.Data = converter.CartToResponse(cart)
	return result
}

// RemoveFromCart deletes upstream first, then reflects the deletion by
// re-fetching; nothing is removed optimistically.
func (c *CartUseCase) RemoveFromCart(ctx context.Context, token string, request *model.RemoveCartItemRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("cart:remove:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.AddCartItemResponse{Dropped: true}
		return result
	}
	defer c.Guard.Release(guardKey)

	if err := c.Cart.RemoveItem(ctx, token, request.CartItemID); err != nil {
		result.Error = asUsecaseError(err, "failed to remove cart item")
		c.Log.Error("cart-usecase", err.Error(), "RemoveFromCart", request.CartItemID)
		return result
	}

	return c.GetCart(ctx, token, request.UserID)
}

func (c *CartUseCase) ClearCart(ctx context.Context, token string, request *model.SubmitCartRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("cart:clear:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.AddCartItemResponse{Dropped: true}
		return result
	}
	defer c.Guard.Release(guardKey)

	if err := c.Cart.Clear(ctx, token, request.UserID); err != nil {
		result.Error = asUsecaseError(err, "failed to clear cart")
		c.Log.Error("cart-usecase", err.Error(), "ClearCart", request.UserID)
		return result
	}

	result.Data = &model.CartResponse{Items: []entity.CartItem{}, Total: decimal.Zero}
	return result
}

// SubmitCart re-validates the locally computed total against the most
// recently fetched balance before calling upstream, and refreshes cart and
// balance afterward regardless of outcome.
func (c *CartUseCase) SubmitCart(ctx context.Context, token string, request *model.SubmitCartRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("cart:submit:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.AddCartItemResponse{Dropped: true}
		return result
	}
	defer c.Guard.Release(guardKey)

	cart, err := c.Cart.GetCart(ctx, token, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load cart"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "SubmitCart", request.UserID)
		return result
	}
	if len(cart.Items) == 0 {
		errObj := httpError.NewBadRequest()
		errObj.Message = "cart is empty"
		result.Error = errObj
		return result
	}

	balance, err := c.lastFetchedBalance(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load wallet balance"
		result.Error = errObj
		c.Log.Error("cart-usecase", err.Error(), "SubmitCart", request.UserID)
		return result
	}

	total := cart.Total()
	if total.GreaterThan(balance) {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = "cart total exceeds available balance"
		result.Error = errObj
		return result
	}

	defer c.refreshAfterSubmit(ctx, token, request.UserID)

	orderID, rowErrors, err := c.Orders.Submit(ctx, token, request.UserID, balance, total)
	if err != nil {
		result.Error = asUsecaseError(err, "order submission failed")
		c.Log.Error("cart-usecase", err.Error(), "SubmitCart", request.UserID)
		return result
	}

	result.Data = &model.SubmitCartResponse{
		OrderID:   orderID,
		Balance:   balance,
		CartTotal: total,
		Errors:    rowErrors,
	}
	return result
}

// refreshAfterSubmit re-fetches cart and balance so the session view is
// consistent whether the submit succeeded or not. Failures here are logged,
// not surfaced.
func (c *CartUseCase) refreshAfterSubmit(ctx context.Context, token, userID string) {
	if _, err := c.Cart.GetCart(ctx, token, userID); err != nil {
		c.Log.Error("cart-usecase", err.Error(), "refreshAfterSubmit-cart", userID)
	}
	balance, err := c.Wallet.Balance(ctx, userID)
	if err != nil {
		c.Log.Error("cart-usecase", err.Error(), "refreshAfterSubmit-balance", userID)
		return
	}
	c.cacheBalance(ctx, userID, balance.Balance)
}

func (c *CartUseCase) findProduct(ctx context.Context, productID string) (*entity.Product, error) {
	products, err := c.Catalog.ListAgentProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s not in catalog", productID)
}

// lastFetchedBalance prefers the cached value the background refresher
// maintains, falling back to a direct fetch on a cold cache.
func (c *CartUseCase) lastFetchedBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	key := fmt.Sprintf(balanceKeyPattern, userID)
	if cached, err := c.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
		if value, err := decimal.NewFromString(cached); err == nil {
			return value, nil
		}
	}
	balance, err := c.Wallet.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	c.cacheBalance(ctx, userID, balance.Balance)
	return balance.Balance, nil
}

func (c *CartUseCase) cacheBalance(ctx context.Context, userID string, balance decimal.Decimal) {
	key := fmt.Sprintf(balanceKeyPattern, userID)
	if err := c.Redis.Set(ctx, key, balance.String(), balanceCacheTTL).Err(); err != nil {
		c.Log.Error("cart-usecase", err.Error(), "cacheBalance", userID)
	}
}

// CanAfford allows the add when the running total plus the candidate's
// effective price is at most the balance; exact equality passes.
func CanAfford(cartTotal, effectivePrice, balance decimal.Decimal) bool {
	return cartTotal.Add(effectivePrice).Cmp(balance) <= 0
}
