package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/guard"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockCartBackend struct {
	mock.Mock
}

func (m *MockCartBackend) GetCart(ctx context.Context, token, userID string) (*entity.Cart, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Cart), args.Error(1)
}

func (m *MockCartBackend) AddItem(ctx context.Context, token, userID, productID, mobileNumber string) error {
	args := m.Called(ctx, token, userID, productID, mobileNumber)
	return args.Error(0)
}

func (m *MockCartBackend) RemoveItem(ctx context.Context, token, cartItemID string) error {
	args := m.Called(ctx, token, cartItemID)
	return args.Error(0)
}

func (m *MockCartBackend) Clear(ctx context.Context, token, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

type MockCatalogBackend struct {
	mock.Mock
}

func (m *MockCatalogBackend) ListAgentProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

type MockOrderSubmitBackend struct {
	mock.Mock
}

func (m *MockOrderSubmitBackend) Submit(ctx context.Context, token, userID string, expectedBalance, totalAmount decimal.Decimal) (string, []model.RowError, error) {
	args := m.Called(ctx, token, userID, expectedBalance, totalAmount)
	var rowErrors []model.RowError
	if args.Get(1) != nil {
		rowErrors = args.Get(1).([]model.RowError)
	}
	return args.String(0), rowErrors, args.Error(2)
}

type MockBalanceBackend struct {
	mock.Mock
}

func (m *MockBalanceBackend) Balance(ctx context.Context, userID string) (*entity.WalletBalance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WalletBalance), args.Error(1)
}

type cartFixture struct {
	useCase *usecase.CartUseCase
	cart    *MockCartBackend
	catalog *MockCatalogBackend
	orders  *MockOrderSubmitBackend
	wallet  *MockBalanceBackend
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	v := viper.New()
	log.InitLogger(v)

	f := &cartFixture{
		cart:    new(MockCartBackend),
		catalog: new(MockCatalogBackend),
		orders:  new(MockOrderSubmitBackend),
		wallet:  new(MockBalanceBackend),
	}
	// points at nothing on purpose; cache misses fall through to the mocks
	offlineRedis := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6390"})
	f.useCase = usecase.NewCartUseCase(
		log.GetLogger(),
		validator.New(),
		f.cart,
		f.catalog,
		f.orders,
		f.wallet,
		v,
		offlineRedis,
		guard.New(),
	)
	return f
}

func catalogWith(price int64) []entity.Product {
	return []entity.Product{
		{
			ID:          "prod-1",
			Name:        "MTN 10GB",
			Description: "10GB data bundle",
			Price:       decimal.NewFromInt(price),
		},
	}
}

func TestCanAfford(t *testing.T) {
	ten := decimal.NewFromInt(10)
	five := decimal.NewFromInt(5)

	assert.True(t, usecase.CanAfford(five, five, ten), "exact equality passes")
	assert.True(t, usecase.CanAfford(decimal.Zero, five, ten))
	assert.False(t, usecase.CanAfford(five, decimal.NewFromInt(6), ten))
}

func TestAddToCartRejectsInvalidMobileNumber(t *testing.T) {
	f := newCartFixture(t)

	result := f.useCase.AddToCart(context.Background(), "token", &model.AddCartItemRequest{
		UserID:       "user-1",
		ProductID:    "prod-1",
		MobileNumber: "0231234567",
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 400, commonErr.Code)

	// the rejection happens before any upstream call
	f.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.catalog.AssertNotCalled(t, "ListAgentProducts", mock.Anything)
}

func TestAddToCartRejectsUnaffordableAdd(t *testing.T) {
	f := newCartFixture(t)
	f.catalog.On("ListAgentProducts", mock.Anything).Return(catalogWith(10), nil)
	f.cart.On("GetCart", mock.Anything, "token", "user-1").Return(&entity.Cart{}, nil)
	f.wallet.On("Balance", mock.Anything, "user-1").Return(&entity.WalletBalance{
		Balance: decimal.NewFromInt(5),
	}, nil)

	result := f.useCase.AddToCart(context.Background(), "token", &model.AddCartItemRequest{
		UserID:       "user-1",
		ProductID:    "prod-1",
		MobileNumber: "0241234567",
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 422, commonErr.Code)
	f.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToCartDuplicateNeedsConfirmation(t *testing.T) {
	f := newCartFixture(t)
	f.catalog.On("ListAgentProducts", mock.Anything).Return(catalogWith(10), nil)
	f.cart.On("GetCart", mock.Anything, "token", "user-1").Return(&entity.Cart{
		Items: []entity.CartItem{
			{
				ID:           "line-1",
				MobileNumber: "0241234567",
				Product:      catalogWith(10)[0],
			},
		},
	}, nil)

	result := f.useCase.AddToCart(context.Background(), "token", &model.AddCartItemRequest{
		UserID:       "user-1",
		ProductID:    "prod-1",
		MobileNumber: "0241234567",
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	f.cart.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToCartDuplicateConfirmedGoesThrough(t *testing.T) {
	f := newCartFixture(t)
	existing := entity.Cart{
		Items: []entity.CartItem{
			{
				ID:           "line-1",
				MobileNumber: "0241234567",
				Product:      catalogWith(10)[0],
			},
		},
	}
	f.catalog.On("ListAgentProducts", mock.Anything).Return(catalogWith(10), nil)
	f.cart.On("GetCart", mock.Anything, "token", "user-1").Return(&existing, nil)
	f.wallet.On("Balance", mock.Anything, "user-1").Return(&entity.WalletBalance{
		Balance: decimal.NewFromInt(100),
	}, nil)
	f.cart.On("AddItem", mock.Anything, "token", "user-1", "prod-1", "0241234567").Return(nil)

	result := f.useCase.AddToCart(context.Background(), "token", &model.AddCartItemRequest{
		UserID:       "user-1",
		ProductID:    "prod-1",
		MobileNumber: "0241234567",
		Confirm:      true,
	})

	require.NoError(t, result.Error)
	response, ok := result.Data.(*model.AddCartItemResponse)
	require.True(t, ok)
	assert.True(t, response.Added)
	f.cart.AssertCalled(t, "AddItem", mock.Anything, "token", "user-1", "prod-1", "0241234567")
}

func TestSubmitCartRejectsEmptyCart(t *testing.T) {
	f := newCartFixture(t)
	f.cart.On("GetCart", mock.Anything, "token", "user-1").Return(&entity.Cart{}, nil)

	result := f.useCase.SubmitCart(context.Background(), "token", &model.SubmitCartRequest{UserID: "user-1"})

	require.Error(t, result.Error)
	f.orders.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartTotalHonorsPromoPrice(t *testing.T) {
	promo := decimal.NewFromInt(8)
	cart := entity.Cart{
		Items: []entity.CartItem{
			{Product: entity.Product{Price: decimal.NewFromInt(10), PromoPrice: &promo, OnPromo: true}},
			{Product: entity.Product{Price: decimal.NewFromInt(5)}},
		},
	}
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(13)), fmt.Sprintf("got %s", cart.Total()))
}

func TestEffectivePriceIgnoresUnflaggedPromo(t *testing.T) {
	promo := decimal.NewFromInt(8)
	withFlag := entity.Product{Price: decimal.NewFromInt(10), PromoPrice: &promo, OnPromo: true}
	withoutFlag := entity.Product{Price: decimal.NewFromInt(10), PromoPrice: &promo}
	flagNoPrice := entity.Product{Price: decimal.NewFromInt(10), OnPromo: true}

	assert.True(t, withFlag.EffectivePrice().Equal(promo))
	assert.True(t, withoutFlag.EffectivePrice().Equal(decimal.NewFromInt(10)))
	assert.True(t, flagNoPrice.EffectivePrice().Equal(decimal.NewFromInt(10)))
}
