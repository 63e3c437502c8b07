package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/model/converter"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderHistoryBackend struct {
	mock.Mock
}

func (m *MockOrderHistoryBackend) ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func sampleOrders() []entity.Order {
	return []entity.Order{
		{
			ID:          "ord-1",
			TotalAmount: decimal.NewFromInt(15),
			CreatedAt:   "2024-01-01T10:00:00",
			Items: []entity.OrderItem{
				{
					ID:           "item-1",
					Status:       entity.OrderItemCompleted,
					MobileNumber: "0241234567",
					Product: entity.Product{
						Name:        "MTN 10GB",
						Description: "10GB data bundle",
						Price:       decimal.NewFromInt(10),
					},
				},
				{
					ID:           "item-2",
					Status:       entity.OrderItemPending,
					MobileNumber: "0551234567",
					Product: entity.Product{
						Name:        "MTN 5GB",
						Description: "5GB data bundle",
						Price:       decimal.NewFromInt(5),
					},
				},
			},
		},
		{
			ID:          "ord-2",
			TotalAmount: decimal.NewFromInt(20),
			CreatedAt:   "2024-01-02T00:00:00",
			Items: []entity.OrderItem{
				{
					ID:           "item-3",
					Status:       entity.OrderItemCancelled,
					MobileNumber: "0201234567",
					Product: entity.Product{
						Name:        "Telecel Unlimited",
						Description: "Unlimited weekly",
						Price:       decimal.NewFromInt(20),
					},
				},
			},
		},
	}
}

func TestOrdersToHistoryItemsKeepsParentFields(t *testing.T) {
	orders := sampleOrders()

	items := converter.OrdersToHistoryItems(orders)
	require.Len(t, items, 3)

	assert.Equal(t, "ord-1", items[0].OrderID)
	assert.Equal(t, "2024-01-01T10:00:00", items[0].OrderDate)
	assert.True(t, items[0].OrderTotal.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "ord-1", items[1].OrderID)
	assert.Equal(t, "ord-2", items[2].OrderID)

	// source orders stay untouched
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "item-1", orders[0].Items[0].ID)
}

func TestOrdersToHistoryItemsUsesEffectivePrice(t *testing.T) {
	promo := decimal.NewFromInt(8)
	orders := []entity.Order{
		{
			ID: "ord-1",
			Items: []entity.OrderItem{
				{
					ID: "item-1",
					Product: entity.Product{
						Price:      decimal.NewFromInt(10),
						PromoPrice: &promo,
						OnPromo:    true,
					},
				},
			},
		},
	}

	items := converter.OrdersToHistoryItems(orders)
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(promo))
}

func TestFilterHistoryItemsBySearchAndStatus(t *testing.T) {
	items := converter.OrdersToHistoryItems(sampleOrders())

	bySearch := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{Search: "0241"})
	require.Len(t, bySearch, 1)
	assert.Equal(t, "item-1", bySearch[0].ItemID)

	byProduct := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{Search: "unlimited"})
	require.Len(t, byProduct, 1)
	assert.Equal(t, "item-3", byProduct[0].ItemID)

	byStatus := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{Status: entity.OrderItemPending})
	require.Len(t, byStatus, 1)
	assert.Equal(t, "item-2", byStatus[0].ItemID)
}

func TestFilterHistoryItemsDateRangeIncludesWholeEndDay(t *testing.T) {
	items := []model.OrderHistoryItem{
		{ItemID: "late-on-last-day", OrderDate: "2024-01-01T23:00:00"},
		{ItemID: "next-day", OrderDate: "2024-01-02T00:00:00"},
	}

	filtered := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "late-on-last-day", filtered[0].ItemID)
}

func TestFilterHistoryItemsUnparseableDateExcludedByActiveRange(t *testing.T) {
	items := []model.OrderHistoryItem{
		{ItemID: "no-date", OrderDate: ""},
		{ItemID: "garbage-date", OrderDate: "not-a-date"},
		{ItemID: "dated", OrderDate: "2024-01-01"},
	}

	noRange := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{})
	assert.Len(t, noRange, 3)

	ranged := usecase.FilterHistoryItems(items, model.OrderHistoryFilter{StartDate: "2023-12-01"})
	require.Len(t, ranged, 1)
	assert.Equal(t, "dated", ranged[0].ItemID)
}

func TestHistoryStatsOfCountsAndSums(t *testing.T) {
	items := []model.OrderHistoryItem{
		{Status: entity.OrderItemCompleted, Price: decimal.NewFromInt(10), Description: "10GB data bundle"},
		{Status: entity.OrderItemPending, Price: decimal.NewFromInt(5), Description: "5GB data bundle"},
		{Status: entity.OrderItemCancelled, Price: decimal.NewFromInt(20), Description: "Unlimited weekly"},
	}

	stats := usecase.HistoryStatsOf(items)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.True(t, stats.AmountSum.Equal(decimal.NewFromInt(35)))
	assert.InDelta(t, 15.0, stats.GigabyteSum, 0.0001)
}

func TestGigabytesFrom(t *testing.T) {
	tests := []struct {
		description string
		expected    float64
	}{
		{"10GB data bundle", 10},
		{"2.5 GB night pack", 2.5},
		{"1gb starter", 1},
		{"Unlimited weekly", 0},
		{"", 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.expected, usecase.GigabytesFrom(tc.description), 0.0001, tc.description)
	}
}

func TestHistoryCapsDisplayAtFifty(t *testing.T) {
	v := viper.New()
	log.InitLogger(v)
	mr := miniredis.RunT(t)

	orders := make([]entity.Order, 0, 60)
	for i := 0; i < 60; i++ {
		orders = append(orders, entity.Order{
			ID:        fmt.Sprintf("ord-%d", i),
			CreatedAt: "2024-01-01T10:00:00",
			Items: []entity.OrderItem{
				{
					ID:     fmt.Sprintf("item-%d", i),
					Status: entity.OrderItemCompleted,
					Product: entity.Product{
						Name:        "MTN 1GB",
						Description: "1GB data bundle",
						Price:       decimal.NewFromInt(1),
					},
				},
			},
		})
	}

	backend := new(MockOrderHistoryBackend)
	backend.On("ListOrders", mock.Anything, "token", "user-1").Return(orders, nil)

	useCase := usecase.NewOrderUseCase(
		log.GetLogger(),
		validator.New(),
		backend,
		v,
		redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	)

	result := useCase.History(context.Background(), "token", &model.OrderHistoryRequest{UserID: "user-1"})
	require.NoError(t, result.Error)

	response, ok := result.Data.(*model.OrderHistoryResponse)
	require.True(t, ok)
	assert.Len(t, response.Items, usecase.HistoryDisplayCap)
	assert.Equal(t, 60, response.Matched)
	assert.True(t, response.Capped)
	// stats cover everything that matched, not just the displayed page
	assert.Equal(t, 60, response.Stats.Total)
	assert.Equal(t, 60, response.Stats.Completed)
}
