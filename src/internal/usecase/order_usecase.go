package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/model/converter"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// HistoryDisplayCap limits the filtered result to the first matches for
// display.
const HistoryDisplayCap = 50

type OrderHistoryBackend interface {
	ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error)
}

type OrderUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Orders   OrderHistoryBackend
	Config   *viper.Viper
	Redis    redis.UniversalClient
}

func NewOrderUseCase(
	logger log.Log,
	validate *validator.Validate,
	orders OrderHistoryBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
) *OrderUseCase {
	return &OrderUseCase{
		Log:      logger,
		Validate: validate,
		Orders:   orders,
		Config:   cfg,
		Redis:    redisClient,
	}
}

// History runs the full pipeline: fetch (short cache), flatten, filter,
// summarize, cap. The source collection is never mutated; every run
// recomputes from scratch.
func (c *OrderUseCase) History(ctx context.Context, token string, request *model.OrderHistoryRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("order-usecase", errObj.Message, "History", utils.ConvertString(request))
		return result
	}

	orders, err := c.fetchOrders(ctx, token, request.UserID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load order history"
		result.Error = errObj
		c.Log.Error("order-usecase", err.Error(), "History", request.UserID)
		return result
	}

	flattened := converter.OrdersToHistoryItems(orders)
	filtered := FilterHistoryItems(flattened, model.OrderHistoryFilter{
		Search:    request.Search,
		Status:    request.Status,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
	})
	stats := HistoryStatsOf(filtered)

	capped := false
	display := filtered
	if len(display) > HistoryDisplayCap {
		display = display[:HistoryDisplayCap]
		capped = true
	}

	result.Data = &model.OrderHistoryResponse{
		Items:   display,
		Stats:   stats,
		Matched: len(filtered),
		Capped:  capped,
	}
	return result
}

// fetchOrders caches the upstream collection briefly so an open history panel
// polling the endpoint hits upstream at most once per refresh window.
func (c *OrderUseCase) fetchOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	key := fmt.Sprintf("ORDERS:%s", userID)
	if cached, err := c.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
		var orders []entity.Order
		if err := json.Unmarshal([]byte(cached), &orders); err == nil {
			return orders, nil
		}
	}

	orders, err := c.Orders.ListOrders(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	ttl := c.Config.GetDuration("orders.cache_ttl")
	if ttl == 0 {
		ttl = 20 * time.Second
	}
	if data, err := json.Marshal(orders); err == nil {
		if redisErr := c.Redis.Set(ctx, key, data, ttl).Err(); redisErr != nil {
			c.Log.Error("order-usecase", redisErr.Error(), "fetchOrders-cache", userID)
		}
	}
	return orders, nil
}

// FilterHistoryItems applies search, status and date range in sequence. Pure:
// the input slice is read, never modified.
func FilterHistoryItems(items []model.OrderHistoryItem, filter model.OrderHistoryFilter) []model.OrderHistoryItem {
	out := make([]model.OrderHistoryItem, 0, len(items))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for i := range items {
		item := items[i]
		if search != "" && !historyItemMatches(&item, search) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if !withinRange(item.OrderDate, filter.StartDate, filter.EndDate) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func historyItemMatches(item *model.OrderHistoryItem, search string) bool {
	return strings.Contains(strings.ToLower(item.MobileNumber), search) ||
		strings.Contains(strings.ToLower(item.ProductName), search) ||
		strings.Contains(strings.ToLower(item.OrderID), search)
}

func HistoryStatsOf(items []model.OrderHistoryItem) model.OrderStats {
	stats := model.OrderStats{}
	for i := range items {
		stats.Total++
		switch items[i].Status {
		case entity.OrderItemPending:
			stats.Pending++
		case entity.OrderItemCompleted:
			stats.Completed++
		}
		stats.AmountSum = stats.AmountSum.Add(items[i].Price)
		stats.GigabyteSum += GigabytesFrom(items[i].Description)
	}
	return stats
}

var gbPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*GB`)

// GigabytesFrom extracts a bundle size from free-text like "10GB" or
// "2.5 GB". Descriptions without a recognizable token ("Unlimited")
// contribute zero.
func GigabytesFrom(description string) float64 {
	match := gbPattern.FindStringSubmatch(description)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// withinRange makes the range inclusive of the whole end day by anchoring the
// end bound to 23:59:59. An unparseable (or missing) timestamp fails any
// active range comparison; that mirrors the observed behavior and is left as
// is rather than silently repaired.
func withinRange(timestamp, startDate, endDate string) bool {
	if startDate == "" && endDate == "" {
		return true
	}
	t, ok := parseTimestamp(timestamp)
	if !ok {
		return false
	}
	if startDate != "" {
		start, ok := parseTimestamp(startDate)
		if ok && t.Before(start) {
			return false
		}
	}
	if endDate != "" {
		end, ok := parseTimestamp(endDate)
		if ok {
			end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
			if t.After(end) {
				return false
			}
		}
	}
	return true
}
