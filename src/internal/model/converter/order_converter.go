package converter

import (
	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
)

// OrdersToHistoryItems flattens every (order, item) pair, copying the parent
// order fields onto each flattened row. The source slice is never mutated.
func OrdersToHistoryItems(orders []entity.Order) []model.OrderHistoryItem {
	items := make([]model.OrderHistoryItem, 0)
	for i := range orders {
		order := &orders[i]
		for j := range order.Items {
			item := &order.Items[j]
			items = append(items, model.OrderHistoryItem{
				OrderID:      order.ID,
				OrderDate:    order.CreatedAt,
				OrderTotal:   order.TotalAmount,
				ItemID:       item.ID,
				Status:       item.Status,
				MobileNumber: item.MobileNumber,
				ProductName:  item.Product.Name,
				Description:  item.Product.Description,
				Price:        item.Product.EffectivePrice(),
				UpdatedAt:    item.UpdatedAt,
			})
		}
	}
	return items
}

func CartToResponse(cart *entity.Cart) *model.CartResponse {
	return &model.CartResponse{
		Items: cart.Items,
		Total: cart.Total(),
	}
}
