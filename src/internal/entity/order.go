package entity

import "github.com/shopspring/decimal"

const (
	OrderItemPending    = "Pending"
	OrderItemProcessing = "Processing"
	OrderItemCompleted  = "Completed"
	OrderItemCancelled  = "Cancelled"
)

// Order as returned by the upstream history endpoint, with nested items.
// CreatedAt stays a raw string: upstream sometimes omits or mangles it, and a
// missing date is treated as unparseable at filter time (excluded from range
// comparisons) rather than silently repaired.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   string          `json:"createdAt"`
	Items       []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	MobileNumber string  `json:"mobileNumber"`
	Product      Product `json:"product"`
	UpdatedAt    string  `json:"updatedAt"`
}
