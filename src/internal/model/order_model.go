package model

import "github.com/shopspring/decimal"

type OrderHistoryRequest struct {
	UserID    string `json:"-" validate:"required"`
	Search    string `json:"search"`
	Status    string `json:"status"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// OrderHistoryItem is one flattened (order, item) pair. Parent order fields
// ride along on every item so the view can link back to the order.
type OrderHistoryItem struct {
	OrderID      string          `json:"orderId"`
	OrderDate    string          `json:"orderDate"`
	OrderTotal   decimal.Decimal `json:"orderTotal"`
	ItemID       string          `json:"itemId"`
	Status       string          `json:"status"`
	MobileNumber string          `json:"mobileNumber"`
	ProductName  string          `json:"productName"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	UpdatedAt    string          `json:"updatedAt"`
}

type OrderHistoryFilter struct {
	Search    string
	Status    string
	StartDate string
	EndDate   string
}

// OrderStats is computed over the items passing the active filter set.
type OrderStats struct {
	Total     int             `json:"total"`
	Pending   int             `json:"pending"`
	Completed int             `json:"completed"`
	AmountSum decimal.Decimal `json:"amountSum"`
	// GigabyteSum is best effort: descriptions without a recognizable
	// "<number> GB" token contribute zero.
	GigabyteSum float64 `json:"gigabyteSum"`
}

type OrderHistoryResponse struct {
	Items []OrderHistoryItem `json:"items"`
	Stats OrderStats         `json:"stats"`
	// Matched is the filtered count before the display cap.
	Matched int `json:"matched"`
	Capped  bool `json:"capped"`
}
