package model

import (
	"agent-portal-service/src/internal/entity"

	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	UserID       string `json:"-" validate:"required"`
	ProductID    string `json:"productId" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	// Confirm acknowledges an existing cart line with the same product and
	// mobile number; without it a duplicate is rejected with a conflict.
	Confirm bool `json:"confirm"`
}

type RemoveCartItemRequest struct {
	UserID     string `json:"-" validate:"required"`
	CartItemID string `json:"-" validate:"required"`
}

type SubmitCartRequest struct {
	UserID string `json:"-" validate:"required"`
}

type AddCartItemResponse struct {
	Added bool `json:"added"`
	// Dropped marks a call rejected by the in-flight guard; no upstream
	// request was made.
	Dropped bool          `json:"dropped,omitempty"`
	Cart    *CartResponse `json:"cart,omitempty"`
}

type CartResponse struct {
	Items []entity.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

type SubmitCartResponse struct {
	OrderID   string          `json:"orderId,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CartTotal decimal.Decimal `json:"cartTotal"`
	Errors    []RowError      `json:"errors,omitempty"`
}
