package model

import (
	"agent-portal-service/src/internal/entity"

	"github.com/shopspring/decimal"
)

type AddListingRequest struct {
	UserID      string          `json:"-" validate:"required"`
	ProductID   string          `json:"productId" validate:"required"`
	ResalePrice decimal.Decimal `json:"resalePrice" validate:"required"`
}

type UpdateListingPriceRequest struct {
	UserID      string          `json:"-" validate:"required"`
	ListingID   string          `json:"-" validate:"required"`
	ResalePrice decimal.Decimal `json:"resalePrice" validate:"required"`
}

type ToggleListingRequest struct {
	UserID    string `json:"-" validate:"required"`
	ListingID string `json:"-" validate:"required"`
	Visible   bool   `json:"visible"`
}

type RemoveListingRequest struct {
	UserID    string `json:"-" validate:"required"`
	ListingID string `json:"-" validate:"required"`
}

type StorefrontListResponse struct {
	Items []entity.StorefrontProduct `json:"items"`
}

type AvailableProductsResponse struct {
	Items []entity.Product `json:"items"`
}
