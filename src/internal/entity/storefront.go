package entity

import "github.com/shopspring/decimal"

// StorefrontProduct is a catalog product an agent resells at their own markup.
type StorefrontProduct struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Product     Product         `json:"product"`
	ResalePrice decimal.Decimal `json:"resalePrice"`
	Visible     bool            `json:"visible"`
}

type ReferralOrder struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"productName"`
	MobileNumber string          `json:"mobileNumber"`
	Amount       decimal.Decimal `json:"amount"`
	Commission   decimal.Decimal `json:"commission"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"createdAt"`
}

type ReferralSummary struct {
	Orders          []ReferralOrder `json:"orders"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
}
