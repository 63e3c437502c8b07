package backend

import (
	"context"
	"fmt"
	"net/http"

	"agent-portal-service/src/internal/entity"

	"github.com/shopspring/decimal"
)

type StorefrontGateway struct {
	Client *Client
}

func NewStorefrontGateway(client *Client) *StorefrontGateway {
	return &StorefrontGateway{Client: client}
}

func (g *StorefrontGateway) ListProducts(ctx context.Context, token, userID string) ([]entity.StorefrontProduct, error) {
	var products []entity.StorefrontProduct
	path := fmt.Sprintf("/api/storefront/agent/%s/products", userID)
	err := g.Client.do(ctx, http.MethodGet, path, token, nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

type addListingBody struct {
	ProductID   string `json:"productId"`
	ResalePrice string `json:"resalePrice"`
}

func (g *StorefrontGateway) AddProduct(ctx context.Context, token, userID, productID string, resalePrice decimal.Decimal) error {
	path := fmt.Sprintf("/api/storefront/agent/%s/products", userID)
	body := addListingBody{ProductID: productID, ResalePrice: resalePrice.String()}
	return g.Client.do(ctx, http.MethodPost, path, token, body, nil)
}

type updatePriceBody struct {
	ResalePrice string `json:"resalePrice"`
}

func (g *StorefrontGateway) UpdatePrice(ctx context.Context, token, userID, listingID string, resalePrice decimal.Decimal) error {
	path := fmt.Sprintf("/api/storefront/agent/%s/products/%s", userID, listingID)
	return g.Client.do(ctx, http.MethodPut, path, token, updatePriceBody{ResalePrice: resalePrice.String()}, nil)
}

type toggleVisibilityBody struct {
	Visible bool `json:"visible"`
}

func (g *StorefrontGateway) ToggleVisibility(ctx context.Context, token, userID, listingID string, visible bool) error {
	path := fmt.Sprintf("/api/storefront/agent/%s/products/%s/availability", userID, listingID)
	return g.Client.do(ctx, http.MethodPatch, path, token, toggleVisibilityBody{Visible: visible}, nil)
}

func (g *StorefrontGateway) RemoveProduct(ctx context.Context, token, userID, listingID string) error {
	path := fmt.Sprintf("/api/storefront/agent/%s/products/%s", userID, listingID)
	return g.Client.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (g *StorefrontGateway) Referrals(ctx context.Context, token, userID string) (*entity.ReferralSummary, error) {
	var summary entity.ReferralSummary
	path := fmt.Sprintf("/api/storefront/agent/%s/referrals", userID)
	err := g.Client.do(ctx, http.MethodGet, path, token, nil, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
