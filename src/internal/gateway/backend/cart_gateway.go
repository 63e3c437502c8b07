package backend

import (
	"context"
	"fmt"
	"net/http"

	"agent-portal-service/src/internal/entity"
)

type CartGateway struct {
	Client *Client
}

func NewCartGateway(client *Client) *CartGateway {
	return &CartGateway{Client: client}
}

func (g *CartGateway) GetCart(ctx context.Context, token, userID string) (*entity.Cart, error) {
	var cart entity.Cart
	err := g.Client.do(ctx, http.MethodGet, fmt.Sprintf("/api/cart/%s", userID), token, nil, &cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

type addCartItemBody struct {
	UserID       string `json:"userId"`
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	MobileNumber string `json:"mobileNumber"`
}

func (g *CartGateway) AddItem(ctx context.Context, token, userID, productID, mobileNumber string) error {
	body := addCartItemBody{
		UserID:       userID,
		ProductID:    productID,
		Quantity:     1,
		MobileNumber: mobileNumber,
	}
	return g.Client.do(ctx, http.MethodPost, "/api/cart/add", token, body, nil)
}

func (g *CartGateway) RemoveItem(ctx context.Context, token, cartItemID string) error {
	return g.Client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/remove/%s", cartItemID), token, nil, nil)
}

func (g *CartGateway) Clear(ctx context.Context, token, userID string) error {
	return g.Client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%s/clear", userID), token, nil, nil)
}
