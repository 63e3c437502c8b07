package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
)

type WalletGateway struct {
	Client *Client
}

func NewWalletGateway(client *Client) *WalletGateway {
	return &WalletGateway{Client: client}
}

// Balance reads the loan/balance payload. Observed upstream serves this
// without auth; the accepted inconsistency is preserved.
func (g *WalletGateway) Balance(ctx context.Context, userID string) (*entity.WalletBalance, error) {
	var balance entity.WalletBalance
	err := g.Client.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/loan/%s", userID), "", nil, &balance)
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (g *WalletGateway) Transactions(ctx context.Context, token, userID string) ([]entity.Transaction, error) {
	var transactions []entity.Transaction
	err := g.Client.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%s/transactions", userID), token, nil, &transactions)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

type topupInitializeBody struct {
	UserID string `json:"userId"`
	Amount string `json:"amount"`
	Email  string `json:"email"`
}

func (g *WalletGateway) TopupInitialize(ctx context.Context, token string, req *model.TopupInitializeRequest) (json.RawMessage, error) {
	body := topupInitializeBody{
		UserID: req.UserID,
		Amount: req.Amount.String(),
		Email:  req.Email,
	}
	var payload json.RawMessage
	err := g.Client.do(ctx, http.MethodPost, "/api/topup/initialize", token, body, &payload)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

type topupVerifyBody struct {
	UserID    string `json:"userId"`
	Reference string `json:"reference"`
}

func (g *WalletGateway) TopupVerify(ctx context.Context, token, userID, reference string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := g.Client.do(ctx, http.MethodPost, "/api/topup/verify", token, topupVerifyBody{UserID: userID, Reference: reference}, &payload)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

type verifySMSBody struct {
	UserID    string `json:"userId"`
	Reference string `json:"reference"`
	Code      string `json:"code"`
}

func (g *WalletGateway) VerifySMS(ctx context.Context, token, userID, reference, code string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := g.Client.do(ctx, http.MethodPost, "/api/verify-sms", token, verifySMSBody{UserID: userID, Reference: reference, Code: code}, &payload)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
