package backend

import (
	"context"
	"net/http"

	"agent-portal-service/src/internal/entity"
)

type CatalogGateway struct {
	Client *Client
}

func NewCatalogGateway(client *Client) *CatalogGateway {
	return &CatalogGateway{Client: client}
}

// ListAgentProducts fetches the agent-facing catalog. The endpoint is served
// without auth upstream, matching the observed contract.
func (g *CatalogGateway) ListAgentProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := g.Client.do(ctx, http.MethodGet, "/products/agent-products", "", nil, &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}
