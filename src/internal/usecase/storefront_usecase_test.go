package usecase_test

import (
	"testing"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableToAddExcludesListedProducts(t *testing.T) {
	catalog := []entity.Product{
		{ID: "prod-1", Name: "MTN 10GB", Price: decimal.NewFromInt(10)},
		{ID: "prod-2", Name: "MTN 5GB", Price: decimal.NewFromInt(5)},
		{ID: "prod-3", Name: "Telecel 20GB", Price: decimal.NewFromInt(18)},
	}
	listed := []entity.StorefrontProduct{
		{ID: "listing-1", ProductID: "prod-2"},
	}

	available := usecase.AvailableToAdd(catalog, listed)
	require.Len(t, available, 2)
	assert.Equal(t, "prod-1", available[0].ID)
	assert.Equal(t, "prod-3", available[1].ID)
}

func TestAvailableToAddWithNothingListed(t *testing.T) {
	catalog := []entity.Product{
		{ID: "prod-1"},
		{ID: "prod-2"},
	}

	available := usecase.AvailableToAdd(catalog, nil)
	assert.Len(t, available, 2)
}

func TestAvailableToAddWithEverythingListed(t *testing.T) {
	catalog := []entity.Product{{ID: "prod-1"}}
	listed := []entity.StorefrontProduct{{ID: "listing-1", ProductID: "prod-1"}}

	available := usecase.AvailableToAdd(catalog, listed)
	assert.Empty(t, available)
}
