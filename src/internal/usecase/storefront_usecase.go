package usecase

import (
	"context"
	"fmt"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/pkg/guard"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type StorefrontBackend interface {
	ListProducts(ctx context.Context, token, userID string) ([]entity.StorefrontProduct, error)
	AddProduct(ctx context.Context, token, userID, productID string, resalePrice decimal.Decimal) error
	UpdatePrice(ctx context.Context, token, userID, listingID string, resalePrice decimal.Decimal) error
	ToggleVisibility(ctx context.Context, token, userID, listingID string, visible bool) error
	RemoveProduct(ctx context.Context, token, userID, listingID string) error
	Referrals(ctx context.Context, token, userID string) (*entity.ReferralSummary, error)
}

type StorefrontUseCase struct {
	Log        log.Log
	Validate   *validator.Validate
	Storefront StorefrontBackend
	Catalog    CatalogBackend
	Config     *viper.Viper
	Guard      *guard.SlotGuard
}

func NewStorefrontUseCase(
	logger log.Log,
	validate *validator.Validate,
	storefront StorefrontBackend,
	catalog CatalogBackend,
	cfg *viper.Viper,
	slotGuard *guard.SlotGuard,
) *StorefrontUseCase {
	return &StorefrontUseCase{
		Log:        logger,
		Validate:   validate,
		Storefront: storefront,
		Catalog:    catalog,
		Config:     cfg,
		Guard:      slotGuard,
	}
}

func (c *StorefrontUseCase) ListProducts(ctx context.Context, token, userID string) utils.Result {
	var result utils.Result
	products, err := c.Storefront.ListProducts(ctx, token, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load storefront products"
		result.Error = errObj
		c.Log.Error("storefront-usecase", err.Error(), "ListProducts", userID)
		return result
	}
	result.Data = &model.StorefrontListResponse{Items: products}
	return result
}

// AvailableProducts is the catalog minus anything already listed: a set
// difference recomputed from the two independently fetched collections on
// every call, never a server-provided field.
func (c *StorefrontUseCase) AvailableProducts(ctx context.Context, token, userID string) utils.Result {
	var result utils.Result

	catalog, err := c.Catalog.ListAgentProducts(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load catalog"
		result.Error = errObj
		c.Log.Error("storefront-usecase", err.Error(), "AvailableProducts", userID)
		return result
	}
	listed, err := c.Storefront.ListProducts(ctx, token, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load storefront products"
		result.Error = errObj
		c.Log.Error("storefront-usecase", err.Error(), "AvailableProducts", userID)
		return result
	}

	result.Data = &model.AvailableProductsResponse{
		Items: AvailableToAdd(catalog, listed),
	}
	return result
}

// AddListing enforces the resale floor before calling upstream, then
// re-fetches the listing (no optimistic insert).
func (c *StorefrontUseCase) AddListing(ctx context.Context, token string, request *model.AddListingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("storefront:add:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.StorefrontListResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	product, err := c.findCatalogProduct(ctx, request.ProductID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("product %s not found", request.ProductID)
		result.Error = errObj
		return result
	}
	if request.ResalePrice.LessThan(product.Price) {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = fmt.Sprintf("resale price must be at least the base price of %s", product.Price.String())
		result.Error = errObj
		return result
	}

	if err := c.Storefront.AddProduct(ctx, token, request.UserID, request.ProductID, request.ResalePrice); err != nil {
		result.Error = asUsecaseError(err, "failed to add storefront product")
		c.Log.Error("storefront-usecase", err.Error(), "AddListing", request.ProductID)
		return result
	}
	return c.ListProducts(ctx, token, request.UserID)
}

func (c *StorefrontUseCase) UpdatePrice(ctx context.Context, token string, request *model.UpdateListingPriceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("storefront:price:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.StorefrontListResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	listing, err := c.findListing(ctx, token, request.UserID, request.ListingID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("storefront product %s not found", request.ListingID)
		result.Error = errObj
		return result
	}
	if request.ResalePrice.LessThan(listing.Product.Price) {
		errObj := httpError.NewUnprocessableEntity()
		errObj.Message = fmt.Sprintf("resale price must be at least the base price of %s", listing.Product.Price.String())
		result.Error = errObj
		return result
	}

	if err := c.Storefront.UpdatePrice(ctx, token, request.UserID, request.ListingID, request.ResalePrice); err != nil {
		result.Error = asUsecaseError(err, "failed to update resale price")
		c.Log.Error("storefront-usecase", err.Error(), "UpdatePrice", request.ListingID)
		return result
	}
	return c.ListProducts(ctx, token, request.UserID)
}

func (c *StorefrontUseCase) ToggleVisibility(ctx context.Context, token string, request *model.ToggleListingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("storefront:toggle:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.StorefrontListResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	if err := c.Storefront.ToggleVisibility(ctx, token, request.UserID, request.ListingID, request.Visible); err != nil {
		result.Error = asUsecaseError(err, "failed to toggle product visibility")
		c.Log.Error("storefront-usecase", err.Error(), "ToggleVisibility", request.ListingID)
		return result
	}
	return c.ListProducts(ctx, token, request.UserID)
}

func (c *StorefrontUseCase) RemoveListing(ctx context.Context, token string, request *model.RemoveListingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("storefront:remove:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.StorefrontListResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	if err := c.Storefront.RemoveProduct(ctx, token, request.UserID, request.ListingID); err != nil {
		result.Error = asUsecaseError(err, "failed to remove storefront product")
		c.Log.Error("storefront-usecase", err.Error(), "RemoveListing", request.ListingID)
		return result
	}
	return c.ListProducts(ctx, token, request.UserID)
}

func (c *StorefrontUseCase) Referrals(ctx context.Context, token, userID string) utils.Result {
	var result utils.Result
	summary, err := c.Storefront.Referrals(ctx, token, userID)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to load referrals"
		result.Error = errObj
		c.Log.Error("storefront-usecase", err.Error(), "Referrals", userID)
		return result
	}
	result.Data = summary
	return result
}

func (c *StorefrontUseCase) findCatalogProduct(ctx context.Context, productID string) (*entity.Product, error) {
	products, err := c.Catalog.ListAgentProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s not in catalog", productID)
}

func (c *StorefrontUseCase) findListing(ctx context.Context, token, userID, listingID string) (*entity.StorefrontProduct, error) {
	listed, err := c.Storefront.ListProducts(ctx, token, userID)
	if err != nil {
		return nil, err
	}
	for i := range listed {
		if listed[i].ID == listingID {
			return &listed[i], nil
		}
	}
	return nil, fmt.Errorf("listing %s not found", listingID)
}

// AvailableToAdd returns catalog products whose id is not already listed.
func AvailableToAdd(catalog []entity.Product, listed []entity.StorefrontProduct) []entity.Product {
	listedIDs := make(map[string]bool, len(listed))
	for i := range listed {
		listedIDs[listed[i].ProductID] = true
	}
	out := make([]entity.Product, 0, len(catalog))
	for i := range catalog {
		if !listedIDs[catalog[i].ID] {
			out = append(out, catalog[i])
		}
	}
	return out
}
