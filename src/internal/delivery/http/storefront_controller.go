package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type StorefrontController struct {
	Log     log.Log
	UseCase *usecase.StorefrontUseCase
}

func NewStorefrontController(useCase *usecase.StorefrontUseCase, logger log.Log) *StorefrontController {
	return &StorefrontController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *StorefrontController) ListProducts(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	result := c.UseCase.ListProducts(ctx.Context(), middleware.GetToken(ctx), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Storefront Products", fiber.StatusOK, ctx)
}

func (c *StorefrontController) AvailableProducts(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	result := c.UseCase.AvailableProducts(ctx.Context(), middleware.GetToken(ctx), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Available Products", fiber.StatusOK, ctx)
}

func (c *StorefrontController) AddListing(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.AddListingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("StorefrontController.AddListing", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.AddListing(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Add Storefront Product", fiber.StatusOK, ctx)
}

func (c *StorefrontController) UpdatePrice(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.UpdateListingPriceRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("StorefrontController.UpdatePrice", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID
	request.ListingID = ctx.Params("listingId")

	result := c.UseCase.UpdatePrice(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Update Resale Price", fiber.StatusOK, ctx)
}

func (c *StorefrontController) ToggleVisibility(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.ToggleListingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("StorefrontController.ToggleVisibility", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID
	request.ListingID = ctx.Params("listingId")

	result := c.UseCase.ToggleVisibility(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Toggle Visibility", fiber.StatusOK, ctx)
}

func (c *StorefrontController) RemoveListing(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.RemoveListingRequest{
		UserID:    auth.UserID,
		ListingID: ctx.Params("listingId"),
	}
	result := c.UseCase.RemoveListing(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Remove Storefront Product", fiber.StatusOK, ctx)
}

func (c *StorefrontController) Referrals(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	result := c.UseCase.Referrals(ctx.Context(), middleware.GetToken(ctx), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Referrals", fiber.StatusOK, ctx)
}
