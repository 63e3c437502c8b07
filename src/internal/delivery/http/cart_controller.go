package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type CartController struct {
	Log     log.Log
	UseCase *usecase.CartUseCase
}

func NewCartController(useCase *usecase.CartUseCase, logger log.Log) *CartController {
	return &CartController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *CartController) ListProducts(ctx *fiber.Ctx) error {
	result := c.UseCase.ListProducts(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Products", fiber.StatusOK, ctx)
}

func (c *CartController) GetCart(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	result := c.UseCase.GetCart(ctx.Context(), middleware.GetToken(ctx), auth.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Cart", fiber.StatusOK, ctx)
}

func (c *CartController) AddItem(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.AddCartItemRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("CartController.AddItem", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.AddToCart(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Add To Cart", fiber.StatusOK, ctx)
}

func (c *CartController) RemoveItem(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.RemoveCartItemRequest{
		UserID:     auth.UserID,
		CartItemID: ctx.Params("cartItemId"),
	}
	result := c.UseCase.RemoveFromCart(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Remove From Cart", fiber.StatusOK, ctx)
}

func (c *CartController) Clear(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.SubmitCartRequest{UserID: auth.UserID}
	result := c.UseCase.ClearCart(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Clear Cart", fiber.StatusOK, ctx)
}

func (c *CartController) Submit(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.SubmitCartRequest{UserID: auth.UserID}
	result := c.UseCase.SubmitCart(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Submit Cart", fiber.StatusOK, ctx)
}
