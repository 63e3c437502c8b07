package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.WalletUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) Balance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.BalanceRequest{UserID: auth.UserID}
	result := c.UseCase.GetBalance(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Wallet Balance", fiber.StatusOK, ctx)
}

func (c *WalletController) TopupInitialize(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.TopupInitializeRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.TopupInitialize", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.TopupInitialize(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Initialize Top-up", fiber.StatusOK, ctx)
}

func (c *WalletController) TopupVerify(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.TopupVerifyRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.TopupVerify", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID
	result := c.UseCase.TopupVerify(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Verify Top-up", fiber.StatusOK, ctx)
}

func (c *WalletController) VerifySMS(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.VerifySMSRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.VerifySMS", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.UseCase.VerifySMS(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Verify Code", fiber.StatusOK, ctx)
}
