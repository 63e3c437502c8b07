package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type SessionController struct {
	Log     log.Log
	UseCase *usecase.SessionUseCase
}

func NewSessionController(useCase *usecase.SessionUseCase, logger log.Log) *SessionController {
	return &SessionController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *SessionController) Open(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.OpenSessionRequest{
		UserID:   auth.UserID,
		Role:     auth.Role,
		FullName: auth.FullName,
		Token:    middleware.GetToken(ctx),
	}
	result := c.UseCase.Open(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Open Session", fiber.StatusOK, ctx)
}

func (c *SessionController) Close(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.CloseSessionRequest{UserID: auth.UserID}
	result := c.UseCase.Close(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Close Session", fiber.StatusOK, ctx)
}
