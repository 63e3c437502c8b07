package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionController struct {
	Log     log.Log
	UseCase *usecase.TransactionUseCase
}

func NewTransactionController(useCase *usecase.TransactionUseCase, logger log.Log) *TransactionController {
	return &TransactionController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *TransactionController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.TransactionListRequest{
		UserID:    auth.UserID,
		Search:    ctx.Query("search"),
		Type:      ctx.Query("type"),
		Direction: ctx.Query("direction"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
		Page:      ctx.QueryInt("page", 1),
	}
	result := c.UseCase.List(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Transactions", fiber.StatusOK, ctx)
}
