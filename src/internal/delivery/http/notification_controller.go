package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Log     log.Log
	UseCase *usecase.NotificationUseCase
}

func NewNotificationController(useCase *usecase.NotificationUseCase, logger log.Log) *NotificationController {
	return &NotificationController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *NotificationController) Unread(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.UnreadCountRequest{
		UserID: auth.UserID,
		Role:   auth.Role,
	}
	result := c.UseCase.PollUnread(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Unread Count", fiber.StatusOK, ctx)
}

func (c *NotificationController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.NotificationListRequest{
		UserID: auth.UserID,
		Role:   auth.Role,
	}
	result := c.UseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Notifications", fiber.StatusOK, ctx)
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.MarkReadRequest{
		UserID:         auth.UserID,
		AnnouncementID: ctx.Params("announcementId"),
	}
	result := c.UseCase.MarkRead(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Mark As Read", fiber.StatusOK, ctx)
}
