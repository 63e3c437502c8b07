package http

import (
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/internal/usecase"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Log         log.Log
	UseCase     *usecase.OrderUseCase
	BulkUseCase *usecase.BulkUseCase
}

func NewOrderController(useCase *usecase.OrderUseCase, bulkUseCase *usecase.BulkUseCase, logger log.Log) *OrderController {
	return &OrderController{
		Log:         logger,
		UseCase:     useCase,
		BulkUseCase: bulkUseCase,
	}
}

func (c *OrderController) History(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.OrderHistoryRequest{
		UserID:    auth.UserID,
		Search:    ctx.Query("search"),
		Status:    ctx.Query("status"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	}
	result := c.UseCase.History(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Order History", fiber.StatusOK, ctx)
}

func (c *OrderController) PasteOrders(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.PasteOrdersRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("OrderController.PasteOrders", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.BulkUseCase.PasteOrders(ctx.Context(), middleware.GetToken(ctx), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Paste Orders", fiber.StatusOK, ctx)
}

func (c *OrderController) UploadOrders(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "a spreadsheet file is required"
		return utils.ResponseError(errObj, ctx)
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Log.Error("OrderController.UploadOrders", "Failed to open uploaded file", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	defer file.Close()

	request := &model.UploadOrdersRequest{
		UserID:      auth.UserID,
		Network:     ctx.FormValue("network"),
		JobID:       ctx.FormValue("jobId"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
	}
	result := c.BulkUseCase.UploadOrders(ctx.Context(), middleware.GetToken(ctx), request, file, fileHeader.Size)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Upload Orders", fiber.StatusOK, ctx)
}

func (c *OrderController) UploadProgress(ctx *fiber.Ctx) error {
	result := c.BulkUseCase.UploadProgress(ctx.Context(), ctx.Params("jobId"))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}
	return utils.Response(result.Data, "Upload Progress", fiber.StatusOK, ctx)
}
