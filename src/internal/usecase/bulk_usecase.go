package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"agent-portal-service/src/internal/model"
	"agent-portal-service/src/pkg/guard"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Spreadsheet MIME types accepted before anything is sent upstream. The
// backend parser stays the sole authority on row-level validity.
var allowedUploadTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel": true,
	"text/csv":                 true,
}

func AllowedUploadType(contentType string) bool {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return allowedUploadTypes[strings.TrimSpace(strings.ToLower(contentType))]
}

type BulkOrderBackend interface {
	PasteOrders(ctx context.Context, token, agentID, network, textData string) (int, []model.RowError, error)
	UploadSimplified(ctx context.Context, token, agentID, network, fileName string, file io.Reader, size int64, onProgress func(percent int)) (int, []model.RowError, error)
}

type BulkUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Orders   BulkOrderBackend
	Config   *viper.Viper
	Redis    redis.UniversalClient
	Guard    *guard.SlotGuard
}

func NewBulkUseCase(
	logger log.Log,
	validate *validator.Validate,
	orders BulkOrderBackend,
	cfg *viper.Viper,
	redisClient redis.UniversalClient,
	slotGuard *guard.SlotGuard,
) *BulkUseCase {
	return &BulkUseCase{
		Log:      logger,
		Validate: validate,
		Orders:   orders,
		Config:   cfg,
		Redis:    redisClient,
		Guard:    slotGuard,
	}
}

// PasteOrders forwards freeform pasted text (one number and amount per line)
// to the upstream parser. A single request, so no progress granularity.
func (c *BulkUseCase) PasteOrders(ctx context.Context, token string, request *model.PasteOrdersRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}
	if strings.TrimSpace(request.Text) == "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "nothing to submit"
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("bulk:paste:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.BulkSubmitResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	accepted, rowErrors, err := c.Orders.PasteOrders(ctx, token, request.UserID, request.Network, request.Text)
	if err != nil {
		result.Error = asUsecaseError(err, "bulk submission failed")
		c.Log.Error("bulk-usecase", err.Error(), "PasteOrders", request.UserID)
		return result
	}

	result.Data = &model.BulkSubmitResponse{
		Accepted: accepted,
		Errors:   rowErrors,
	}
	return result
}

// UploadOrders streams a spreadsheet upstream, tracking the upload percentage
// under the client-supplied job id so the progress endpoint can report it
// while the transfer runs. A failed transfer is marked done at the last
// percentage reached.
func (c *BulkUseCase) UploadOrders(ctx context.Context, token string, request *model.UploadOrdersRequest, file io.Reader, size int64) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}
	if !AllowedUploadType(request.ContentType) {
		errObj := httpError.NewBadRequest()
		errObj.Message = "only Excel or CSV files are accepted"
		result.Error = errObj
		return result
	}

	guardKey := fmt.Sprintf("bulk:upload:%s", request.UserID)
	if !c.Guard.TryAcquire(guardKey) {
		result.Data = &model.BulkSubmitResponse{}
		return result
	}
	defer c.Guard.Release(guardKey)

	c.setProgress(ctx, request.JobID, 0, false)

	lastPercent := 0
	accepted, rowErrors, err := c.Orders.UploadSimplified(ctx, token, request.UserID, request.Network, request.FileName, file, size, func(percent int) {
		lastPercent = percent
		c.setProgress(ctx, request.JobID, percent, false)
	})
	if err != nil {
		c.setProgress(ctx, request.JobID, lastPercent, true)
		result.Error = asUsecaseError(err, "upload failed")
		c.Log.Error("bulk-usecase", err.Error(), "UploadOrders", request.FileName)
		return result
	}
	c.setProgress(ctx, request.JobID, 100, true)

	result.Data = &model.BulkSubmitResponse{
		JobID:    request.JobID,
		Accepted: accepted,
		Errors:   rowErrors,
	}
	return result
}

func (c *BulkUseCase) UploadProgress(ctx context.Context, jobID string) utils.Result {
	var result utils.Result

	value, err := c.Redis.Get(ctx, fmt.Sprintf("BULK:PROGRESS:%s", jobID)).Result()
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("upload job %s not found", jobID)
		result.Error = errObj
		return result
	}

	done := strings.HasSuffix(value, ":done")
	percent, _ := strconv.Atoi(strings.TrimSuffix(value, ":done"))
	result.Data = &model.UploadProgressResponse{
		JobID:   jobID,
		Percent: percent,
		Done:    done,
	}
	return result
}

func (c *BulkUseCase) setProgress(ctx context.Context, jobID string, percent int, done bool) {
	value := strconv.Itoa(percent)
	if done {
		value += ":done"
	}
	key := fmt.Sprintf("BULK:PROGRESS:%s", jobID)
	if err := c.Redis.Set(ctx, key, value, 30*time.Minute).Err(); err != nil {
		c.Log.Error("bulk-usecase", err.Error(), "setProgress", jobID)
	}
}
