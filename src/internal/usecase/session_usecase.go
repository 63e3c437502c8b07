package usecase

import (
	"context"
	"fmt"
	"time"

	"agent-portal-service/src/internal/model"
	httpError "agent-portal-service/src/pkg/http-error"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/session"
	"agent-portal-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SessionUseCase owns the session lifecycle: populated when the dashboard is
// opened with a verified token, cleared at logout. Opening a session also
// enrolls the user in the background balance/unread refreshers.
type SessionUseCase struct {
	Log      log.Log
	Validate *validator.Validate
	Sessions *session.Store
	Config   *viper.Viper
}

func NewSessionUseCase(
	logger log.Log,
	validate *validator.Validate,
	sessions *session.Store,
	cfg *viper.Viper,
) *SessionUseCase {
	return &SessionUseCase{
		Log:      logger,
		Validate: validate,
		Sessions: sessions,
		Config:   cfg,
	}
}

func (c *SessionUseCase) Open(ctx context.Context, request *model.OpenSessionRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	sess := &session.Session{
		UserID:    request.UserID,
		Role:      request.Role,
		FullName:  request.FullName,
		Token:     request.Token,
		CreatedAt: time.Now(),
	}
	if err := c.Sessions.Put(ctx, sess); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to open session"
		result.Error = errObj
		c.Log.Error("session-usecase", err.Error(), "Open", request.UserID)
		return result
	}

	c.Log.Info("session-usecase", "session opened", "Open", request.UserID)
	result.Data = &model.SessionResponse{
		UserID:   request.UserID,
		Role:     request.Role,
		FullName: request.FullName,
	}
	return result
}

func (c *SessionUseCase) Close(ctx context.Context, request *model.CloseSessionRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.Sessions.Delete(ctx, request.UserID); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "failed to close session"
		result.Error = errObj
		c.Log.Error("session-usecase", err.Error(), "Close", request.UserID)
		return result
	}

	c.Log.Info("session-usecase", "session closed", "Close", request.UserID)
	result.Data = &model.SessionResponse{UserID: request.UserID}
	return result
}
