package usecase

import (
	"time"

	"agent-portal-service/src/internal/gateway/backend"
	httpError "agent-portal-service/src/pkg/http-error"
)

const (
	balanceKeyPattern = "WALLET:BALANCE:%s"
	unreadKeyPattern  = "ANNOUNCEMENT:UNREAD:%s"

	balanceCacheTTL = 5 * time.Minute
)

// asUsecaseError maps an upstream failure onto the error taxonomy: structured
// per-row validation lists pass through verbatim, anything else becomes a
// generic failure with the fallback message.
func asUsecaseError(err error, fallback string) error {
	if apiErr, ok := err.(*backend.APIError); ok {
		if len(apiErr.RowErrors) > 0 {
			errObj := httpError.NewUnprocessableEntity()
			errObj.Message = apiErr.Message
			errObj.Data = apiErr.RowErrors
			return errObj
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			errObj := httpError.NewBadRequest()
			errObj.Code = apiErr.Status
			errObj.Message = apiErr.Message
			return errObj
		}
	}
	errObj := httpError.NewInternalServerError()
	errObj.Message = fallback
	return errObj
}
