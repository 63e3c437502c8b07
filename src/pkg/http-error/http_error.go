package httpError

import "net/http"

// CommonError carries an HTTP status, a user-facing message and optional
// structured details (for example a per-row validation list from upstream).
type CommonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *CommonError) Error() string {
	return e.Message
}

func NewBadRequest() *CommonError {
	return &CommonError{Code: http.StatusBadRequest, Message: "bad request"}
}

func NewUnauthorized() *CommonError {
	return &CommonError{Code: http.StatusUnauthorized, Message: "unauthorized"}
}

func NewNotFound() *CommonError {
	return &CommonError{Code: http.StatusNotFound, Message: "not found"}
}

func NewConflict() *CommonError {
	return &CommonError{Code: http.StatusConflict, Message: "conflict"}
}

func NewUnprocessableEntity() *CommonError {
	return &CommonError{Code: http.StatusUnprocessableEntity, Message: "unprocessable entity"}
}

func NewInternalServerError() *CommonError {
	return &CommonError{Code: http.StatusInternalServerError, Message: "internal server error"}
}
