package utils

import (
	"encoding/json"
	"strconv"

	httpError "agent-portal-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the common usecase return envelope.
type Result struct {
	Data  interface{}
	Error error
}

type baseResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(baseResponse{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(baseResponse{
			Success: false,
			Code:    commonErr.Code,
			Message: commonErr.Message,
			Errors:  commonErr.Data,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(baseResponse{
		Success: false,
		Code:    fiber.StatusInternalServerError,
		Message: err.Error(),
	})
}

// ConvertString marshals any value for log metadata.
func ConvertString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func ConvertInt(v interface{}) int {
	switch value := v.(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
