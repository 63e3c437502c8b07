package config

import (
	"agent-portal-service/src/pkg/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func NewFiber(config *viper.Viper) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.GetString("app.name"),
		Prefork:      config.GetBool("web.prefork"),
		BodyLimit:    config.GetInt("web.body_limit"),
		ErrorHandler: newErrorHandler(),
	})

	return app
}

func newErrorHandler() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}
		return utils.ResponseError(err, ctx)
	}
}
