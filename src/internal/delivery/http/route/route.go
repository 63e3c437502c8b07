package route

import (
	"agent-portal-service/src/internal/delivery/http"
	"agent-portal-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                    *fiber.App
	SessionController      *http.SessionController
	CartController         *http.CartController
	OrderController        *http.OrderController
	TransactionController  *http.TransactionController
	NotificationController *http.NotificationController
	StorefrontController   *http.StorefrontController
	WalletController       *http.WalletController
	AuthMiddleware         fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)

	c.App.Post("/auth/v1/session", c.SessionController.Open)
	c.App.Delete("/auth/v1/session", c.SessionController.Close)

	c.App.Get("/catalog/v1/products", c.CartController.ListProducts)

	c.App.Get("/cart/v1", c.CartController.GetCart)
	c.App.Post("/cart/v1/items", c.CartController.AddItem)
	c.App.Delete("/cart/v1/items/:cartItemId", c.CartController.RemoveItem)
	c.App.Delete("/cart/v1", c.CartController.Clear)
	c.App.Post("/cart/v1/submit", c.CartController.Submit)

	c.App.Get("/orders/v1/history", c.OrderController.History)
	c.App.Post("/orders/v1/bulk/paste", c.OrderController.PasteOrders)
	c.App.Post("/orders/v1/bulk/upload", c.OrderController.UploadOrders)
	c.App.Get("/orders/v1/bulk/upload/:jobId/progress", c.OrderController.UploadProgress)

	c.App.Get("/transactions/v1", c.TransactionController.List)

	c.App.Get("/notifications/v1/unread", c.NotificationController.Unread)
	c.App.Get("/notifications/v1", c.NotificationController.List)
	c.App.Post("/notifications/v1/:announcementId/read", c.NotificationController.MarkRead)

	c.App.Get("/wallet/v1/balance", c.WalletController.Balance)
	c.App.Post("/wallet/v1/topup/initialize", c.WalletController.TopupInitialize)
	c.App.Post("/wallet/v1/topup/verify", c.WalletController.TopupVerify)
	c.App.Post("/wallet/v1/topup/verify-sms", c.WalletController.VerifySMS)

	c.App.Get("/storefront/v1/products", c.StorefrontController.ListProducts)
	c.App.Get("/storefront/v1/available", c.StorefrontController.AvailableProducts)
	c.App.Post("/storefront/v1/products", c.StorefrontController.AddListing)
	c.App.Put("/storefront/v1/products/:listingId/price", c.StorefrontController.UpdatePrice)
	c.App.Patch("/storefront/v1/products/:listingId/visibility", c.StorefrontController.ToggleVisibility)
	c.App.Delete("/storefront/v1/products/:listingId", c.StorefrontController.RemoveListing)
	c.App.Get("/storefront/v1/referrals", c.StorefrontController.Referrals)
}
