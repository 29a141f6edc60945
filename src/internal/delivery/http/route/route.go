package route

import (
	"tour-service/src/internal/delivery/http"
	"tour-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App               *fiber.App
	BookingController *http.BookingController
	PaymentController *http.PaymentController
	OrderController   *http.OrderController
	AdminController   *http.AdminController
	AuthMiddleware    fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupCustomerRoute()
	c.SetupAdminRoute()
}

func (c *RouteConfig) SetupCustomerRoute() {
	bookings := c.App.Group("/bookings", c.AuthMiddleware)
	bookings.Post("/", c.BookingController.Create)
	bookings.Get("/", c.BookingController.List)
	bookings.Get("/:id", c.BookingController.Get)
	bookings.Patch("/:id", c.BookingController.UpdateOffer)
	bookings.Delete("/:id", c.BookingController.Delete)
	bookings.Get("/:id/payment", c.PaymentController.Get)
	bookings.Put("/:id/payment/method", c.PaymentController.SelectMethod)
	bookings.Post("/:id/payment/bank", c.PaymentController.SubmitBank)
	bookings.Post("/:id/payment/wise", c.PaymentController.SubmitWise)

	orders := c.App.Group("/orders", c.AuthMiddleware)
	orders.Get("/", c.OrderController.List)
	orders.Post("/:id/review", c.OrderController.SubmitReview)

	c.App.Get("/products/:id/rating", c.AuthMiddleware, c.OrderController.ProductRating)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin", c.AuthMiddleware, middleware.RequireAdmin())
	admin.Get("/bookings", c.AdminController.ListBookings)
	admin.Patch("/bookings/:id", c.AdminController.UpdateBooking)
	admin.Delete("/bookings/:id", c.AdminController.DeleteBooking)
	admin.Get("/payments", c.AdminController.ListPayments)
	admin.Post("/payments/:id/adjudicate", c.AdminController.Adjudicate)
	admin.Get("/orders", c.AdminController.ListOrders)
	admin.Post("/orders/:id/cancel", c.AdminController.CancelOrder)
}
