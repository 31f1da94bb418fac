package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pwelgemoed-sys/lonehill-weather/internal/weather"
)

// ErrorHandler converts errors bubbling out of handlers into a JSON
// error body with the appropriate status code. Wired into fiber.Config
// by main and by the handler tests.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
//
// Every response carries permissive CORS headers, whether or not the
// request sent an Origin; the browser client is served from a different
// origin than this proxy.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Use(func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		return c.Next()
	})

	api := app.Group("/api")

	api.Get("/weather", func(c *fiber.Ctx) error {
		report, err := service.CurrentWithTrends(c.UserContext())
		if err != nil {
			if errors.Is(err, weather.ErrMissingCredentials) {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			var upstreamErr *weather.UpstreamError
			if errors.As(err, &upstreamErr) {
				return fiber.NewError(fiber.StatusBadGateway, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to assemble weather report")
		}

		return c.JSON(report)
	})

	// Preflight no-op; the middleware above already attached the headers.
	api.Options("/weather", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
}
