package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Export    *billing.ExportUseCase
	Metrics   http.Handler // nil = sin /metrics
	JWTSecret string
	JWTIssuer string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Terbilang (público)
	api.Get("/terbilang", Terbilang)

	// Tagihan (requieren Bearer Token)
	invoices := api.Group("/invoices", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	invoiceHandler := NewInvoiceHandler(deps.Export)
	invoices.Post("/pdf", invoiceHandler.Render)
	invoices.Get("/:id/pdf", invoiceHandler.ExportByID)
	invoices.Get("/:id/preview", invoiceHandler.Preview)
}
