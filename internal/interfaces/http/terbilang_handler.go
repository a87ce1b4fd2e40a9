package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tagihan-api/internal/application/dto"
	"github.com/jhoicas/Tagihan-api/pkg/terbilang"
)

// Terbilang número a palabras (público).
// GET /api/terbilang?n=1500000
func Terbilang(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("n"))
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro n requerido"})
	}
	n, err := decimal.NewFromString(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "n no es un número"})
	}
	return c.JSON(dto.TerbilangResponse{
		Value:  n.String(),
		Words:  terbilang.FromDecimal(n),
		Rupiah: terbilang.Rupiah(n),
	})
}
