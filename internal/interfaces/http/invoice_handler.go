package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/application/dto"
)

// InvoiceHandler exportación PDF y vista previa de tagihan (protegido).
type InvoiceHandler struct {
	uc *billing.ExportUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.ExportUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Render genera el PDF de una tagihan enviada en el body.
// POST /api/invoices/pdf
func (h *InvoiceHandler) Render(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return writeError(c, err)
	}
	inv, err := in.ToEntity()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Export(c.UserContext(), inv, in.Filename)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, res)
}

// ExportByID genera el PDF de una tagihan del backend.
// GET /api/invoices/:id/pdf?filename=
func (h *InvoiceHandler) ExportByID(c *fiber.Ctx) error {
	res, err := h.uc.ExportByID(c.UserContext(), invoiceQuery(c), c.Query("filename"))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, res)
}

// Preview agrupación y terbilang sin renderizar.
// GET /api/invoices/:id/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.PreviewByID(c.UserContext(), invoiceQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func invoiceQuery(c *fiber.Ctx) billing.InvoiceQuery {
	return billing.InvoiceQuery{
		ID:        c.Params("id"),
		Token:     GetToken(c),
		CompanyID: GetCompanyID(c),
	}
}

func sendPDF(c *fiber.Ctx, res *billing.ExportResult) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	c.Set("X-Export-ID", res.ID)
	c.Set("X-Page-Count", strconv.Itoa(res.Pages))
	return c.Send(res.PDF)
}
