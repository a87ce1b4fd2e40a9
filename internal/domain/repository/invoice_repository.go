package repository

import (
	"context"

	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
)

// InvoiceRepository lectura de tagihan ya calculadas por el backend.
// El servicio nunca escribe en estas tablas.
type InvoiceRepository interface {
	// GetByID devuelve (nil, nil) si no existe. companyID vacío no filtra.
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	// GetItems devuelve las líneas en el orden en que se capturaron.
	GetItems(ctx context.Context, invoiceID string) ([]entity.LineItem, error)
}
