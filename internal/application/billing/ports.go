package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
)

// InvoiceQuery identifica la tagihan a exportar. Token es el bearer del usuario,
// que se reenvía al backend; CompanyID viene de sus claims.
type InvoiceQuery struct {
	ID        string
	Token     string
	CompanyID string
}

// InvoiceSource lee una tagihan ya calculada (backend REST o Postgres).
// Devuelve (nil, nil) si no existe.
type InvoiceSource interface {
	GetInvoice(ctx context.Context, q InvoiceQuery) (*entity.Invoice, error)
}

// AssetLoader obtiene membrete y firma. Nunca falla: los assets ausentes son nil.
type AssetLoader interface {
	Load(ctx context.Context) document.Assets
}

// Renderer serializa el documento compuesto a PDF.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document) ([]byte, error)
	Measurer() document.TextMeasurer
}

// ExportRecorder recibe el resultado de cada exportación (métricas).
type ExportRecorder interface {
	ObserveExport(renderer string, pages int, elapsed time.Duration, err error)
}
