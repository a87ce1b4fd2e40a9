package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Tagihan-api/internal/application/dto"
	"github.com/jhoicas/Tagihan-api/internal/domain"
	"github.com/jhoicas/Tagihan-api/internal/domain/document"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/internal/domain/invoice"
	"github.com/jhoicas/Tagihan-api/pkg/locale"
	"github.com/jhoicas/Tagihan-api/pkg/logger"
	"github.com/jhoicas/Tagihan-api/pkg/terbilang"
)

// ExportResult PDF generado y sus metadatos.
type ExportResult struct {
	ID       string // correlación (X-Export-ID)
	PDF      []byte
	Filename string
	Pages    int
}

// ExportUseCase genera el PDF de una tagihan: agrupa, compone y renderiza.
type ExportUseCase struct {
	source       InvoiceSource
	assets       AssetLoader
	renderer     Renderer
	rendererName string
	company      entity.Company
	geometry     document.Geometry
	recorder     ExportRecorder
	log          zerolog.Logger
}

// NewExportUseCase construye el caso de uso inyectando todas sus dependencias.
// source, assets y recorder pueden ser nil.
func NewExportUseCase(
	source InvoiceSource,
	assets AssetLoader,
	renderer Renderer,
	rendererName string,
	company entity.Company,
	geometry document.Geometry,
	recorder ExportRecorder,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		source:       source,
		assets:       assets,
		renderer:     renderer,
		rendererName: rendererName,
		company:      company,
		geometry:     geometry,
		recorder:     recorder,
		log:          log,
	}
}

// ExportByID lee la tagihan de la fuente configurada y genera su PDF.
//
// Retorna:
//   - domain.ErrNotFound      si la tagihan no existe.
//   - domain.ErrUnauthorized  / domain.ErrForbidden si el backend rechaza el token.
//   - domain.ErrInvalidPayload si el backend devuelve datos mal formados.
func (uc *ExportUseCase) ExportByID(ctx context.Context, q InvoiceQuery, filename string) (*ExportResult, error) {
	inv, err := uc.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.Export(ctx, *inv, filename)
}

// Export genera el PDF de una tagihan ya cargada.
func (uc *ExportUseCase) Export(ctx context.Context, inv entity.Invoice, filename string) (*ExportResult, error) {
	start := time.Now()
	exportID := uuid.NewString()
	log := logger.Scoped(ctx, uc.log)

	// ── 1. Assets (membrete y firma en paralelo) ──────────────────────────────
	var assets document.Assets
	if uc.assets != nil {
		assets = uc.assets.Load(ctx)
	}

	// ── 2. Agrupar y componer ─────────────────────────────────────────────────
	g := invoice.GroupLineItems(inv.Items)
	doc := document.Compose(inv, uc.company, g, assets, uc.renderer.Measurer(), uc.geometry)

	// ── 3. Renderizar ─────────────────────────────────────────────────────────
	out, err := uc.renderer.Render(ctx, doc)
	elapsed := time.Since(start)
	if uc.recorder != nil {
		uc.recorder.ObserveExport(uc.rendererName, len(doc.Pages), elapsed, err)
	}
	if err != nil {
		log.Error().Err(err).Str("export_id", exportID).Str("invoice_id", inv.ID).Msg("render fallido")
		return nil, fmt.Errorf("exportar: render: %w", err)
	}

	res := &ExportResult{
		ID:       exportID,
		PDF:      out,
		Filename: Filename(inv.Number, filename),
		Pages:    len(doc.Pages),
	}
	log.Info().
		Str("export_id", exportID).
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Int("groups", g.Len()).
		Int("pages", res.Pages).
		Int("bytes", len(out)).
		Bool("letterhead", assets.Letterhead != nil).
		Bool("signature", assets.Signature != nil).
		Dur("elapsed", elapsed).
		Msg("tagihan exportada")
	return res, nil
}

// PreviewByID agrupación y terbilang de una tagihan de la fuente, sin renderizar.
func (uc *ExportUseCase) PreviewByID(ctx context.Context, q InvoiceQuery) (*dto.InvoicePreviewResponse, error) {
	inv, err := uc.load(ctx, q)
	if err != nil {
		return nil, err
	}
	return Preview(*inv), nil
}

// Preview resume lo que mostraría el PDF.
func Preview(inv entity.Invoice) *dto.InvoicePreviewResponse {
	g := invoice.GroupLineItems(inv.Items)
	grand := invoice.GrandTotalFor(inv, g)
	words := strings.TrimSpace(inv.Options.Terbilang)
	if words == "" {
		words = terbilang.Rupiah(grand)
	}

	resp := &dto.InvoicePreviewResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		Filename:   Filename(inv.Number, ""),
		Groups:     make([]dto.GroupPreview, 0, g.Len()),
		GrandTotal: grand,
		Formatted:  locale.FormatRupiah(grand),
		Terbilang:  words,
	}
	for _, agg := range g.Ordered() {
		resp.Groups = append(resp.Groups, dto.GroupPreview{
			Key:                agg.Key,
			Label:              agg.Label,
			Items:              len(agg.Items),
			TotalQuantityUnits: agg.TotalQuantityUnits,
			TotalFuelUnits:     agg.TotalFuelUnits,
			TotalAmount:        agg.TotalAmount,
		})
	}
	return resp
}

func (uc *ExportUseCase) load(ctx context.Context, q InvoiceQuery) (*entity.Invoice, error) {
	if uc.source == nil {
		return nil, errors.New("exportar: sin fuente de tagihan configurada")
	}
	inv, err := uc.source.GetInvoice(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("exportar: obtener tagihan %s: %w", q.ID, err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
