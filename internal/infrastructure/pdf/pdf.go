// Package pdf pinta un document.Document ya paginado.
//
// Hay dos motores: maroto (por defecto) y gofpdf con posiciones absolutas.
// Ambos comparten FontMeasurer, que da a la composición las métricas reales de
// Helvetica para partir líneas.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
)

// Nombres de motor aceptados en PDF_RENDERER.
const (
	RendererMaroto = "maroto"
	RendererGofpdf = "gofpdf"
)

const fontFamily = "Helvetica"

// Renderer serializa un documento a bytes PDF.
type Renderer interface {
	Render(ctx context.Context, doc *document.Document) ([]byte, error)
	Measurer() document.TextMeasurer
}

// New devuelve el motor pedido; vacío equivale a maroto.
func New(name string) (Renderer, error) {
	measurer := NewFontMeasurer()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RendererMaroto:
		return NewMarotoRenderer(measurer), nil
	case RendererGofpdf:
		return NewGofpdfRenderer(measurer), nil
	default:
		return nil, fmt.Errorf("pdf: motor desconocido %q", name)
	}
}

// ── Paleta de colores ─────────────────────────────────────────────────────────

type rgb struct{ r, g, b int }

var (
	palettePrimary = rgb{0, 70, 127}
	paletteLight   = rgb{225, 235, 245}
	paletteBorder  = rgb{150, 150, 150}
	paletteText    = rgb{20, 20, 20}
	paletteWhite   = rgb{255, 255, 255}
)

// ── helpers ───────────────────────────────────────────────────────────────────

var cp1252 = encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

// toCP1252 las fuentes base de gofpdf solo entienden Windows-1252.
func toCP1252(s string) string {
	out, err := cp1252.String(s)
	if err != nil {
		return s
	}
	return out
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func imageType(format string) string {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}
