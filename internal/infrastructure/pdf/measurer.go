package pdf

import (
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
)

// FontMeasurer implementa document.TextMeasurer con las métricas de Helvetica de gofpdf.
// Es seguro para uso concurrente.
type FontMeasurer struct {
	mu  sync.Mutex
	pdf *gofpdf.Fpdf
}

// NewFontMeasurer construye el medidor.
func NewFontMeasurer() *FontMeasurer {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetFont(fontFamily, "", 10)
	return &FontMeasurer{pdf: p}
}

// SplitText parte text para que cada línea quepa en width mm.
func (m *FontMeasurer) SplitText(text string, size float64, bold bool, width float64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return document.Wrap(text, width, func(s string) float64 {
		return m.pdf.GetStringWidth(toCP1252(s))
	})
}

// StringWidth ancho en mm de s.
func (m *FontMeasurer) StringWidth(s string, size float64, bold bool) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return m.pdf.GetStringWidth(toCP1252(s))
}
