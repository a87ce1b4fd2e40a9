package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
)

// GofpdfRenderer pinta cada elemento en su posición absoluta. No usa salto de
// página automático: la paginación ya viene resuelta.
type GofpdfRenderer struct {
	measurer document.TextMeasurer
}

// NewGofpdfRenderer construye el renderer.
func NewGofpdfRenderer(m document.TextMeasurer) *GofpdfRenderer {
	return &GofpdfRenderer{measurer: m}
}

// Measurer medidor con el que debe componerse el documento.
func (r *GofpdfRenderer) Measurer() document.TextMeasurer { return r.measurer }

// Render genera el PDF y devuelve sus bytes.
func (r *GofpdfRenderer) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	geo := doc.Geometry
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	p.SetMargins(geo.LeftMargin, geo.TopMargin, geo.RightMargin)
	p.SetAutoPageBreak(false, geo.BottomMargin)
	p.SetTitle(doc.Title, true)
	p.SetAuthor(doc.Author, true)
	p.SetCreator("Tagihan API", true)

	d := &drawer{pdf: p, geo: geo, images: map[*document.Asset]string{}}
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.AddPage()
		for _, pl := range page.Elements {
			d.draw(pl)
		}
	}
	if p.Err() {
		return nil, fmt.Errorf("pdf: generar documento: %w", p.Error())
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: serializar documento: %w", err)
	}
	return buf.Bytes(), nil
}

type drawer struct {
	pdf    *gofpdf.Fpdf
	geo    document.Geometry
	images map[*document.Asset]string // cada asset se registra una sola vez
}

func (d *drawer) draw(pl document.Placed) {
	switch el := pl.Element.(type) {
	case document.ImageElement:
		d.image(el.Asset, d.geo.LeftMargin+el.X, pl.Y, el.Width, el.Height)
	case document.TextElement:
		d.text(el, pl.Y)
	case document.TableRowElement:
		d.row(el, pl.Y, pl.Height)
	case document.SignatureElement:
		d.signature(el, pl.Y)
	}
}

func (d *drawer) image(a *document.Asset, x, y, w, h float64) {
	if a == nil || len(a.Data) == 0 {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: imageType(a.Format)}
	name, ok := d.images[a]
	if !ok {
		name = fmt.Sprintf("asset-%d", len(d.images)+1)
		d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(a.Data))
		d.images[a] = name
	}
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func (d *drawer) text(el document.TextElement, y float64) {
	width := d.geo.ContentWidth()
	d.setText(paletteText)
	d.pdf.SetFont(fontFamily, fontStyle(el.Bold), el.Size)
	for i, l := range el.Lines {
		d.pdf.SetXY(d.geo.LeftMargin, y+float64(i)*d.geo.LineHeight)
		d.pdf.CellFormat(width, d.geo.LineHeight, toCP1252(l), "", 0, gofpdfAlign(el.Align), false, 0, "")
	}
	if el.Right != "" {
		d.pdf.SetFont(fontFamily, "", el.Size)
		d.pdf.SetXY(d.geo.LeftMargin, y)
		d.pdf.CellFormat(width, d.geo.LineHeight, toCP1252(el.Right), "", 0, "R", false, 0, "")
	}
}

func (d *drawer) row(el document.TableRowElement, y, h float64) {
	fill := paletteWhite
	txt := paletteText
	switch {
	case el.Header:
		fill, txt = palettePrimary, paletteWhite
	case el.Total:
		fill = paletteLight
	}
	d.pdf.SetDrawColor(paletteBorder.r, paletteBorder.g, paletteBorder.b)
	d.pdf.SetLineWidth(0.2)
	d.pdf.SetFillColor(fill.r, fill.g, fill.b)
	d.setText(txt)
	d.pdf.SetFont(fontFamily, fontStyle(el.Header || el.Total), el.Size)

	x := d.geo.LeftMargin
	widths := document.ColumnWidths(el.SpanUnits(), d.geo.ContentWidth())
	for i, c := range el.Cells {
		w := widths[i]
		d.pdf.Rect(x, y, w, h, "FD")
		for j, l := range c.Lines {
			d.pdf.SetXY(x+1, y+d.geo.RowPadding/2+float64(j)*d.geo.LineHeight)
			d.pdf.CellFormat(w-2, d.geo.LineHeight, toCP1252(l), "", 0, gofpdfAlign(c.Align), false, 0, "")
		}
		x += w
	}
}

func (d *drawer) signature(el document.SignatureElement, y float64) {
	half := d.geo.ContentWidth() / 2
	lh := d.geo.LineHeight
	d.setText(paletteText)
	for i, p := range []document.SignatureParty{el.Left, el.Right} {
		x := d.geo.LeftMargin + float64(i)*half
		d.line(x, y, half, p.Heading, "", el.Size)
		d.line(x, y+lh, half, p.Company, "B", el.Size)
		if p.Image != nil {
			h := el.ImageSpace * 0.9
			w := p.Image.WidthFor(h)
			if w > half {
				w = half
				h = p.Image.HeightFor(w)
			}
			d.image(p.Image, x+(half-w)/2, y+2*lh+(el.ImageSpace-h)/2, w, h)
		}
		d.line(x, y+2*lh+el.ImageSpace, half, p.Name, "BU", el.Size)
		d.line(x, y+3*lh+el.ImageSpace, half, p.Title, "", el.Size)
	}
}

func (d *drawer) line(x, y, w float64, s, style string, size float64) {
	if s == "" {
		return
	}
	d.pdf.SetFont(fontFamily, style, size)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, d.geo.LineHeight, toCP1252(s), "", 0, "C", false, 0, "")
}

func (d *drawer) setText(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func gofpdfAlign(a document.Align) string {
	switch a {
	case document.AlignCenter:
		return "C"
	case document.AlignRight:
		return "R"
	default:
		return "L"
	}
}
