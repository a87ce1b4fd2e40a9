package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Tagihan-api/internal/domain/document"
)

// slack de margen inferior: maroto suma alturas con redondeo propio y no debe
// abrir páginas que la composición no pidió.
const marotoBottomSlack = 3

var (
	colorPrimary = &props.Color{Red: palettePrimary.r, Green: palettePrimary.g, Blue: palettePrimary.b}
	colorLight   = &props.Color{Red: paletteLight.r, Green: paletteLight.g, Blue: paletteLight.b}
	colorBorder  = &props.Color{Red: paletteBorder.r, Green: paletteBorder.g, Blue: paletteBorder.b}
	colorText    = &props.Color{Red: paletteText.r, Green: paletteText.g, Blue: paletteText.b}
	colorWhite   = &props.Color{Red: paletteWhite.r, Green: paletteWhite.g, Blue: paletteWhite.b}
)

// MarotoRenderer pinta el documento con Maroto v2: una página maroto por página
// compuesta y una fila por elemento.
type MarotoRenderer struct {
	measurer document.TextMeasurer
}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer(m document.TextMeasurer) *MarotoRenderer {
	return &MarotoRenderer{measurer: m}
}

// Measurer medidor con el que debe componerse el documento.
func (r *MarotoRenderer) Measurer() document.TextMeasurer { return r.measurer }

// Render genera el PDF y devuelve sus bytes.
func (r *MarotoRenderer) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	geo := doc.Geometry
	bottom := geo.BottomMargin - marotoBottomSlack
	if bottom < 0 {
		bottom = 0
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(geo.LeftMargin).WithRightMargin(geo.RightMargin).
		WithTopMargin(geo.TopMargin).WithBottomMargin(bottom).
		WithMaxGridSize(document.GridSize).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: geo.FontSize, Color: colorText}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		Build()

	m := maroto.New(cfg)
	pages := make([]core.Page, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, page.New().Add(r.pageRows(p, geo)...))
	}
	m.AddPages(pages...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// pageRows convierte los elementos en filas; los huecos entre elementos se
// rellenan con filas vacías para conservar la posición vertical.
func (r *MarotoRenderer) pageRows(p *document.Page, geo document.Geometry) []core.Row {
	rows := make([]core.Row, 0, len(p.Elements)*2)
	cursor := geo.TopMargin
	for _, pl := range p.Elements {
		if gap := pl.Y - cursor; gap > 0.01 {
			rows = append(rows, row.New(gap))
		}
		rows = append(rows, elementRows(pl, geo)...)
		cursor = pl.Y + pl.Height
	}
	return rows
}

func elementRows(pl document.Placed, geo document.Geometry) []core.Row {
	switch el := pl.Element.(type) {
	case document.ImageElement:
		return []core.Row{imageRow(el, pl.Height)}
	case document.TextElement:
		return []core.Row{textRow(el, pl.Height, geo)}
	case document.TableRowElement:
		return []core.Row{tableRow(el, pl.Height, geo)}
	case document.SignatureElement:
		return signatureRows(el, geo)
	default:
		return []core.Row{row.New(pl.Height)}
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// imageRow membrete centrado; maroto escala la imagen al alto de la fila.
func imageRow(el document.ImageElement, h float64) core.Row {
	return row.New(h).Add(
		col.New(document.GridSize).Add(
			image.NewFromBytes(el.Asset.Data, marotoExtension(el.Asset.Format), props.Rect{
				Center:  true,
				Percent: 100,
			}),
		),
	)
}

func textRow(el document.TextElement, h float64, geo document.Geometry) core.Row {
	c := col.New(document.GridSize)
	style := fontstyle.Normal
	if el.Bold {
		style = fontstyle.Bold
	}
	for i, l := range el.Lines {
		c.Add(text.New(l, props.Text{
			Top: float64(i)*geo.LineHeight + 0.5, Size: el.Size, Style: style, Align: marotoAlign(el.Align),
		}))
	}
	if el.Right != "" {
		c.Add(text.New(el.Right, props.Text{
			Top: 0.5, Size: el.Size, Align: align.Right,
		}))
	}
	return row.New(h).Add(c)
}

// tableRow celdas con borde; cabecera con fondo primario, fila Total con fondo claro.
func tableRow(el document.TableRowElement, h float64, geo document.Geometry) core.Row {
	cell := &props.Cell{BorderType: border.Full, BorderColor: colorBorder, BorderThickness: 0.2}
	txtColor := colorText
	style := fontstyle.Normal
	switch {
	case el.Header:
		cell.BackgroundColor = colorPrimary
		txtColor = colorWhite
		style = fontstyle.Bold
	case el.Total:
		cell.BackgroundColor = colorLight
		style = fontstyle.Bold
	}

	units := el.SpanUnits()
	cols := make([]core.Col, 0, len(el.Cells))
	for i, c := range el.Cells {
		cc := col.New(units[i]).WithStyle(cell)
		for j, l := range c.Lines {
			cc.Add(text.New(l, props.Text{
				Top: geo.RowPadding/2 + float64(j)*geo.LineHeight, Left: 1, Right: 1,
				Size: el.Size, Style: style, Color: txtColor, Align: marotoAlign(c.Align),
			}))
		}
		cols = append(cols, cc)
	}
	return row.New(h).Add(cols...)
}

// signatureRows encabezados, espacio de firma (con imagen opcional) y nombres.
func signatureRows(el document.SignatureElement, geo document.Geometry) []core.Row {
	half := document.GridSize / 2
	lh := geo.LineHeight
	heading := func(p document.SignatureParty) core.Col {
		return col.New(half).Add(
			text.New(p.Heading, props.Text{Size: el.Size, Align: align.Center}),
			text.New(p.Company, props.Text{Top: lh, Size: el.Size, Style: fontstyle.Bold, Align: align.Center}),
		)
	}
	names := func(p document.SignatureParty) core.Col {
		return col.New(half).Add(
			text.New(p.Name, props.Text{Size: el.Size, Style: fontstyle.BoldItalic, Align: align.Center}),
			text.New(p.Title, props.Text{Top: lh, Size: el.Size, Align: align.Center}),
		)
	}
	space := func(p document.SignatureParty) core.Col {
		c := col.New(half)
		if p.Image != nil && len(p.Image.Data) > 0 {
			c.Add(image.NewFromBytes(p.Image.Data, marotoExtension(p.Image.Format), props.Rect{
				Center:  true,
				Percent: 90,
			}))
		}
		return c
	}
	return []core.Row{
		row.New(2*lh).Add(heading(el.Left), heading(el.Right)),
		row.New(el.ImageSpace).Add(space(el.Left), space(el.Right)),
		row.New(2*lh).Add(names(el.Left), names(el.Right)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func marotoAlign(a document.Align) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func marotoExtension(format string) extension.Type {
	if imageType(format) == "JPG" {
		return extension.Jpg
	}
	return extension.Png
}
