// Package document arma el modelo de páginas de una tagihan, independiente del motor PDF.
//
// Compose recorre los bloques en orden con un cursor vertical: cuando un bloque no
// cabe en la página actual se abre otra, se vuelve a dibujar el membrete y el cursor
// vuelve al margen superior. Los renderers (maroto, gofpdf) solo pintan lo que ya
// está posicionado.
package document

// GridSize unidades de ancho de una fila de tabla (igual que el grid de maroto).
const GridSize = 100

// Document resultado de Compose.
type Document struct {
	Pages    []*Page
	Geometry Geometry
	Title    string
	Author   string
}

// Page una página con sus elementos en orden vertical.
type Page struct {
	Number   int
	Elements []Placed
}

// Placed elemento con su posición vertical absoluta en mm.
type Placed struct {
	Y       float64
	Height  float64
	Element Element
}

// Element es uno de ImageElement, TextElement, TableRowElement o SignatureElement.
type Element interface {
	element()
}

// Align alineación horizontal.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ImageElement imagen escalada proporcionalmente (membrete).
type ImageElement struct {
	Asset  *Asset
	X      float64 // desplazamiento desde el margen izquierdo
	Width  float64
	Height float64
}

// TextElement líneas ya partidas al ancho de contenido. Right, si no está vacío,
// se pinta alineado a la derecha en la primera línea.
type TextElement struct {
	Lines []string
	Right string
	Size  float64
	Bold  bool
	Align Align
}

// TableRowElement una fila de tabla. Columns son los anchos en unidades de GridSize;
// cada Cell ocupa Span columnas consecutivas.
type TableRowElement struct {
	Columns []int
	Cells   []Cell
	Header  bool
	Total   bool
	Size    float64
}

// Cell celda de tabla. Lines es Text ya partido al ancho de la celda.
type Cell struct {
	Text  string
	Lines []string
	Align Align
	Span  int
}

// SignatureElement bloque de firmas a dos columnas.
type SignatureElement struct {
	Left       SignatureParty
	Right      SignatureParty
	Size       float64
	ImageSpace float64 // alto reservado para la firma (mm)
}

// SignatureParty una columna del bloque de firmas. Image es opcional.
type SignatureParty struct {
	Heading string
	Company string
	Name    string
	Title   string
	Image   *Asset
}

func (ImageElement) element()     {}
func (TextElement) element()      {}
func (TableRowElement) element()  {}
func (SignatureElement) element() {}

// Asset imagen ya decodificada. Width y Height son los píxeles naturales.
type Asset struct {
	Data   []byte
	Format string // "png" o "jpg"
	Width  int
	Height int
}

// HeightFor alto en mm al escalar la imagen a width mm manteniendo la proporción.
func (a *Asset) HeightFor(width float64) float64 {
	if a == nil || a.Width <= 0 || a.Height <= 0 {
		return 0
	}
	return width * float64(a.Height) / float64(a.Width)
}

// WidthFor ancho en mm para un alto dado.
func (a *Asset) WidthFor(height float64) float64 {
	if a == nil || a.Width <= 0 || a.Height <= 0 {
		return 0
	}
	return height * float64(a.Width) / float64(a.Height)
}

// Assets imágenes opcionales de la tagihan. Cualquiera puede ser nil.
type Assets struct {
	Letterhead *Asset
	Signature  *Asset
}

// ColumnWidths convierte unidades de grid a mm para un ancho total.
func ColumnWidths(columns []int, total float64) []float64 {
	out := make([]float64, len(columns))
	for i, u := range columns {
		out[i] = total * float64(u) / GridSize
	}
	return out
}

// SpanUnits suma las unidades de grid que ocupa cada celda de la fila.
func (r TableRowElement) SpanUnits() []int {
	out := make([]int, 0, len(r.Cells))
	col := 0
	for _, c := range r.Cells {
		span := c.Span
		if span < 1 {
			span = 1
		}
		units := 0
		for i := col; i < col+span && i < len(r.Columns); i++ {
			units += r.Columns[i]
		}
		out = append(out, units)
		col += span
	}
	return out
}
