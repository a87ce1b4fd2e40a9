package document

// Geometry medidas de página en mm y tamaños de letra en pt.
type Geometry struct {
	PageWidth     float64
	PageHeight    float64
	TopMargin     float64
	BottomMargin  float64
	LeftMargin    float64
	RightMargin   float64
	LetterheadGap float64
	// MaxLetterheadHeight limita el membrete; si se supera se reduce el ancho.
	MaxLetterheadHeight float64

	FontSize      float64
	SmallFontSize float64
	LineHeight    float64 // alto de una línea de texto
	RowPadding    float64 // relleno vertical de una celda
	BlockGap      float64 // separación entre bloques
	SignatureArea float64 // espacio para la firma manuscrita
}

// A4 geometría por defecto con márgenes de margin mm.
func A4(margin float64) Geometry {
	if margin <= 0 {
		margin = 15
	}
	return Geometry{
		PageWidth:           210,
		PageHeight:          297,
		TopMargin:           margin,
		BottomMargin:        margin,
		LeftMargin:          margin,
		RightMargin:         margin,
		LetterheadGap:       4,
		MaxLetterheadHeight: 45,
		FontSize:            10,
		SmallFontSize:       9,
		LineHeight:          5,
		RowPadding:          2,
		BlockGap:            4,
		SignatureArea:       22,
	}
}

// ContentWidth ancho útil entre márgenes.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.LeftMargin - g.RightMargin
}

// Limit coordenada Y a partir de la cual el contenido desborda.
func (g Geometry) Limit() float64 {
	return g.PageHeight - g.BottomMargin
}
