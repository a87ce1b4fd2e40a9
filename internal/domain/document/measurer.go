package document

import (
	"strings"
	"unicode/utf8"
)

// TextMeasurer parte texto en líneas que caben en width mm.
// El paquete pdf aporta métricas reales de fuente; ApproxMeasurer sirve sin motor PDF.
type TextMeasurer interface {
	SplitText(text string, size float64, bold bool, width float64) []string
}

const ptToMM = 0.3528

// ApproxMeasurer estima el ancho de cada carácter como una fracción del tamaño de letra.
type ApproxMeasurer struct {
	// CharWidth ancho medio de un carácter en unidades de tamaño de letra (0.5 por defecto).
	CharWidth float64
}

// SplitText ajusta por palabras con un ancho fijo por carácter.
func (a ApproxMeasurer) SplitText(text string, size float64, bold bool, width float64) []string {
	ratio := a.CharWidth
	if ratio <= 0 {
		ratio = 0.5
	}
	if bold {
		ratio *= 1.08
	}
	charMM := size * ptToMM * ratio
	maxChars := 1
	if charMM > 0 && width > charMM {
		maxChars = int(width / charMM)
	}
	return WrapWords(text, maxChars)
}

// WrapWords parte text en líneas de como mucho maxChars runas.
func WrapWords(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	return Wrap(text, float64(maxChars), func(s string) float64 {
		return float64(utf8.RuneCountInString(s))
	})
}

// Wrap ajuste voraz por palabras usando measure para el ancho de cada candidato.
// Cada "\n" fuerza un salto y las palabras más anchas que width se cortan por runas.
// Un texto vacío devuelve una línea vacía.
func Wrap(text string, width float64, measure func(string) float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for measure(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, rest := cutToWidth(w, width, measure)
				out = append(out, head)
				w = rest
			}
			switch {
			case line == "":
				line = w
			case measure(line+" "+w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// cutToWidth devuelve el prefijo más largo de w que cabe (al menos una runa) y el resto.
func cutToWidth(w string, width float64, measure func(string) float64) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && measure(string(r[:n+1])) <= width {
		n++
	}
	return string(r[:n]), string(r[n:])
}
