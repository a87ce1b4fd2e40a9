package billing

import "strings"

const defaultFilenameBase = "Invoice"

// Filename nombre del adjunto: override si viene (con ".pdf" añadido si falta),
// si no "Invoice-{número}.pdf". Sin número devuelve "Invoice.pdf".
func Filename(number, override string) string {
	if o := sanitizeFilename(override); o != "" {
		if !strings.HasSuffix(strings.ToLower(o), ".pdf") {
			o += ".pdf"
		}
		return o
	}
	if n := sanitizeFilename(number); n != "" {
		return defaultFilenameBase + "-" + n + ".pdf"
	}
	return defaultFilenameBase + ".pdf"
}

// sanitizeFilename deja letras, dígitos, '.', '_' y '-'; el resto pasa a '-'.
func sanitizeFilename(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(s) {
		ok := r == '.' || r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			r = '-'
		}
		if r == '-' {
			if dash {
				continue
			}
			dash = true
		} else {
			dash = false
		}
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-.")
}
