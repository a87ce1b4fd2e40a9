// Package locale formatea montos y fechas para documentos en indonesio (id-ID).
package locale

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder impreso cuando una fecha o cantidad no aplica.
const Placeholder = "-"

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// MonthName devuelve el nombre indonesio del mes.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// FormatDate devuelve "DD <Bulan> YYYY", ej. "05 Januari 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// FormatDatePtr es FormatDate tolerante a nil.
func FormatDatePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return FormatDate(*t)
}

// FormatISODate acepta "2006-01-02" o RFC3339. Vacío o inválido devuelve Placeholder.
func FormatISODate(s string) string {
	t, ok := ParseISODate(s)
	if !ok {
		return Placeholder
	}
	return FormatDate(t)
}

// ParseISODate interpreta las variantes de fecha que envía el backend.
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatRupiah devuelve el monto sin decimales con separador de miles: "Rp 15.000.000".
// Los negativos llevan el signo delante del símbolo: "-Rp 1.000".
func FormatRupiah(d decimal.Decimal) string {
	d = d.Round(0)
	if d.IsNegative() {
		return "-Rp " + groupInt(d.Neg())
	}
	return "Rp " + groupInt(d)
}

// FormatNumber formatea cantidades: "1.234", "7,5", "0,25". Máximo dos decimales.
func FormatNumber(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	intPart := d.Truncate(0)
	out := sign + groupInt(intPart)
	frac := d.Sub(intPart)
	if frac.IsZero() {
		return out
	}
	digits := strings.TrimRight(strings.TrimPrefix(frac.StringFixed(2), "0."), "0")
	return out + "," + digits
}

// FormatQuantityOrPlaceholder imprime Placeholder cuando la cantidad es cero.
func FormatQuantityOrPlaceholder(d decimal.Decimal) string {
	if d.IsZero() {
		return Placeholder
	}
	return FormatNumber(d)
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// groupInt agrupa la parte entera de d (no negativo) con ".".
// Fuera del rango de int64 se agrupan los dígitos de d.String().
func groupInt(d decimal.Decimal) string {
	d = d.Truncate(0)
	if d.LessThanOrEqual(maxInt64) {
		p := message.NewPrinter(language.Indonesian)
		return p.Sprintf("%d", d.IntPart())
	}
	digits := d.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
