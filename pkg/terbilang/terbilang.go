// Package terbilang convierte montos enteros a su forma en palabras en indonesio
// ("terbilang"), tal como se imprime al pie de las tagihan.
//
// Escalas soportadas: Ribu (10^3), Juta (10^6), Miliar (10^9) y Triliun (10^12).
// A partir de 10^15 se devuelve TooLargeText; una entrada no entera devuelve
// NonIntegerText. Ninguno de los dos casos es un error: el texto se imprime tal cual.
package terbilang

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// NonIntegerText se devuelve cuando la entrada tiene parte fraccionaria.
	NonIntegerText = "Angka harus berupa bilangan bulat"
	// TooLargeText se devuelve cuando |n| >= 10^15.
	TooLargeText = "Angka terlalu besar"

	zeroWord  = "Nol"
	minusWord = "Minus"

	limit = 1_000_000_000_000_000
)

var satuan = [...]string{
	"", "Satu", "Dua", "Tiga", "Empat", "Lima",
	"Enam", "Tujuh", "Delapan", "Sembilan", "Sepuluh", "Sebelas",
}

var scales = []struct {
	value uint64
	word  string
}{
	{1_000_000_000_000, "Triliun"},
	{1_000_000_000, "Miliar"},
	{1_000_000, "Juta"},
}

// FromInt64 devuelve el terbilang de n.
func FromInt64(n int64) string {
	if n == 0 {
		return zeroWord
	}
	if n < 0 {
		// -(n+1)+1 evita el desbordamiento con math.MinInt64.
		u := uint64(-(n + 1)) + 1
		if u >= limit {
			return TooLargeText
		}
		return join(minusWord, words(u))
	}
	if uint64(n) >= limit {
		return TooLargeText
	}
	return words(uint64(n))
}

// FromFloat acepta cualquier float64. NaN y valores con decimales devuelven
// NonIntegerText; ±Inf y magnitudes >= 10^15 devuelven TooLargeText.
func FromFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return NonIntegerText
	case math.IsInf(f, 0):
		return TooLargeText
	case f != math.Trunc(f):
		return NonIntegerText
	case math.Abs(f) >= limit:
		return TooLargeText
	}
	return FromInt64(int64(f))
}

// FromDecimal es la variante para montos decimal.Decimal.
func FromDecimal(d decimal.Decimal) string {
	if !d.IsInteger() {
		return NonIntegerText
	}
	if d.Abs().GreaterThanOrEqual(decimal.New(1, 15)) {
		return TooLargeText
	}
	return FromInt64(d.IntPart())
}

// Rupiah redondea d a unidades y añade la moneda: 15000000 -> "Lima Belas Juta Rupiah".
func Rupiah(d decimal.Decimal) string {
	return FromDecimal(d.Round(0)) + " Rupiah"
}

// words descompone n recursivamente; 0 produce "" para que los restos nulos desaparezcan.
func words(n uint64) string {
	switch {
	case n < 12:
		return satuan[n]
	case n < 20:
		return join(words(n-10), "Belas")
	case n < 100:
		return join(words(n/10), "Puluh", words(n%10))
	case n < 200:
		return join("Seratus", words(n-100))
	case n < 1000:
		return join(words(n/100), "Ratus", words(n%100))
	case n < 2000:
		return join("Seribu", words(n-1000))
	case n < 1_000_000:
		return join(words(n/1000), "Ribu", words(n%1000))
	}
	for _, s := range scales {
		if n >= s.value {
			return join(words(n/s.value), s.word, words(n%s.value))
		}
	}
	return ""
}

// join descarta fragmentos vacíos, une con un espacio y colapsa espacios repetidos.
func join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}
