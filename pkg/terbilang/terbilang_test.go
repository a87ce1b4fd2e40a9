package terbilang_test

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tagihan-api/pkg/terbilang"
)

func TestFromInt64_Valores(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "Nol"},
		{1, "Satu"},
		{9, "Sembilan"},
		{10, "Sepuluh"},
		{11, "Sebelas"},
		{15, "Lima Belas"},
		{19, "Sembilan Belas"},
		{20, "Dua Puluh"},
		{21, "Dua Puluh Satu"},
		{99, "Sembilan Puluh Sembilan"},
		{100, "Seratus"},
		{111, "Seratus Sebelas"},
		{250, "Dua Ratus Lima Puluh"},
		{1000, "Seribu"},
		{1001, "Seribu Satu"},
		{2500, "Dua Ribu Lima Ratus"},
		{100_000, "Seratus Ribu"},
		{1_000_000, "Satu Juta"},
		{1_500_000, "Satu Juta Lima Ratus Ribu"},
		{15_000_000, "Lima Belas Juta"},
		{2_000_000_000, "Dua Miliar"},
		{3_000_000_000_001, "Tiga Triliun Satu"},
		{999_999_999_999_999, "Sembilan Ratus Sembilan Puluh Sembilan Triliun Sembilan Ratus Sembilan Puluh Sembilan Miliar Sembilan Ratus Sembilan Puluh Sembilan Juta Sembilan Ratus Sembilan Puluh Sembilan Ribu Sembilan Ratus Sembilan Puluh Sembilan"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, terbilang.FromInt64(tc.n), "n=%d", tc.n)
	}
}

func TestFromInt64_PrefijosIrregulares(t *testing.T) {
	assert.Regexp(t, "^Seratus", terbilang.FromInt64(100))
	assert.Regexp(t, "^Seribu", terbilang.FromInt64(1000))
	assert.Regexp(t, "^Seratus", terbilang.FromInt64(199))
	assert.Regexp(t, "^Seribu", terbilang.FromInt64(1999))
}

func TestFromInt64_Negativo(t *testing.T) {
	assert.Equal(t, "Minus "+terbilang.FromInt64(5), terbilang.FromInt64(-5))
	assert.Equal(t, "Minus Satu Juta", terbilang.FromInt64(-1_000_000))
}

func TestFromInt64_Desborde(t *testing.T) {
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromInt64(1_000_000_000_000_000))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromInt64(2_000_000_000_000_000))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromInt64(-2_000_000_000_000_000))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromInt64(math.MinInt64))
}

// La descomposición en millones es recursiva: words(n) = words(n/1e6) Juta words(n%1e6).
func TestFromInt64_DescomposicionJuta(t *testing.T) {
	for _, n := range []int64{1_000_000, 1_000_001, 7_250_000, 12_345_678, 999_999_999, 500_000_000} {
		want := terbilang.FromInt64(n/1_000_000) + " Juta"
		if rem := n % 1_000_000; rem != 0 {
			want += " " + terbilang.FromInt64(rem)
		}
		assert.Equal(t, want, terbilang.FromInt64(n), "n=%d", n)
	}
}

func TestFromInt64_SinEspaciosDobles(t *testing.T) {
	for n := int64(0); n < 3000; n += 7 {
		s := terbilang.FromInt64(n)
		assert.NotContains(t, s, "  ", "n=%d", n)
		assert.Equal(t, strings.TrimSpace(s), s, "n=%d", n)
	}
}

// La entrada fraccionaria no es un error: se devuelve un texto fijo.
func TestFromFloat_NoEntero(t *testing.T) {
	assert.Equal(t, terbilang.NonIntegerText, terbilang.FromFloat(2.5))
	assert.Equal(t, terbilang.NonIntegerText, terbilang.FromFloat(-0.1))
	assert.Equal(t, terbilang.NonIntegerText, terbilang.FromFloat(math.NaN()))
}

func TestFromFloat_Desborde(t *testing.T) {
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromFloat(2e15))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromFloat(math.Inf(1)))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromFloat(math.Inf(-1)))
}

func TestFromFloat_Enteros(t *testing.T) {
	assert.Equal(t, "Nol", terbilang.FromFloat(0))
	assert.Equal(t, "Lima Belas", terbilang.FromFloat(15))
	assert.Equal(t, "Satu Juta Lima Ratus Ribu", terbilang.FromFloat(1.5e6))
}

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, "Seratus Ribu", terbilang.FromDecimal(decimal.NewFromInt(100_000)))
	assert.Equal(t, terbilang.NonIntegerText, terbilang.FromDecimal(decimal.RequireFromString("10.25")))
	assert.Equal(t, terbilang.TooLargeText, terbilang.FromDecimal(decimal.New(2, 15)))
}

func TestRupiah_Redondea(t *testing.T) {
	assert.Equal(t, "Lima Belas Juta Rupiah", terbilang.Rupiah(decimal.NewFromInt(15_000_000)))
	assert.Equal(t, "Seribu Rupiah", terbilang.Rupiah(decimal.RequireFromString("999.5")))
	assert.Equal(t, "Nol Rupiah", terbilang.Rupiah(decimal.Zero))
}
