package locale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tagihan-api/pkg/locale"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":           "Rp 0",
		"500":         "Rp 500",
		"1000":        "Rp 1.000",
		"15000000":    "Rp 15.000.000",
		"1234567.6":   "Rp 1.234.568",
		"-2500":       "-Rp 2.500",
		"99999999999": "Rp 99.999.999.999",
	}
	for in, want := range cases {
		assert.Equal(t, want, locale.FormatRupiah(decimal.RequireFromString(in)), "in=%s", in)
	}
}

func TestFormatRupiah_FueraDeInt64(t *testing.T) {
	cases := map[string]string{
		"9223372036854775807":      "Rp 9.223.372.036.854.775.807",
		"9223372036854775808":      "Rp 9.223.372.036.854.775.808",
		"123456789012345678901":    "Rp 123.456.789.012.345.678.901",
		"-123456789012345678901":   "-Rp 123.456.789.012.345.678.901",
		"1000000000000000000000.4": "Rp 1.000.000.000.000.000.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, locale.FormatRupiah(decimal.RequireFromString(in)), "in=%s", in)
	}
	assert.Equal(t, "12.345.678.901.234.567.890,5", locale.FormatNumber(decimal.RequireFromString("12345678901234567890.5")))
}

func TestFormatNumber(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"8":       "8",
		"7.5":     "7,5",
		"0.25":    "0,25",
		"1234":    "1.234",
		"1234.10": "1.234,1",
		"-3.75":   "-3,75",
	}
	for in, want := range cases {
		assert.Equal(t, want, locale.FormatNumber(decimal.RequireFromString(in)), "in=%s", in)
	}
}

func TestFormatQuantityOrPlaceholder(t *testing.T) {
	assert.Equal(t, "-", locale.FormatQuantityOrPlaceholder(decimal.Zero))
	assert.Equal(t, "120", locale.FormatQuantityOrPlaceholder(decimal.NewFromInt(120)))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05 Januari 2025", locale.FormatDate(d))
	assert.Equal(t, "31 Desember 2024", locale.FormatDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", locale.FormatDatePtr(nil))
}

func TestFormatISODate(t *testing.T) {
	assert.Equal(t, "17 Agustus 2025", locale.FormatISODate("2025-08-17"))
	assert.Equal(t, "01 Mei 2024", locale.FormatISODate("2024-05-01T10:00:00Z"))
	assert.Equal(t, "-", locale.FormatISODate(""))
	assert.Equal(t, "-", locale.FormatISODate("bukan tanggal"))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Maret", locale.MonthName(time.March))
	assert.Equal(t, "", locale.MonthName(time.Month(13)))
}
