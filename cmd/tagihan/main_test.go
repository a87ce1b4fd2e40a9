package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTerbilangCmd(t *testing.T) {
	out, err := run(t, "terbilang", "1500000")
	require.NoError(t, err)
	assert.Equal(t, "Satu Juta Lima Ratus Ribu\n", out)

	out, err = run(t, "terbilang", "--rupiah", "15000000")
	require.NoError(t, err)
	assert.Equal(t, "Rp 15.000.000\nLima Belas Juta Rupiah\n", out)

	_, err = run(t, "terbilang", "abc")
	assert.Error(t, err)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{0, 70, 127, 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tagihan.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"number": "INV/2025/003",
		"recipient_name": "PT Maju Jaya",
		"date": "2025-03-01",
		"items": [
			{"name": "Excavator PC200", "days_or_hours": 8, "unit_price": 350000, "equipment_group": "PC200"},
			{"name": "Dump Truck", "days_or_hours": 4, "unit_price": 200000, "equipment_group": "DT"}
		]
	}`), 0o644))
	letterhead := filepath.Join(dir, "kop.png")
	writePNG(t, letterhead, 400, 80)

	for _, renderer := range []string{"maroto", "gofpdf"} {
		t.Run(renderer, func(t *testing.T) {
			outPath := filepath.Join(dir, renderer, "out.pdf")
			out, err := run(t, "render", "--in", in, "--out", outPath, "--letterhead", letterhead, "--renderer", renderer)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, outPath))

			data, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestRenderCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "render")
	assert.Error(t, err, "--in es obligatorio")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"items": []}`), 0o644))
	_, err = run(t, "render", "--in", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number")
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := run(t, "token", "--company", "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}
