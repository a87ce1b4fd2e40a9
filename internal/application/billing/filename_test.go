package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		name, number, override, want string
	}{
		{"numero", "INV/2025/001", "", "Invoice-INV-2025-001.pdf"},
		{"sin numero", "", "", "Invoice.pdf"},
		{"solo simbolos", "///", "", "Invoice.pdf"},
		{"override", "INV/1", "Tagihan Maret", "Tagihan-Maret.pdf"},
		{"override con extension", "INV/1", "rekap.PDF", "rekap.PDF"},
		{"override sin traversal", "INV/1", "../../etc/passwd", "etc-passwd.pdf"},
		{"comillas", "A\"B", "", "Invoice-A-B.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.Filename(tc.number, tc.override))
		})
	}
}
