package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Tagihan-api/pkg/locale"
	"github.com/jhoicas/Tagihan-api/pkg/terbilang"
)

func newTerbilangCmd() *cobra.Command {
	var rupiah bool
	cmd := &cobra.Command{
		Use:     "terbilang <número>",
		Short:   "Escribe un número en palabras (indonesio)",
		Example: "  tagihan terbilang 1500000\n  tagihan terbilang --rupiah 3572000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("%q no es un número", args[0])
			}
			w := cmd.OutOrStdout()
			if rupiah {
				fmt.Fprintf(w, "%s\n%s\n", locale.FormatRupiah(n), terbilang.Rupiah(n))
				return nil
			}
			fmt.Fprintln(w, terbilang.FromDecimal(n))
			return nil
		},
	}
	cmd.Flags().BoolVar(&rupiah, "rupiah", false, "añade el importe formateado y la moneda")
	return cmd
}
