// tagihan genera tagihan en PDF desde la línea de comandos, sin servidor.
//
// Uso:
//
//	tagihan render --in invoice.json --out out.pdf [--letterhead kop.png] [--signature ttd.png]
//	tagihan terbilang 1500000
//	tagihan token --company <id>
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional; config.Load lo vuelve a leer vía viper, pero así también
	// quedan disponibles en el entorno del proceso.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "aviso: no se pudo leer .env: %v\n", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
