package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Tagihan-api/pkg/config"
	"github.com/jhoicas/Tagihan-api/pkg/logger"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tagihan",
		Short:         "Genera tagihan (facturas en indonesio) en PDF",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newTerbilangCmd(), newTokenCmd())
	return root
}

// loadConfig configuración y logger a stderr (stdout queda para la salida).
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	l := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
	return cfg, l.WithComponent("cli"), nil
}
