package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Tagihan-api/pkg/jwt"
)

// newTokenCmd firma un token de prueba con JWT_SECRET para llamar a la API en local.
func newTokenCmd() *cobra.Command {
	var userID, companyID, role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un bearer de prueba firmado con JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET no definido")
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, companyID, role, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&userID, "user", "local", "user_id")
	f.StringVar(&companyID, "company", "", "company_id")
	f.StringVar(&role, "role", "admin", "role")
	f.IntVar(&minutes, "minutes", 60, "vigencia en minutos")
	return cmd
}
