package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/application/dto"
	"github.com/jhoicas/Tagihan-api/internal/domain/document"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/assets"
	infrapdf "github.com/jhoicas/Tagihan-api/internal/infrastructure/pdf"
)

type renderOpts struct {
	in         string
	out        string
	letterhead string
	signature  string
	renderer   string
}

func newRenderCmd() *cobra.Command {
	var o renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Genera el PDF de una tagihan en JSON",
		Example: `  tagihan render --in tagihan.json
  tagihan render --in tagihan.json --out enero.pdf --letterhead kop.png --renderer gofpdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.in, "in", "i", "", "JSON de la tagihan (mismo formato que POST /api/invoices/pdf)")
	f.StringVarP(&o.out, "out", "o", "", "archivo de salida (por defecto Invoice-{número}.pdf)")
	f.StringVar(&o.letterhead, "letterhead", "", "membrete: archivo, URL o s3://")
	f.StringVar(&o.signature, "signature", "", "firma: archivo, URL o s3://")
	f.StringVar(&o.renderer, "renderer", "", "maroto | gofpdf (por defecto PDF_RENDERER)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRender(cmd *cobra.Command, o renderOpts) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	raw, err := os.ReadFile(o.in)
	if err != nil {
		return fmt.Errorf("leer %s: %w", o.in, err)
	}
	var req dto.InvoiceRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("JSON inválido en %s: %w", o.in, err)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}
	inv, err := req.ToEntity()
	if err != nil {
		return err
	}

	name := o.renderer
	if name == "" {
		name = cfg.PDF.Renderer
	}
	renderer, err := infrapdf.New(name)
	if err != nil {
		return err
	}

	src := assets.MultiSource{
		HTTP: assets.NewHTTPSource(cfg.Assets.BaseURL, cfg.Assets.FetchTimeout),
		File: assets.FileSource{},
	}
	if cfg.Assets.S3Enabled() {
		s3src, err := assets.NewS3Source(ctx, assets.S3Config{
			Bucket:    cfg.Assets.S3Bucket,
			Endpoint:  cfg.Assets.S3Endpoint,
			Region:    cfg.Assets.S3Region,
			AccessKey: cfg.Assets.S3AccessKey,
			SecretKey: cfg.Assets.S3SecretKey,
		})
		if err != nil {
			return err
		}
		src.S3 = s3src
	}
	loader := assets.NewLoader(src,
		assets.WithLocations(o.letterhead, o.signature),
		assets.WithLogger(log),
	)

	uc := billing.NewExportUseCase(nil, loader, renderer, name,
		entity.Company{
			Name:        cfg.Company.Name,
			City:        cfg.Company.City,
			SignerName:  cfg.Company.SignerName,
			SignerTitle: cfg.Company.SignerTitle,
			BankAccount: cfg.Company.BankAccount,
		},
		document.A4(cfg.PDF.MarginMM), nil, log,
	)
	res, err := uc.Export(ctx, inv, req.Filename)
	if err != nil {
		return err
	}

	out := o.out
	if out == "" {
		out = res.Filename
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d páginas)\n", out, res.Pages)
	return nil
}
