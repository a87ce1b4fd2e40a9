package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/domain/document"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/assets"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/backend"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Tagihan-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tagihan-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tagihan-api/internal/interfaces/http"
	"github.com/jhoicas/Tagihan-api/pkg/config"
	"github.com/jhoicas/Tagihan-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("source", cfg.Source).
		Str("renderer", cfg.PDF.Renderer).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	m := metrics.New()

	// Fuente de tagihan: backend REST o lectura directa de Postgres.
	var source billing.InvoiceSource
	switch cfg.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewSnapshotSource(postgres.NewTxRunner(pool))
	default:
		source = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	}

	// Assets: HTTP / archivo siempre, S3 y Redis si están configurados.
	assetsBase := cfg.Assets.BaseURL
	if assetsBase == "" {
		assetsBase = cfg.Backend.BaseURL
	}
	multi := assets.MultiSource{
		HTTP: assets.NewHTTPSource(assetsBase, cfg.Assets.FetchTimeout),
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
			log.Fatal().Err(err).Msg("cliente S3")
		}
		multi.S3 = s3src
	}
	loaderOpts := []assets.Option{
		assets.WithLocations(cfg.Assets.LetterheadURL, cfg.Assets.SignatureURL),
		assets.WithTTL(cfg.Assets.CacheTTL),
		assets.WithRecorder(m),
		assets.WithLogger(log.WithComponent("assets")),
	}
	if cfg.Redis.Addr != "" {
		cache, err := assets.NewRedisCache(ctx, assets.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Sin Redis se sigue con la caché en memoria.
			log.Warn().Err(err).Msg("redis no disponible")
		} else {
			defer cache.Close()
			loaderOpts = append(loaderOpts, assets.WithSharedCache(cache))
		}
	}
	loader := assets.NewLoader(multi, loaderOpts...)

	renderer, err := infrapdf.New(cfg.PDF.Renderer)
	if err != nil {
		log.Fatal().Err(err).Msg("motor PDF")
	}

	exportUC := billing.NewExportUseCase(
		source, loader, renderer, cfg.PDF.Renderer,
		entity.Company{
			Name:        cfg.Company.Name,
			City:        cfg.Company.City,
			SignerName:  cfg.Company.SignerName,
			SignerTitle: cfg.Company.SignerTitle,
			BankAccount: cfg.Company.BankAccount,
		},
		document.A4(cfg.PDF.MarginMM),
		m,
		log.WithComponent("export"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tagihan API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Export:    exportUC,
		Metrics:   m.Handler(),
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		AppName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
