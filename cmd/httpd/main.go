// Command httpd runs the extraction HTTP service: it loads configuration and
// the offense taxonomy, wires the extraction engine, and serves the API with
// graceful shutdown.
package main

import (
	"context"
	"os"

	"github.com/campuswatch/extractor/internal/api"
	"github.com/campuswatch/extractor/internal/classifier"
	"github.com/campuswatch/extractor/internal/config"
	"github.com/campuswatch/extractor/internal/extractor"
	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/ocrclient"
	"github.com/campuswatch/extractor/internal/processor"
	"github.com/campuswatch/extractor/internal/taxonomy"
	"github.com/campuswatch/extractor/internal/telemetry"
)

func main() {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		// Logger is not up yet; stderr is all we have.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.Must(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer func() { _ = logger.Sync() }()

	logger.Info("starting extractor service",
		logging.String("name", cfg.Service.Name),
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
	)

	// The taxonomy load is the one fail-fast step: the service must never
	// classify against a partially loaded table.
	tax, err := taxonomy.Load(cfg.Extraction.TaxonomyPath, logger)
	if err != nil {
		logger.Fatal("failed to load offense taxonomy", logging.Error(err))
	}

	tel := telemetry.NewProvider()
	tel.SetTaxonomyEntries(tax.Len())

	offenses := classifier.New(tax, logger)
	engine := extractor.NewEngine(offenses, logger,
		extractor.WithTelemetry(tel),
		extractor.WithReviewThreshold(cfg.Extraction.ReviewThreshold),
	)
	batch := processor.NewBatchProcessor(engine, cfg.Service.Concurrency, logger, tel)
	ocr := ocrclient.NewClient(cfg.OCR.ServiceURL, cfg.OCR.Timeout)

	handler := api.NewHandler(engine, batch, tax, ocr, tel, logger,
		cfg.Service.MaxBatchItems, cfg.Extraction.ReviewThreshold)

	server := api.NewServer(api.ServerConfig{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		JWTSecret:      cfg.Auth.JWTSecret,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	}, handler, tel, logger)

	if err := server.RunWithGracefulShutdown(context.Background()); err != nil {
		logger.Fatal("server failed", logging.Error(err))
	}
}
