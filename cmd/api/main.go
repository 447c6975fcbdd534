package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/ledgerview/ledgerview-api/internal/config"
	"github.com/ledgerview/ledgerview-api/internal/handlers"
	"github.com/ledgerview/ledgerview-api/internal/logger"
	"github.com/ledgerview/ledgerview-api/internal/middleware"
	"github.com/ledgerview/ledgerview-api/internal/services"
	"github.com/ledgerview/ledgerview-api/internal/utils"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Validate the operations file up front so a bad path fails fast
	validator := services.NewFileValidator(cfg.MaxSourceBytes)
	result, err := validator.ValidateFile(cfg.OperationsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.OperationsFile).Msg("operations file check failed")
	}
	if !result.Valid {
		log.Fatal().Strs("errors", result.Errors).Str("file", cfg.OperationsFile).Msg("operations file rejected")
	}
	for _, warning := range result.Warnings {
		log.Warn().Str("file", cfg.OperationsFile).Msg(warning)
	}

	loader := services.NewLoader(log)
	enricher := services.NewHTTPEnricher(
		cfg.RatesURL,
		cfg.QuotesURL,
		cfg.QuotesAPIKey,
		cfg.EnrichmentTimeout,
		log,
	)
	reporter := services.NewReporter(loader, enricher, cfg.OperationsFile, cfg.UserSettingsFile, log)

	var reportsHandler *handlers.ReportsHandler
	if cfg.EnableArchive {
		archive, err := services.NewArchiveService(cfg.ArchiveBucket, cfg.ArchiveRegion, cfg.AWSEndpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize report archive")
		}
		log.Info().Str("bucket", cfg.ArchiveBucket).Msg("report archive enabled")
		reportsHandler = handlers.NewReportsHandlerWithArchive(reporter, archive, cfg.ReportsDir, log)
	} else {
		reportsHandler = handlers.NewReportsHandler(reporter, cfg.ReportsDir, log)
	}

	app := fiber.New(fiber.Config{
		AppName:      "ledgerview API v1.0",
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(middleware.CORS())

	app.Get("/health", func(c fiber.Ctx) error {
		return utils.SuccessResponse(c, fiber.Map{
			"status":  "ok",
			"service": "ledgerview-api",
		})
	})

	v1 := app.Group("/v1")
	v1.Get("/report/dashboard", reportsHandler.GetDashboard)
	v1.Get("/report/category", reportsHandler.GetCategoryReport)
	v1.Get("/report/cards", reportsHandler.GetCardsReport)
	v1.Get("/report/monthly", reportsHandler.GetMonthlyReport)
	v1.Get("/report/top", reportsHandler.GetTopReport)
	v1.Get("/report/archive/*", reportsHandler.GetArchivedReport)
	v1.Delete("/report/archive/*", reportsHandler.DeleteArchivedReport)
	v1.Get("/search", reportsHandler.Search)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Str("operations", cfg.OperationsFile).Msg("ledgerview API is running")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
