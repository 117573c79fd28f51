package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"MovieScanner/internal/config"
	"MovieScanner/internal/domain"
	"MovieScanner/internal/infrastructure/scheduler"
	"MovieScanner/internal/infrastructure/scraper"
	"MovieScanner/internal/infrastructure/storage"
	"MovieScanner/internal/infrastructure/telegram"
	"MovieScanner/internal/logging"
	"MovieScanner/internal/ports"
	"MovieScanner/internal/report"
	"MovieScanner/internal/scanner"
	"MovieScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := scraper.NewClient(
		&http.Client{Timeout: cfg.Fetch.Timeout()},
		cfg.Fetch.UserAgent,
		cfg.Fetch.RetryMax,
		cfg.Fetch.Backoff(),
	)

	registry := scanner.NewRegistry()
	registry.Register(scraper.NewMetacritic(client, cfg.Site.BaseURL, baseLogger.With("component", "scraper.metacritic")))

	site, err := registry.Resolve(cfg.Site.Scanner)
	if err != nil {
		return nil, fmt.Errorf("resolve scanner: %w", err)
	}

	var db *sql.DB
	var repository ports.MovieRepository
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	reporter := reporterFor(cfg, baseLogger)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Listing:     site,
		Detail:      site,
		Repository:  repository,
		Reporter:    reporter,
		Notifier:    notifier,
		Logger:      baseLogger.With("component", "pipeline"),
		ListingURL:  cfg.Site.ListingURL,
		Concurrency: cfg.Fetch.Concurrency,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, db: db}, nil
}

// Run executes the pipeline once, or repeatedly when scheduling is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	defer a.close()

	if !a.cfg.Scheduler.Enabled {
		return a.runOnce(ctx)
	}

	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval())
	if err := driver.Start(ctx, func(time.Time) {
		if err := a.runOnce(ctx); err != nil {
			a.logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()
	return driver.Stop(context.Background())
}

func (a *Application) runOnce(ctx context.Context) error {
	runReport, records, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("scrape run complete",
		"records", len(records),
		"processed", runReport.Summary.Processed,
		"skipped", runReport.Summary.Skipped,
		"failed", runReport.Summary.Failed)

	for _, item := range runReport.Items {
		if item.Status == domain.StatusFailed {
			a.logger.Warn("entity failed", "link", item.DetailLink, "code", item.ErrorCode, "error", item.ErrorMsg)
		}
	}
	return nil
}

func reporterFor(cfg config.Config, baseLogger *slog.Logger) ports.Reporter {
	return report.NewRenderer(cfg.Report.OutputDir, cfg.Report.Plots, baseLogger.With("component", "report"))
}

func (a *Application) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
