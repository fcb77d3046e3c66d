package main

import (
	"context"
	"fmt"
	"os"

	"airbnb-cleaner/config"
	"airbnb-cleaner/models"
	"airbnb-cleaner/services"
	"airbnb-cleaner/storage"
	"airbnb-cleaner/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithOutput(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	fmt.Println("Dataset cleaned and exported!")
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Listing cleaner starting ===")
	logger.Info("Config | input: %s | output: %s | price: [%.0f, %.0f] | nights: [%d, %d]",
		cfg.InputPath, cfg.OutputPath, cfg.PriceMin, cfg.PriceMax, cfg.MinNightsMin, cfg.MinNightsMax)

	raw, err := storage.ReadCSV(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	logger.Info("Loaded %d raw listings from %s", raw.Table().NumRows(), cfg.InputPath)

	cleaner := services.NewCleaner(logger, services.Options{
		PriceMin:     cfg.PriceMin,
		PriceMax:     cfg.PriceMax,
		MinNightsMin: int64(cfg.MinNightsMin),
		MinNightsMax: int64(cfg.MinNightsMax),
		RoomTypes:    cfg.RoomTypes,
	})
	cleaned, err := cleaner.Clean(raw)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.OutputPath)
	if err != nil {
		return err
	}
	if err := writeAndClose(csvWriter, cleaned); err != nil {
		return err
	}
	logger.Info("Clean listings saved to %s", cfg.OutputPath)

	if cfg.XLSXOutputPath != "" {
		xlsxWriter, err := storage.NewXLSXWriter(cfg.XLSXOutputPath)
		if err != nil {
			return err
		}
		if err := writeAndClose(xlsxWriter, cleaned); err != nil {
			return err
		}
		logger.Info("Clean listings saved to %s", cfg.XLSXOutputPath)
	}

	if cfg.PostgresEnabled {
		retry := utils.NewRetryConfig(cfg.MaxRetries, cfg.RetryBaseMs, logger)
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN(), cfg.PostgresTable, retry)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			if err := pgWriter.WriteContext(ctx, cleaned); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else if n, err := pgWriter.Count(ctx); err == nil {
				logger.Info("Clean listings stored in PostgreSQL (table: %s, rows: %d)", cfg.PostgresTable, n)
			}
			_ = pgWriter.Close()
		}
	}

	insightSvc := services.NewInsightService(logger)
	report, err := insightSvc.Generate(cleaned)
	if err != nil {
		logger.Warn("Insight report unavailable: %v", err)
		return nil
	}
	insightSvc.Print(report)
	return nil
}

func writeAndClose(w storage.TableWriter, cleaned *models.CleanTable) error {
	if err := w.Write(cleaned); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
