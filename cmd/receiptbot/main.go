package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/evenlyhq/receiptlens/internal/archive"
	"github.com/evenlyhq/receiptlens/internal/bot"
	"github.com/evenlyhq/receiptlens/internal/common"
	"github.com/evenlyhq/receiptlens/internal/engine"
	"github.com/evenlyhq/receiptlens/internal/ocr"
	"github.com/evenlyhq/receiptlens/internal/pipeline"
	"github.com/evenlyhq/receiptlens/internal/preprocess"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	arch, err := openArchive(cfg, logger)
	if err != nil {
		logger.Error("open archive", "driver", cfg.Archive.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := arch.Close(); cerr != nil {
			logger.Error("close archive", "error", cerr)
		}
	}()

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
	}, logger)
	pipe := pipeline.NewPipeline(
		preprocess.NewEnhancer(logger),
		extractor,
		engine.NewParser(logger),
		arch,
		logger,
	)

	b, err := bot.New(cfg.Bot.Token, pipe, cfg.Bot.DownloadDir, logger)
	if err != nil {
		logger.Error("create bot", "error", err)
		os.Exit(1)
	}
	if err := b.Open(); err != nil {
		logger.Error("connect to discord", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			logger.Error("close discord session", "error", cerr)
		}
	}()

	logger.Info("bot running", "archive", cfg.Archive.Driver)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
}

func openArchive(cfg *common.Config, logger *slog.Logger) (archive.Archive, error) {
	switch cfg.Archive.Driver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return archive.NewPostgresArchive(ctx, cfg.Archive.PostgresDSN, logger)
	default:
		return archive.NewBoltArchive(cfg.Archive.BoltPath, logger)
	}
}
