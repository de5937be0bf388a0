package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/evenlyhq/receiptlens/internal/archive"
	"github.com/evenlyhq/receiptlens/internal/export"
)

func main() {
	fs := ff.NewFlagSet("receiptexport")
	var (
		dbPath  = fs.StringLong("db", "receiptlens.db", "bolt archive path")
		outPath = fs.StringLong("out", "receipts.xlsx", "output workbook path")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPTLENS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	arch, err := archive.NewBoltArchive(*dbPath, logger)
	if err != nil {
		logger.Error("open archive", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := arch.Close(); cerr != nil {
			logger.Error("close archive", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	buf, err := export.NewService(arch, logger).ExportXLSX(ctx)
	if err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, buf, 0o644); err != nil {
		logger.Error("write workbook", "path", *outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *outPath, "bytes", len(buf))
}
