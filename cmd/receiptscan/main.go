package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/evenlyhq/receiptlens/internal/engine"
	"github.com/evenlyhq/receiptlens/internal/ocr"
	"github.com/evenlyhq/receiptlens/internal/pipeline"
	"github.com/evenlyhq/receiptlens/internal/preprocess"
)

func main() {
	fs := ff.NewFlagSet("receiptscan")
	var (
		image   = fs.StringLong("image", "", "receipt image to scan")
		text    = fs.StringLong("text", "", "pre-extracted OCR transcript to interpret instead of an image")
		lang    = fs.StringLong("lang", "eng", "tesseract language")
		verbose = fs.BoolLong("verbose", "enable debug logging")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPTLENS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	parser := engine.NewParser(logger)

	var rec engine.ReceiptRecord
	switch {
	case *text != "":
		data, err := os.ReadFile(*text)
		if err != nil {
			logger.Error("read transcript", "path", *text, "error", err)
			os.Exit(1)
		}
		rec = parser.Parse(string(data))
	case *image != "":
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		pipe := pipeline.NewPipeline(
			preprocess.NewEnhancer(logger),
			ocr.NewExtractor(ocr.Config{Language: *lang}, logger),
			parser,
			nil, // one-shot scans are not archived
			logger,
		)
		res, err := pipe.Run(ctx, *image, filepath.Base(*image))
		if err != nil {
			logger.Error("scan failed", "path", *image, "error", err)
			os.Exit(1)
		}
		rec = res.Record
	default:
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: one of --image or --text is required")
		os.Exit(2)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
