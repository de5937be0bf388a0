package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evenlyhq/receiptlens/internal/archive"
	"github.com/evenlyhq/receiptlens/internal/engine"
	"github.com/evenlyhq/receiptlens/internal/ocr"
)

// TextExtractor turns a receipt image into a transcript.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.Result, error)
}

// Enhancer produces an OCR-ready variant of a receipt image. The returned
// cleanup func removes the variant.
type Enhancer interface {
	Enhance(path string) (string, func(), error)
}

// Result carries the parsed record plus extraction metadata.
type Result struct {
	Record     engine.ReceiptRecord
	OCRText    string
	Confidence float32
	Duration   time.Duration
	EntryID    string // set when the record was archived
}

// Pipeline runs one receipt image through preprocess -> OCR -> interpret ->
// archive. Collaborator failures propagate; the interpretation stage itself
// cannot fail.
type Pipeline struct {
	Enhancer  Enhancer
	Extractor TextExtractor
	Parser    *engine.Parser
	Archive   archive.Archive // optional; nil disables archiving
	Logger    *slog.Logger
}

func NewPipeline(enh Enhancer, tx TextExtractor, parser *engine.Parser, arch archive.Archive, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Enhancer: enh, Extractor: tx, Parser: parser, Archive: arch, Logger: logger}
}

// Run scans one receipt image. source is a caller-provided label for the
// input (attachment or file name) recorded alongside the archived entry.
func (p *Pipeline) Run(ctx context.Context, imagePath, source string) (Result, error) {
	start := time.Now()

	enhanced, cleanup, err := p.Enhancer.Enhance(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("preprocess: %w", err)
	}
	defer cleanup()

	res, err := p.Extractor.Extract(ctx, enhanced)
	if err != nil {
		return Result{}, fmt.Errorf("ocr: %w", err)
	}

	rec := p.Parser.Parse(res.Text)
	out := Result{
		Record:     rec,
		OCRText:    res.Text,
		Confidence: res.Confidence,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := engine.ValidateRecordJSON(data); err != nil {
		return out, fmt.Errorf("record schema: %w", err)
	}

	if p.Archive != nil {
		entry := &archive.Entry{
			ID:         uuid.NewString(),
			Source:     source,
			Confidence: res.Confidence,
			Record:     rec,
			CreatedAt:  time.Now().UTC(),
		}
		if err := p.Archive.SaveEntry(ctx, entry); err != nil {
			return out, fmt.Errorf("archive entry: %w", err)
		}
		out.EntryID = entry.ID
	}

	out.Duration = time.Since(start)
	p.Logger.Info("scan.ok",
		"source", source,
		"merchant", rec.Merchant,
		"items", len(rec.Items),
		"total", rec.Totals.Total.StringFixed(2),
		"confidence", res.Confidence,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}
