package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Language    string // default "eng"
	TessdataDir string

	PSM int // 6 works well for the uniform text block of a receipt
	OEM int // 1 = LSTM; leave 0 to use the tesseract default
}

// Result carries the extracted transcript plus extraction metadata.
type Result struct {
	Text       string
	Method     string // "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// Extractor shells out to tesseract to turn a receipt image into text.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// Extract runs tesseract over an image file and returns the normalized
// transcript. The text is treated as opaque downstream; only whitespace and
// ruled-line artifacts are cleaned here.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return Result{Warnings: []string{string(errb)}}, fmt.Errorf("tesseract: %w", err)
	}

	txt := Normalize(string(out))
	res := Result{
		Text:       txt,
		Method:     "image-ocr",
		Language:   e.cfg.Language,
		Duration:   time.Since(start),
		Confidence: heuristicConfidence(txt),
	}
	e.logger.Debug("ocr ok",
		"path", path,
		"bytes", len(txt),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
