package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/evenlyhq/receiptlens/internal/archive"
)

// Service is a tiny façade over the archive that produces XLSX bytes.
type Service struct {
	archive archive.Archive
	logger  *slog.Logger
}

func NewService(a archive.Archive, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{archive: a, logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) with one row per archived
// receipt, oldest first.
func (s *Service) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	entries, err := s.archive.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Date",
		"Time",
		"Merchant",
		"Items",
		"Subtotal",
		"Total",
		"Source",
		"Archived At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		rec := e.Record
		write(1, rec.Date)
		write(2, rec.Time)
		write(3, rec.Merchant)
		write(4, len(rec.Items))
		write(5, rec.Totals.Subtotal.StringFixed(2))
		write(6, rec.Totals.Total.StringFixed(2))
		write(7, e.Source)
		write(8, e.CreatedAt.Format("2006-01-02 15:04"))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "E", "F", 12)
	_ = f.SetColWidth(sheet, "G", "G", 36)
	_ = f.SetColWidth(sheet, "H", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
