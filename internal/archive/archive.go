package archive

import (
	"context"
	"time"

	"github.com/evenlyhq/receiptlens/internal/engine"
)

// Entry is one archived parse result.
type Entry struct {
	ID         string               `json:"id"`
	Source     string               `json:"source"` // original attachment or file name
	Confidence float32              `json:"confidence"`
	Record     engine.ReceiptRecord `json:"record"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Archive persists parse results for history and export.
type Archive interface {
	SaveEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListEntries(ctx context.Context) ([]*Entry, error)
	Close() error
}
