package repositories

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines ordered by line number.
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindActiveEntryBySource returns the non-void entry generated from a source document, or ErrNotFound.
	FindActiveEntryBySource(ctx context.Context, tenantID string, module domain.SourceModule, documentID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers (without lines) newest first using token-based pagination.
	ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)

	// ListPostedActivity sums debits and credits of POSTED lines per account. When asOf is set
	// only entries dated on or before it are included.
	ListPostedActivity(ctx context.Context, tenantID string, asOf *time.Time) ([]domain.AccountActivity, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry inserts the entry header and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines rewrites header fields and the full line set of a DRAFT entry.
	// Returns ErrConflict when the entry is no longer DRAFT.
	ReplaceLines(ctx context.Context, entry domain.JournalEntry) error

	// TransitionStatus moves an entry from change.From to change.To in one conditional
	// update. Returns ErrConflict when the stored status is not change.From.
	TransitionStatus(ctx context.Context, tenantID, entryID string, change domain.StatusChange) error
}

// JournalRepository combines all journal repository interfaces
type JournalRepository interface {
	JournalReader
	JournalWriter
}

// SequenceRepository hands out per-tenant counters.
type SequenceRepository interface {
	// Next increments the named counter and returns the new value in a single statement.
	Next(ctx context.Context, tenantID, name string) (int64, error)
}
