package services

import (
	"context"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers.
	ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the ledger state machine: DRAFT -> POSTED -> VOID and DRAFT -> VOID.
type JournalWriterSvc interface {
	// CreateEntry validates and stores a DRAFT entry. No balance is affected.
	CreateEntry(ctx context.Context, tenantID, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry replaces the fields and lines of a DRAFT entry.
	UpdateEntry(ctx context.Context, tenantID, entryID, userID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// PostEntry applies the entry's balance deltas and marks it POSTED.
	PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// VoidEntry marks a DRAFT or POSTED entry VOID, reversing balances of a POSTED one.
	VoidEntry(ctx context.Context, tenantID, entryID, userID, reason string) (*domain.JournalEntry, error)

	// DeleteEntry soft-deletes a DRAFT entry. POSTED entries must be voided instead.
	DeleteEntry(ctx context.Context, tenantID, entryID, userID string) error
}

// LedgerPoster is used by posting adapters that already hold a unit of work.
type LedgerPoster interface {
	// CreateAndPostInTx validates, numbers, stores and posts entry using repos.
	CreateAndPostInTx(ctx context.Context, repos portsrepo.Repositories, tenantID, userID string, entry domain.JournalEntry) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	LedgerPoster
}
