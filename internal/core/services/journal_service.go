package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
)

const deletedReason = "deleted"

// journalService owns the entry state machine and is the only writer of account balances.
type journalService struct {
	BaseService
}

// NewJournalService creates a new JournalService.
func NewJournalService(store portsrepo.Store, opts ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{BaseService: newBaseService(store, opts...)}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func linesFromRequest(reqs []dto.JournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.JournalLine{
			AccountID:   r.AccountID,
			Description: r.Description,
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	return lines
}

// prepareEntry numbers and rounds the lines, checks the entry balances and that every
// account exists in the tenant and is active. Totals are set on entry.
func (s *journalService) prepareEntry(ctx context.Context, repos portsrepo.Repositories, entry *domain.JournalEntry) error {
	if strings.TrimSpace(entry.Description) == "" {
		return fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}
	for i := range entry.Lines {
		l := &entry.Lines[i]
		if l.LineID == "" {
			l.LineID = uuid.NewString()
		}
		l.EntryID = entry.EntryID
		l.LineNumber = i + 1
	}
	accounting.RoundLines(entry.Lines)

	debits, credits, err := accounting.ValidateJournalBalance(entry.Lines)
	if err != nil {
		return err
	}
	entry.TotalDebits, entry.TotalCredits = debits, credits

	ids := domain.AccountIDs(entry.Lines)
	accounts, err := repos.Accounts.FindAccountsByIDs(ctx, entry.TenantID, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, acc.Code, id)
		}
	}
	return nil
}

// ensureSourceFree rejects a second live entry for the same source document.
func ensureSourceFree(ctx context.Context, repos portsrepo.Repositories, entry domain.JournalEntry) error {
	if entry.SourceDocumentID == "" {
		return nil
	}
	existing, err := repos.Journals.FindActiveEntryBySource(ctx, entry.TenantID, entry.SourceModule, entry.SourceDocumentID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s %s already has entry %s (%s)", apperrors.ErrConflict,
			entry.SourceModule, entry.SourceDocumentID, existing.EntryNumber, existing.Status)
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return err
	}
}

// insertDraft assigns the next entry number and stores entry as DRAFT.
func (s *journalService) insertDraft(ctx context.Context, repos portsrepo.Repositories, entry *domain.JournalEntry) error {
	if err := s.prepareEntry(ctx, repos, entry); err != nil {
		return err
	}
	if err := ensureSourceFree(ctx, repos, *entry); err != nil {
		return err
	}
	n, err := repos.Sequences.Next(ctx, entry.TenantID, domain.EntryNumberSequence)
	if err != nil {
		return fmt.Errorf("failed to allocate entry number: %w", err)
	}
	entry.EntryNumber = domain.FormatEntryNumber(n)
	entry.Status = domain.Draft
	return repos.Journals.SaveEntry(ctx, *entry)
}

func (s *journalService) CreateEntry(ctx context.Context, tenantID, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	source := req.SourceModule
	if source == "" {
		source = domain.SourceManual
	}
	entry := domain.JournalEntry{
		EntryID:          uuid.NewString(),
		TenantID:         tenantID,
		EntryDate:        domain.DateOf(req.EntryDate),
		Description:      req.Description,
		Reference:        req.Reference,
		SourceModule:     source,
		SourceDocumentID: req.SourceDocumentID,
		Metadata:         req.Metadata,
		Lines:            linesFromRequest(req.Lines),
		AuditFields:      domain.NewAuditFields(userID, s.Now()),
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return s.insertDraft(ctx, repos, &entry)
	})
	if err != nil {
		s.LogWarn(ctx, "Journal entry rejected", slog.String("tenant_id", tenantID), slog.String("error", err.Error()))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, tenantID, entryID, userID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	var updated *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.Journals.FindEntryByID(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s, only DRAFT entries can be edited", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
		}
		if req.EntryDate != nil {
			entry.EntryDate = domain.DateOf(*req.EntryDate)
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.Reference != nil {
			entry.Reference = *req.Reference
		}
		if req.Metadata != nil {
			entry.Metadata = req.Metadata
		}
		if len(req.Lines) > 0 {
			entry.Lines = linesFromRequest(req.Lines)
		}
		if err := s.prepareEntry(ctx, repos, entry); err != nil {
			return err
		}
		entry.Touch(userID, s.Now())
		if err := repos.Journals.ReplaceLines(ctx, *entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// postInTx flips a DRAFT entry to POSTED and applies its balance deltas.
func (s *journalService) postInTx(ctx context.Context, repos portsrepo.Repositories, tenantID, entryID, userID string, now time.Time) (*domain.JournalEntry, error) {
	entry, err := repos.Journals.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}
	if _, _, err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
		return nil, err
	}

	change := domain.StatusChange{From: domain.Draft, To: domain.Posted, UserID: userID, At: now}
	if err := repos.Journals.TransitionStatus(ctx, tenantID, entryID, change); err != nil {
		return nil, err
	}

	ids := domain.AccountIDs(entry.Lines)
	accounts, err := repos.Accounts.FindAccountsByIDsForUpdate(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: cannot post to inactive account %s", apperrors.ErrValidation, acc.Code)
		}
	}
	deltas, err := domain.BalanceDeltas(entry.Lines, accounts, false)
	if err != nil {
		return nil, err
	}
	if err := repos.Accounts.ApplyBalanceDeltas(ctx, tenantID, deltas, userID, now); err != nil {
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = userID
	entry.Touch(userID, now)
	return entry, nil
}

func (s *journalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		posted, err = s.postInTx(ctx, repos, tenantID, entryID, userID, s.Now())
		return err
	})
	if err != nil {
		s.LogWarn(ctx, "Journal entry not posted", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", posted.EntryNumber))
	return posted, nil
}

// CreateAndPostInTx is the adapters' way into the ledger. entry carries the lines, date,
// description and source; everything else is assigned here.
func (s *journalService) CreateAndPostInTx(ctx context.Context, repos portsrepo.Repositories, tenantID, userID string, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	now := s.Now()
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	entry.TenantID = tenantID
	entry.EntryDate = domain.DateOf(entry.EntryDate)
	if entry.SourceModule == "" {
		entry.SourceModule = domain.SourceManual
	}
	entry.AuditFields = domain.NewAuditFields(userID, now)

	if err := s.insertDraft(ctx, repos, &entry); err != nil {
		return nil, err
	}
	return s.postInTx(ctx, repos, tenantID, entry.EntryID, userID, now)
}

func (s *journalService) VoidEntry(ctx context.Context, tenantID, entryID, userID, reason string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a void reason is required", apperrors.ErrValidation)
	}
	var voided *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		voided, err = s.voidInTx(ctx, repos, tenantID, entryID, userID, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry voided", slog.String("entry_id", entryID), slog.String("reason", reason))
	return voided, nil
}

// voidInTx voids a DRAFT entry outright and a POSTED one by reversing its deltas.
// Reversal is allowed on accounts deactivated since posting.
func (s *journalService) voidInTx(ctx context.Context, repos portsrepo.Repositories, tenantID, entryID, userID, reason string) (*domain.JournalEntry, error) {
	entry, err := repos.Journals.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	from := entry.Status

	switch from {
	case domain.Void:
		return nil, fmt.Errorf("%w: entry %s is already VOID", apperrors.ErrConflict, entry.EntryNumber)
	case domain.Draft, domain.Posted:
	default:
		return nil, fmt.Errorf("%w: entry %s has unknown status %s", apperrors.ErrConflict, entry.EntryNumber, from)
	}

	change := domain.StatusChange{From: from, To: domain.Void, UserID: userID, At: now, Reason: reason}
	if err := repos.Journals.TransitionStatus(ctx, tenantID, entryID, change); err != nil {
		return nil, err
	}

	if from == domain.Posted {
		accounts, err := repos.Accounts.FindAccountsByIDsForUpdate(ctx, tenantID, domain.AccountIDs(entry.Lines))
		if err != nil {
			return nil, err
		}
		deltas, err := domain.BalanceDeltas(entry.Lines, accounts, true)
		if err != nil {
			return nil, err
		}
		if err := repos.Accounts.ApplyBalanceDeltas(ctx, tenantID, deltas, userID, now); err != nil {
			return nil, err
		}
	}

	entry.Status = domain.Void
	entry.VoidedAt = &now
	entry.VoidedBy = userID
	entry.VoidReason = reason
	entry.Touch(userID, now)
	return entry, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, tenantID, entryID, userID string) error {
	return s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.Journals.FindEntryByID(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry %s is %s, void it instead of deleting", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
		}
		_, err = s.voidInTx(ctx, repos, tenantID, entryID, userID, deletedReason)
		return err
	})
}

func (s *journalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.store.Repos().Journals.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	filter := domain.EntryFilter{
		Status:       domain.JournalStatus(params.Status),
		SourceModule: domain.SourceModule(params.SourceModule),
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if params.From != "" {
		from, err := time.Parse(time.DateOnly, params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, params.From)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(time.DateOnly, params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, params.To)
		}
		filter.To = &to
	}

	entries, next, err := s.store.Repos().Journals.ListEntries(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: next,
	}, nil
}
