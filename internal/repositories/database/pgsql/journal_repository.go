package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference, source_module,
	source_document_id, status, total_debits, total_credits, posted_at, posted_by, voided_at, voided_by, void_reason,
	metadata, created_at, created_by, last_updated_at, last_updated_by`

// metadata is read back as text so it lands in the model's string field unchanged.
const entrySelectColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference, source_module,
	source_document_id, status, total_debits, total_credits, posted_at, posted_by, voided_at, voided_by, void_reason,
	metadata::text AS metadata, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, description, debit, credit`

type PgxJournalRepository struct {
	db querier
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	m, err := getOne[models.JournalEntry](ctx, r.db, "journal entry "+entryID,
		`SELECT `+entrySelectColumns+` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2`, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	return r.withLines(ctx, m)
}

func (r *PgxJournalRepository) FindActiveEntryBySource(ctx context.Context, tenantID string, module domain.SourceModule, documentID string) (*domain.JournalEntry, error) {
	m, err := getOne[models.JournalEntry](ctx, r.db, fmt.Sprintf("%s entry for %s", module, documentID),
		`SELECT `+entrySelectColumns+` FROM journal_entries
		WHERE tenant_id = $1 AND source_module = $2 AND source_document_id = $3 AND status <> $4
		ORDER BY created_at DESC LIMIT 1`,
		tenantID, string(module), documentID, string(domain.Void))
	if err != nil {
		return nil, err
	}
	return r.withLines(ctx, m)
}

// ListEntries pages newest first on (entry_date, entry_number).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	query := `SELECT ` + entrySelectColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []any{tenantID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Status != "" {
		query += ` AND status = ` + arg(string(filter.Status))
	}
	if filter.SourceModule != "" {
		query += ` AND source_module = ` + arg(string(filter.SourceModule))
	}
	if filter.From != nil {
		query += ` AND entry_date >= ` + arg(filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND entry_date <= ` + arg(filter.To.UTC())
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastNumber, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		d := arg(lastDate)
		query += ` AND (entry_date < ` + d + ` OR (entry_date = ` + d + ` AND entry_number < ` + arg(lastNumber) + `))`
	}
	query += ` ORDER BY entry_date DESC, entry_number DESC LIMIT ` + arg(limit+1)

	rows, err := getAll[models.JournalEntry](ctx, r.db, "journal entries of tenant "+tenantID, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(rows) > limit {
		last := rows[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		next = &token
		rows = rows[:limit]
	}
	entries, err := mapping.ToDomainJournalEntrySlice(rows)
	if err != nil {
		return nil, nil, err
	}
	return entries, next, nil
}

// ListPostedActivity totals posted lines per account in SQL.
func (r *PgxJournalRepository) ListPostedActivity(ctx context.Context, tenantID string, asOf *time.Time) ([]domain.AccountActivity, error) {
	query := `SELECT l.account_id, a.account_type,
		COALESCE(SUM(l.debit), 0) AS total_debits, COALESCE(SUM(l.credit), 0) AS total_credits
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1 AND e.status = $2`
	args := []any{tenantID, string(domain.Posted)}
	if asOf != nil {
		query += ` AND e.entry_date <= $3`
		args = append(args, asOf.UTC())
	}
	query += ` GROUP BY l.account_id, a.account_type ORDER BY l.account_id`

	rows, err := getAll[models.AccountActivity](ctx, r.db, "posted activity of tenant "+tenantID, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainActivitySlice(rows), nil
}

// SaveEntry inserts the header and its lines.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO journal_entries (`+entryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17::text::jsonb, $18, $19, $20, $21)`,
		m.EntryID, m.TenantID, m.EntryNumber, m.EntryDate, m.Description, m.Reference, m.SourceModule,
		m.SourceDocumentID, m.Status, m.TotalDebits, m.TotalCredits, m.PostedAt, m.PostedBy, m.VoidedAt, m.VoidedBy,
		m.VoidReason, m.Metadata, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, "journal entry "+entry.EntryNumber)
	}
	return r.insertLines(ctx, entry.EntryID, entry.Lines)
}

func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE journal_entries SET entry_date = $1, description = $2, reference = $3, metadata = $4::text::jsonb,
		total_debits = $5, total_credits = $6, last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $9 AND entry_id = $10 AND status = $11`,
		m.EntryDate, m.Description, m.Reference, m.Metadata, m.TotalDebits, m.TotalCredits, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.EntryID, string(domain.Draft))
	if err != nil {
		return mapError(err, "journal entry "+entry.EntryID)
	}
	if err := transitioned(ctx, r.db, tag, "journal entry "+entry.EntryID, string(domain.Draft),
		`SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2`, entry.TenantID, entry.EntryID); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1`, entry.EntryID); err != nil {
		return mapError(err, "lines of journal entry "+entry.EntryID)
	}
	return r.insertLines(ctx, entry.EntryID, entry.Lines)
}

func (r *PgxJournalRepository) TransitionStatus(ctx context.Context, tenantID, entryID string, change domain.StatusChange) error {
	var (
		query string
		args  []any
	)
	switch change.To {
	case domain.Posted:
		query = `UPDATE journal_entries SET status = $1, posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $4 AND entry_id = $5 AND status = $6`
		args = []any{string(change.To), change.At.UTC(), change.UserID, tenantID, entryID, string(change.From)}
	case domain.Void:
		query = `UPDATE journal_entries SET status = $1, voided_at = $2, voided_by = $3, void_reason = $4,
			last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $5 AND entry_id = $6 AND status = $7`
		args = []any{string(change.To), change.At.UTC(), change.UserID, change.Reason, tenantID, entryID, string(change.From)}
	default:
		return fmt.Errorf("%w: cannot move an entry to %s", apperrors.ErrValidation, change.To)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "journal entry "+entryID)
	}
	return transitioned(ctx, r.db, tag, "journal entry "+entryID, string(change.From),
		`SELECT status FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2`, tenantID, entryID)
}

// insertLines copies the lines in a single round trip through a pgx batch.
func (r *PgxJournalRepository) insertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		batch.Queue(`INSERT INTO journal_lines (`+lineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.LineID, entryID, m.LineNumber, m.AccountID, m.Description, m.Debit, m.Credit)
	}
	return execBatch(ctx, r.db, batch, "lines of journal entry "+entryID)
}

func (r *PgxJournalRepository) withLines(ctx context.Context, m models.JournalEntry) (*domain.JournalEntry, error) {
	entry, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, err
	}
	lines, err := getAll[models.JournalLine](ctx, r.db, "lines of journal entry "+m.EntryID,
		`SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number`, m.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = mapping.ToDomainJournalLineSlice(lines)
	return &entry, nil
}

type PgxSequenceRepository struct {
	db querier
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// Next bumps the tenant's counter and returns the new value in one statement.
func (r *PgxSequenceRepository) Next(ctx context.Context, tenantID, name string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO sequences (tenant_id, name, value) VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, name) DO UPDATE SET value = sequences.value + 1 RETURNING value`,
		tenantID, name).Scan(&n)
	if err != nil {
		return 0, mapError(err, "sequence "+name)
	}
	return n, nil
}
