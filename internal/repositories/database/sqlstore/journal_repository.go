package sqlstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/pagination"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference, source_module,
	source_document_id, status, total_debits, total_credits, posted_at, posted_by, voided_at, voided_by, void_reason,
	metadata, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, description, debit, credit`

const defaultPageSize = 20

type journalRepository struct {
	db sqlx.ExtContext
	d  dialect
}

var _ portsrepo.JournalRepository = (*journalRepository)(nil)

func (r *journalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = ? AND entry_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, entryID); err != nil {
		return nil, mapError(err, "journal entry "+entryID)
	}
	return r.withLines(ctx, m)
}

func (r *journalRepository) FindActiveEntryBySource(ctx context.Context, tenantID string, module domain.SourceModule, documentID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE tenant_id = ? AND source_module = ? AND source_document_id = ? AND status <> ?
		ORDER BY created_at DESC LIMIT 1`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, string(module), documentID, string(domain.Void)); err != nil {
		return nil, mapError(err, fmt.Sprintf("%s entry for %s", module, documentID))
	}
	return r.withLines(ctx, m)
}

// ListEntries pages newest first on (entry_date, entry_number).
func (r *journalRepository) ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = ?`
	args := []interface{}{tenantID}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.SourceModule != "" {
		query += ` AND source_module = ?`
		args = append(args, string(filter.SourceModule))
	}
	if filter.From != nil {
		query += ` AND entry_date >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND entry_date <= ?`
		args = append(args, filter.To.UTC())
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastDate, lastNumber, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (entry_date < ? OR (entry_date = ? AND entry_number < ?))`
		args = append(args, lastDate, lastDate, lastNumber)
	}
	query += ` ORDER BY entry_date DESC, entry_number DESC LIMIT ?`
	args = append(args, limit+1)

	var rows []models.JournalEntry
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, nil, mapError(err, "journal entries of tenant "+tenantID)
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

// ListPostedActivity totals posted lines per account in Go so that SQLite's TEXT
// decimals are never summed as floating point.
func (r *journalRepository) ListPostedActivity(ctx context.Context, tenantID string, asOf *time.Time) ([]domain.AccountActivity, error) {
	query := `SELECT l.account_id, a.account_type, l.debit AS total_debits, l.credit AS total_credits
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = ? AND e.status = ?`
	args := []interface{}{tenantID, string(domain.Posted)}
	if asOf != nil {
		query += ` AND e.entry_date <= ?`
		args = append(args, asOf.UTC())
	}

	var rows []models.AccountActivity
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError(err, "posted activity of tenant "+tenantID)
	}

	totals := make(map[string]*models.AccountActivity)
	for _, row := range rows {
		t, ok := totals[row.AccountID]
		if !ok {
			t = &models.AccountActivity{AccountID: row.AccountID, AccountType: row.AccountType, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
			totals[row.AccountID] = t
		}
		t.TotalDebits = t.TotalDebits.Add(row.TotalDebits)
		t.TotalCredits = t.TotalCredits.Add(row.TotalCredits)
	}
	out := make([]models.AccountActivity, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return mapping.ToDomainActivitySlice(out), nil
}

func (r *journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return err
	}
	query := `INSERT INTO journal_entries (` + entryColumns + `) VALUES (:entry_id, :tenant_id, :entry_number, :entry_date,
		:description, :reference, :source_module, :source_document_id, :status, :total_debits, :total_credits, :posted_at,
		:posted_by, :voided_at, :voided_by, :void_reason, :metadata, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, m); err != nil {
		return mapError(err, "journal entry "+entry.EntryNumber)
	}
	return r.insertLines(ctx, entry.EntryID, entry.Lines)
}

func (r *journalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE journal_entries SET entry_date = ?, description = ?, reference = ?, metadata = ?, total_debits = ?,
		total_credits = ?, last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND entry_id = ? AND status = ?`,
		m.EntryDate, m.Description, m.Reference, m.Metadata, m.TotalDebits, m.TotalCredits, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.EntryID, string(domain.Draft))
	if err != nil {
		return mapError(err, "journal entry "+entry.EntryID)
	}
	if err := transitioned(ctx, r.db, res, "journal entry "+entry.EntryID, string(domain.Draft),
		`SELECT status FROM journal_entries WHERE tenant_id = ? AND entry_id = ?`, entry.TenantID, entry.EntryID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_lines WHERE entry_id = ?`, entry.EntryID); err != nil {
		return mapError(err, "lines of journal entry "+entry.EntryID)
	}
	return r.insertLines(ctx, entry.EntryID, entry.Lines)
}

func (r *journalRepository) TransitionStatus(ctx context.Context, tenantID, entryID string, change domain.StatusChange) error {
	var (
		query string
		args  []interface{}
	)
	switch change.To {
	case domain.Posted:
		query = `UPDATE journal_entries SET status = ?, posted_at = ?, posted_by = ?, last_updated_at = ?, last_updated_by = ?`
		args = []interface{}{string(change.To), change.At.UTC(), change.UserID, change.At.UTC(), change.UserID}
	case domain.Void:
		query = `UPDATE journal_entries SET status = ?, voided_at = ?, voided_by = ?, void_reason = ?, last_updated_at = ?, last_updated_by = ?`
		args = []interface{}{string(change.To), change.At.UTC(), change.UserID, change.Reason, change.At.UTC(), change.UserID}
	default:
		return fmt.Errorf("%w: cannot move an entry to %s", apperrors.ErrValidation, change.To)
	}
	query += ` WHERE tenant_id = ? AND entry_id = ? AND status = ?`
	args = append(args, tenantID, entryID, string(change.From))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "journal entry "+entryID)
	}
	return transitioned(ctx, r.db, res, "journal entry "+entryID, string(change.From),
		`SELECT status FROM journal_entries WHERE tenant_id = ? AND entry_id = ?`, tenantID, entryID)
}

func (r *journalRepository) insertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		rows[i] = mapping.ToModelJournalLine(l)
		rows[i].EntryID = entryID
	}
	query := `INSERT INTO journal_lines (` + lineColumns + `) VALUES (:line_id, :entry_id, :line_number, :account_id, :description, :debit, :credit)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, rows); err != nil {
		return mapError(err, "lines of journal entry "+entryID)
	}
	return nil
}

func (r *journalRepository) withLines(ctx context.Context, m models.JournalEntry) (*domain.JournalEntry, error) {
	entry, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, err
	}
	var lines []models.JournalLine
	if err := sqlx.SelectContext(ctx, r.db, &lines,
		`SELECT `+lineColumns+` FROM journal_lines WHERE entry_id = ? ORDER BY line_number`, m.EntryID); err != nil {
		return nil, mapError(err, "lines of journal entry "+m.EntryID)
	}
	entry.Lines = mapping.ToDomainJournalLineSlice(lines)
	return &entry, nil
}

type sequenceRepository struct {
	db sqlx.ExtContext
	d  dialect
}

var _ portsrepo.SequenceRepository = (*sequenceRepository)(nil)

// Next bumps the counter in one statement. MySQL reports the new value through
// LAST_INSERT_ID, SQLite through RETURNING.
func (r *sequenceRepository) Next(ctx context.Context, tenantID, name string) (int64, error) {
	what := "sequence " + name
	if r.d.isMySQL() {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO sequences (tenant_id, name, value) VALUES (?, ?, LAST_INSERT_ID(1))
			ON DUPLICATE KEY UPDATE value = LAST_INSERT_ID(value + 1)`, tenantID, name)
		if err != nil {
			return 0, mapError(err, what)
		}
		n, err := res.LastInsertId()
		if err != nil {
			return 0, mapError(err, what)
		}
		return n, nil
	}

	var n int64
	err := sqlx.GetContext(ctx, r.db, &n,
		`INSERT INTO sequences (tenant_id, name, value) VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, name) DO UPDATE SET value = sequences.value + 1 RETURNING value`, tenantID, name)
	if err != nil {
		return 0, mapError(err, what)
	}
	return n, nil
}
