package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
)

// ToModelJournalEntry converts a domain entry header to its row. Metadata is stored as
// a JSON object; an empty map is stored as {}.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, error) {
	meta := d.Metadata
	if meta == nil {
		meta = map[string]domain.Value{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("encode metadata of entry %s: %w", d.EntryID, err)
	}
	return models.JournalEntry{
		EntryID:          d.EntryID,
		TenantID:         d.TenantID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.EntryDate.UTC(),
		Description:      d.Description,
		Reference:        d.Reference,
		SourceModule:     string(d.SourceModule),
		SourceDocumentID: d.SourceDocumentID,
		Status:           string(d.Status),
		TotalDebits:      d.TotalDebits,
		TotalCredits:     d.TotalCredits,
		PostedAt:         utcPtr(d.PostedAt),
		PostedBy:         NullableString(d.PostedBy),
		VoidedAt:         utcPtr(d.VoidedAt),
		VoidedBy:         NullableString(d.VoidedBy),
		VoidReason:       NullableString(d.VoidReason),
		Metadata:         string(raw),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainJournalEntry converts a row to a domain entry header without lines.
func ToDomainJournalEntry(m models.JournalEntry) (domain.JournalEntry, error) {
	var meta map[string]domain.Value
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &meta); err != nil {
			return domain.JournalEntry{}, fmt.Errorf("decode metadata of entry %s: %w", m.EntryID, err)
		}
	}
	if len(meta) == 0 {
		meta = nil
	}
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		TenantID:         m.TenantID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate.UTC(),
		Description:      m.Description,
		Reference:        m.Reference,
		SourceModule:     domain.SourceModule(m.SourceModule),
		SourceDocumentID: m.SourceDocumentID,
		Status:           domain.JournalStatus(m.Status),
		TotalDebits:      m.TotalDebits,
		TotalCredits:     m.TotalCredits,
		PostedAt:         utcPtr(m.PostedAt),
		PostedBy:         StringValue(m.PostedBy),
		VoidedAt:         utcPtr(m.VoidedAt),
		VoidedBy:         StringValue(m.VoidedBy),
		VoidReason:       StringValue(m.VoidReason),
		Metadata:         meta,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainJournalEntrySlice converts rows to entry headers.
func ToDomainJournalEntrySlice(ms []models.JournalEntry) ([]domain.JournalEntry, error) {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		d, err := ToDomainJournalEntry(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

// ToModelJournalLine converts a domain line to its row.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNumber:  d.LineNumber,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainJournalLineSlice converts line rows.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.JournalLine{
			LineID:      m.LineID,
			EntryID:     m.EntryID,
			LineNumber:  m.LineNumber,
			AccountID:   m.AccountID,
			Description: m.Description,
			Debit:       m.Debit,
			Credit:      m.Credit,
		}
	}
	return ds
}
