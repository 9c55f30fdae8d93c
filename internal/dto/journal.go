package dto

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal entry. Exactly one of Debit and Credit
// must be positive.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit" binding:"dgte=0,cents"`
	Credit      decimal.Decimal `json:"credit" binding:"dgte=0,cents"`
}

// CreateJournalEntryRequest defines the data needed to create a DRAFT journal entry.
type CreateJournalEntryRequest struct {
	EntryDate        time.Time               `json:"entryDate" binding:"required"`
	Description      string                  `json:"description" binding:"required"`
	Reference        string                  `json:"reference"`
	SourceModule     domain.SourceModule     `json:"sourceModule"`
	SourceDocumentID string                  `json:"sourceDocumentID"`
	Metadata         map[string]domain.Value `json:"metadata"`
	Lines            []JournalLineRequest    `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces the editable fields of a DRAFT entry. Lines, when
// provided, replace the full line set.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time              `json:"entryDate"`
	Description *string                 `json:"description"`
	Reference   *string                 `json:"reference"`
	Metadata    map[string]domain.Value `json:"metadata"`
	Lines       []JournalLineRequest    `json:"lines" binding:"omitempty,min=2,dive"`
}

// VoidJournalEntryRequest carries the reason recorded on a void.
type VoidJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status       string  `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	SourceModule string  `form:"sourceModule"`
	From         string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To           string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit        int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken    *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                  `json:"entryID"`
	EntryNumber      string                  `json:"entryNumber"`
	EntryDate        time.Time               `json:"entryDate"`
	Description      string                  `json:"description"`
	Reference        string                  `json:"reference"`
	SourceModule     domain.SourceModule     `json:"sourceModule"`
	SourceDocumentID string                  `json:"sourceDocumentID,omitempty"`
	Status           domain.JournalStatus    `json:"status"`
	TotalDebits      decimal.Decimal         `json:"totalDebits"`
	TotalCredits     decimal.Decimal         `json:"totalCredits"`
	PostedAt         *time.Time              `json:"postedAt,omitempty"`
	PostedBy         string                  `json:"postedBy,omitempty"`
	VoidedAt         *time.Time              `json:"voidedAt,omitempty"`
	VoidedBy         string                  `json:"voidedBy,omitempty"`
	VoidReason       string                  `json:"voidReason,omitempty"`
	Metadata         map[string]domain.Value `json:"metadata,omitempty"`
	Lines            []JournalLineResponse   `json:"lines,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			LineNumber:  l.LineNumber,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		SourceModule:     e.SourceModule,
		SourceDocumentID: e.SourceDocumentID,
		Status:           e.Status,
		TotalDebits:      e.TotalDebits,
		TotalCredits:     e.TotalCredits,
		PostedAt:         e.PostedAt,
		PostedBy:         e.PostedBy,
		VoidedAt:         e.VoidedAt,
		VoidedBy:         e.VoidedBy,
		VoidReason:       e.VoidReason,
		Metadata:         e.Metadata,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
