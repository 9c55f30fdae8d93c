package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// SourceModule names the kind of business record an entry was generated from.
type SourceModule string

const (
	SourceManual       SourceModule = "MANUAL"
	SourceExpense      SourceModule = "EXPENSE"
	SourceInvoice      SourceModule = "INVOICE"
	SourceStockCount   SourceModule = "STOCK_COUNT"
	SourceAssetDispose SourceModule = "ASSET_DISPOSAL"
	SourceDepreciation SourceModule = "DEPRECIATION"
	SourcePayroll      SourceModule = "PAYROLL"
)

// EntryNumberSequence is the tenant counter journal entry numbers are drawn from.
const EntryNumberSequence = "JE"

// FormatEntryNumber renders a counter value as a human readable entry number.
func FormatEntryNumber(n int64) string {
	return fmt.Sprintf("%s-%06d", EntryNumberSequence, n)
}

// JournalEntry is a balanced set of debit/credit lines recording one financial event.
type JournalEntry struct {
	EntryID          string           `json:"entryID"`
	TenantID         string           `json:"tenantID"`
	EntryNumber      string           `json:"entryNumber"`
	EntryDate        time.Time        `json:"entryDate"`
	Description      string           `json:"description"`
	Reference        string           `json:"reference"`
	SourceModule     SourceModule     `json:"sourceModule"`
	SourceDocumentID string           `json:"sourceDocumentID"`
	Status           JournalStatus    `json:"status"`
	TotalDebits      decimal.Decimal  `json:"totalDebits"`
	TotalCredits     decimal.Decimal  `json:"totalCredits"`
	PostedAt         *time.Time       `json:"postedAt,omitempty"`
	PostedBy         string           `json:"postedBy,omitempty"`
	VoidedAt         *time.Time       `json:"voidedAt,omitempty"`
	VoidedBy         string           `json:"voidedBy,omitempty"`
	VoidReason       string           `json:"voidReason,omitempty"`
	Metadata         map[string]Value `json:"metadata,omitempty"`
	Lines            []JournalLine    `json:"lines"`
	AuditFields
}

// JournalLine is one account movement within an entry. Exactly one of Debit and
// Credit is positive.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// IsDebit reports whether the line is on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Totals sums the debit and credit sides of lines.
func Totals(lines []JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// AccountIDs returns the distinct account ids referenced by lines, in first-seen order.
func AccountIDs(lines []JournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// BalanceDeltas aggregates the signed effect of lines per account.
// When reverse is set the deltas are negated, as applied by a void.
func BalanceDeltas(lines []JournalLine, accounts map[string]Account, reverse bool) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s not loaded for line %d", l.AccountID, l.LineNumber)
		}
		d, err := SignedDelta(acc.AccountType, l.Debit, l.Credit)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", l.LineNumber, err)
		}
		if reverse {
			d = d.Neg()
		}
		deltas[l.AccountID] = deltas[l.AccountID].Add(d)
	}
	return deltas, nil
}

// StatusChange is a conditional transition of a journal entry's status.
type StatusChange struct {
	From   JournalStatus
	To     JournalStatus
	UserID string
	At     time.Time
	Reason string
}

// EntryFilter narrows journal entry listings.
type EntryFilter struct {
	Status       JournalStatus
	SourceModule SourceModule
	From         *time.Time
	To           *time.Time
	Limit        int
	NextToken    *string
}
