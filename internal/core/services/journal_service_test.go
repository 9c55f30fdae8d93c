package services_test

import (
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

func (s *LedgerSuite) TestCreateEntry_DraftDoesNotTouchBalances() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("5000"))
	s.Require().NoError(err)

	s.Equal(domain.Draft, entry.Status)
	s.Equal("JE-000001", entry.EntryNumber)
	s.Equal(domain.SourceManual, entry.SourceModule)
	s.Equal("5000.00", entry.TotalDebits.StringFixed(2))
	s.Equal("0.00", s.balance("1000"))
	s.Equal("0.00", s.balance("3000"))
}

func (s *LedgerSuite) TestCreateEntry_Unbalanced() {
	req := s.capitalInjection("5000")
	req.Lines[1] = s.line("3000", "", "4999.99")

	_, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestCreateEntry_InactiveAccount() {
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, testTenant, s.accounts["3000"], testUser))

	_, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestEntryNumbersIncrease() {
	first, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("1"))
	s.Require().NoError(err)
	second, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("2"))
	s.Require().NoError(err)

	s.Equal("JE-000001", first.EntryNumber)
	s.Equal("JE-000002", second.EntryNumber)
	s.Less(first.EntryNumber, second.EntryNumber)
}

func (s *LedgerSuite) TestPostAndVoidRoundTrip() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("5000"))
	s.Require().NoError(err)

	posted, err := s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)
	s.Require().NotNil(posted.PostedAt)
	s.Equal(testUser, posted.PostedBy)
	s.Equal("5000.00", s.balance("1000"))
	s.Equal("5000.00", s.balance("3000"))

	voided, err := s.svc.Journal.VoidEntry(s.ctx, testTenant, entry.EntryID, testUser, "entered twice")
	s.Require().NoError(err)
	s.Equal(domain.Void, voided.Status)
	s.Equal("entered twice", voided.VoidReason)
	s.Equal("0.00", s.balance("1000"))
	s.Equal("0.00", s.balance("3000"))
}

func (s *LedgerSuite) TestDoublePostAndDoubleVoidConflict() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)
	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal("100.00", s.balance("1000"))

	_, err = s.svc.Journal.VoidEntry(s.ctx, testTenant, entry.EntryID, testUser, "mistake")
	s.Require().NoError(err)
	_, err = s.svc.Journal.VoidEntry(s.ctx, testTenant, entry.EntryID, testUser, "mistake")
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal("0.00", s.balance("1000"))
}

func (s *LedgerSuite) TestVoidRequiresReason() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)

	_, err = s.svc.Journal.VoidEntry(s.ctx, testTenant, entry.EntryID, testUser, "")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestVoidDraftLeavesBalances() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)

	voided, err := s.svc.Journal.VoidEntry(s.ctx, testTenant, entry.EntryID, testUser, "not needed")
	s.Require().NoError(err)
	s.Equal(domain.Void, voided.Status)
	s.Equal("0.00", s.balance("1000"))

	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerSuite) TestUpdateEntry_OnlyDraft() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)

	desc := "Owner capital, first tranche"
	updated, err := s.svc.Journal.UpdateEntry(s.ctx, testTenant, entry.EntryID, testUser, dto.UpdateJournalEntryRequest{
		Description: &desc,
		Lines: []dto.JournalLineRequest{
			s.line("1000", "250", ""),
			s.line("3000", "", "250"),
		},
	})
	s.Require().NoError(err)
	s.Equal(desc, updated.Description)
	s.Equal("250.00", updated.TotalCredits.StringFixed(2))
	s.Len(updated.Lines, 2)

	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.Require().NoError(err)
	s.Equal("250.00", s.balance("1000"))

	_, err = s.svc.Journal.UpdateEntry(s.ctx, testTenant, entry.EntryID, testUser, dto.UpdateJournalEntryRequest{Description: &desc})
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerSuite) TestDeleteEntry() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Journal.DeleteEntry(s.ctx, testTenant, entry.EntryID, testUser))

	got, err := s.svc.Journal.GetEntry(s.ctx, testTenant, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Void, got.Status)
	s.Equal("deleted", got.VoidReason)

	posted, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)
	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, posted.EntryID, testUser)
	s.Require().NoError(err)
	s.ErrorIs(s.svc.Journal.DeleteEntry(s.ctx, testTenant, posted.EntryID, testUser), apperrors.ErrConflict)
}

func (s *LedgerSuite) TestGetEntry_OtherTenant() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("100"))
	s.Require().NoError(err)

	_, err = s.svc.Journal.GetEntry(s.ctx, "tenant-2", entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerSuite) TestListEntries_FiltersByStatus() {
	for _, amount := range []string{"10", "20", "30"} {
		_, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection(amount))
		s.Require().NoError(err)
	}
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("40"))
	s.Require().NoError(err)
	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.Require().NoError(err)

	drafts, err := s.svc.Journal.ListEntries(s.ctx, testTenant, dto.ListJournalEntriesParams{Status: string(domain.Draft), Limit: 2})
	s.Require().NoError(err)
	s.Len(drafts.Entries, 2)
	s.Require().NotNil(drafts.NextToken)

	rest, err := s.svc.Journal.ListEntries(s.ctx, testTenant, dto.ListJournalEntriesParams{Status: string(domain.Draft), Limit: 2, NextToken: drafts.NextToken})
	s.Require().NoError(err)
	s.Len(rest.Entries, 1)
	s.Nil(rest.NextToken)

	_, err = s.svc.Journal.ListEntries(s.ctx, testTenant, dto.ListJournalEntriesParams{From: "02/01/2024"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestTrialBalanceAndReconciliation() {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, testTenant, testUser, s.capitalInjection("5000"))
	s.Require().NoError(err)
	_, err = s.svc.Journal.PostEntry(s.ctx, testTenant, entry.EntryID, testUser)
	s.Require().NoError(err)

	tb, err := s.svc.Reporting.GetTrialBalance(s.ctx, testTenant, date(2024, time.December, 31))
	s.Require().NoError(err)
	s.Len(tb.Rows, 2)
	s.Equal("1000", tb.Rows[0].Code)
	s.Equal("5000.00", tb.Rows[0].Debit.StringFixed(2))
	s.Equal("5000.00", tb.Rows[1].Credit.StringFixed(2))
	s.True(tb.Totals.Debit.Equal(tb.Totals.Credit))

	early, err := s.svc.Reporting.GetTrialBalance(s.ctx, testTenant, date(2024, time.January, 1))
	s.Require().NoError(err)
	s.Empty(early.Rows)

	rec, err := s.svc.Reporting.ReconcileBalances(s.ctx, testTenant)
	s.Require().NoError(err)
	s.Equal(len(s.accounts), rec.AccountsChecked)
	s.Empty(rec.Discrepancies)

	_, err = s.db.Exec(`UPDATE accounts SET balance = '4999.00' WHERE account_id = ?`, s.accounts["1000"])
	s.Require().NoError(err)

	rec, err = s.svc.Reporting.ReconcileBalances(s.ctx, testTenant)
	s.Require().NoError(err)
	s.Require().Len(rec.Discrepancies, 1)
	s.Equal("1000", rec.Discrepancies[0].Code)
	s.Equal("-1.00", rec.Discrepancies[0].Difference.StringFixed(2))
}
