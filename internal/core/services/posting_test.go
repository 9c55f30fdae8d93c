package services_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
)

func (s *LedgerSuite) officeExpense(post bool) dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		ExpenseDate:      date(2024, time.January, 15),
		Vendor:           "Stationery Ltd",
		Description:      "Printer paper",
		Category:         domain.CategoryGeneral,
		Amount:           dec("1000"),
		GCTAmount:        dec("150"),
		GCTClaimable:     true,
		ExpenseAccountID: s.accounts["6000"],
		PaymentAccountID: s.accounts["1000"],
		Post:             post,
	}
}

func (s *LedgerSuite) TestExpense_PostsClaimableGCT() {
	resp, err := s.svc.Expense.CreateExpense(s.ctx, testTenant, testUser, s.officeExpense(true))
	s.Require().NoError(err)
	s.Require().NotNil(resp.Entry)

	s.Equal(domain.ExpensePosted, resp.Expense.Status)
	s.Equal(resp.Entry.EntryID, resp.Expense.JournalEntryID)
	s.Equal(domain.SourceExpense, resp.Entry.SourceModule)
	s.Equal(resp.Expense.ExpenseID, resp.Entry.SourceDocumentID)

	s.Equal("-1150.00", s.balance("1000"))
	s.Equal("1000.00", s.balance("6000"))
	s.Equal("150.00", s.balance("1200"))
}

func (s *LedgerSuite) TestExpense_RestrictedCategoryAbsorbsHalf() {
	req := s.officeExpense(true)
	req.Category = domain.CategoryEntertainment

	_, err := s.svc.Expense.CreateExpense(s.ctx, testTenant, testUser, req)
	s.Require().NoError(err)

	s.Equal("-1150.00", s.balance("1000"))
	s.Equal("1075.00", s.balance("6000"))
	s.Equal("75.00", s.balance("1200"))
}

func (s *LedgerSuite) TestExpense_PostTwiceConflicts() {
	resp, err := s.svc.Expense.CreateExpense(s.ctx, testTenant, testUser, s.officeExpense(false))
	s.Require().NoError(err)
	s.Equal(domain.ExpensePending, resp.Expense.Status)
	s.Nil(resp.Entry)
	s.Equal("0.00", s.balance("1000"))

	_, err = s.svc.Expense.PostExpense(s.ctx, testTenant, resp.Expense.ExpenseID, testUser)
	s.Require().NoError(err)
	_, err = s.svc.Expense.PostExpense(s.ctx, testTenant, resp.Expense.ExpenseID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal("-1150.00", s.balance("1000"))
}

func (s *LedgerSuite) TestExpense_MissingPostingAccountRollsBack() {
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, testTenant, s.accounts["1200"], testUser))

	_, err := s.svc.Expense.CreateExpense(s.ctx, testTenant, testUser, s.officeExpense(true))
	s.ErrorIs(err, apperrors.ErrMissingData)

	s.Equal("0.00", s.balance("1000"))
	s.Equal("0.00", s.balance("6000"))
	list, err := s.svc.Journal.ListEntries(s.ctx, testTenant, dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Empty(list.Entries)

	var expenses int
	s.Require().NoError(s.db.Get(&expenses, `SELECT COUNT(*) FROM expenses`))
	s.Zero(expenses)
}

func (s *LedgerSuite) createInvoice(number string, net string) *domain.SalesInvoice {
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testTenant, testUser, dto.CreateInvoiceRequest{
		InvoiceNumber: number,
		InvoiceDate:   date(2024, time.January, 20),
		CustomerName:  "Harbour Hotel",
		Lines: []dto.InvoiceLineRequest{{
			Description:      "Consulting",
			RevenueAccountID: s.accounts["4000"],
			Bucket:           domain.BucketStandard,
			NetAmount:        dec(net),
		}},
	})
	s.Require().NoError(err)
	return inv
}

func (s *LedgerSuite) TestInvoice_PostsOutputTax() {
	inv := s.createInvoice("INV-1", "2000")
	s.Equal(domain.InvoiceDraft, inv.Status)
	s.Equal("300.00", inv.Lines[0].TaxAmount.StringFixed(2))

	entry, err := s.svc.Invoice.PostInvoice(s.ctx, testTenant, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.SourceInvoice, entry.SourceModule)

	s.Equal("2300.00", s.balance("1100"))
	s.Equal("2000.00", s.balance("4000"))
	s.Equal("300.00", s.balance("2100"))

	_, err = s.svc.Invoice.PostInvoice(s.ctx, testTenant, inv.InvoiceID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerSuite) TestInvoice_ExplicitTaxAmount() {
	tax := decimal.Zero
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testTenant, testUser, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-EXPORT",
		InvoiceDate:   date(2024, time.January, 21),
		CustomerName:  "Overseas Buyer",
		Lines: []dto.InvoiceLineRequest{{
			RevenueAccountID: s.accounts["4000"],
			Bucket:           domain.BucketZeroRated,
			NetAmount:        dec("500"),
			TaxAmount:        &tax,
		}},
	})
	s.Require().NoError(err)

	_, err = s.svc.Invoice.PostInvoice(s.ctx, testTenant, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	s.Equal("500.00", s.balance("1100"))
	s.Equal("0.00", s.balance("2100"))
}

func (s *LedgerSuite) TestGCTReturn_NetsOutputAgainstInput() {
	_, err := s.svc.Expense.CreateExpense(s.ctx, testTenant, testUser, s.officeExpense(true))
	s.Require().NoError(err)
	inv := s.createInvoice("INV-2", "2000")
	_, err = s.svc.Invoice.PostInvoice(s.ctx, testTenant, inv.InvoiceID, testUser)
	s.Require().NoError(err)
	// Drafts are not reported.
	s.createInvoice("INV-3", "9999")

	ret, err := s.svc.GCT.ComputeReturn(s.ctx, testTenant, date(2024, time.January, 1), date(2024, time.January, 31))
	s.Require().NoError(err)
	s.Equal("300.00", ret.TotalOutputTax.StringFixed(2))
	s.Equal("150.00", ret.TotalClaimable.StringFixed(2))
	s.Equal("150.00", ret.NetAmount.StringFixed(2))
	s.Equal(domain.PositionPayable, ret.Position)

	feb, err := s.svc.GCT.ComputeReturn(s.ctx, testTenant, date(2024, time.February, 1), date(2024, time.February, 29))
	s.Require().NoError(err)
	s.True(feb.NetAmount.IsZero())
	s.Equal(domain.PositionNil, feb.Position)

	_, err = s.svc.GCT.ComputeReturn(s.ctx, testTenant, date(2024, time.February, 1), date(2024, time.January, 1))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestStockCount_ShortagePostsVariance() {
	count, err := s.svc.StockCount.CreateStockCount(s.ctx, testTenant, testUser, dto.CreateStockCountRequest{
		CountNumber: "SC-1",
		Items: []dto.StockCountItemRequest{
			{ProductID: "P1", ProductName: "Rice 1kg", ExpectedQty: dec("10"), UnitCost: dec("50")},
			{ProductID: "P2", ProductName: "Flour 2kg", ExpectedQty: dec("5"), UnitCost: dec("100")},
		},
	})
	s.Require().NoError(err)
	s.Equal(domain.StockCountDraft, count.Status)

	_, err = s.svc.StockCount.ApproveStockCount(s.ctx, testTenant, count.StockCountID, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	count, err = s.svc.StockCount.RecordCount(s.ctx, testTenant, count.StockCountID, testUser, dto.RecordCountRequest{ProductID: "P1", CountedQty: dec("5")})
	s.Require().NoError(err)
	s.Equal(domain.StockCountInProgress, count.Status)

	count, err = s.svc.StockCount.RecordCount(s.ctx, testTenant, count.StockCountID, testUser, dto.RecordCountRequest{ProductID: "P2", CountedQty: dec("5")})
	s.Require().NoError(err)
	s.Equal(domain.StockCountCounted, count.Status)

	_, err = s.svc.StockCount.RecordCount(s.ctx, testTenant, count.StockCountID, testUser, dto.RecordCountRequest{ProductID: "P9", CountedQty: dec("1")})
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.StockCount.PostVariance(s.ctx, testTenant, count.StockCountID, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	count, err = s.svc.StockCount.ApproveStockCount(s.ctx, testTenant, count.StockCountID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.StockCountApproved, count.Status)

	_, err = s.svc.StockCount.RecordCount(s.ctx, testTenant, count.StockCountID, testUser, dto.RecordCountRequest{ProductID: "P1", CountedQty: dec("10")})
	s.ErrorIs(err, apperrors.ErrConflict)

	resp, err := s.svc.StockCount.PostVariance(s.ctx, testTenant, count.StockCountID, testUser)
	s.Require().NoError(err)
	s.Equal("-250.00", resp.VarianceValue.StringFixed(2))
	s.Equal(domain.StockCountPosted, resp.StockCount.Status)
	s.Require().NotNil(resp.Entry)
	s.Equal(resp.Entry.EntryID, resp.StockCount.JournalEntryID)

	s.Equal("250.00", s.balance("6200"))
	s.Equal("-250.00", s.balance("1300"))

	_, err = s.svc.StockCount.PostVariance(s.ctx, testTenant, count.StockCountID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerSuite) TestStockCount_DuplicateProduct() {
	_, err := s.svc.StockCount.CreateStockCount(s.ctx, testTenant, testUser, dto.CreateStockCountRequest{
		CountNumber: "SC-2",
		Items: []dto.StockCountItemRequest{
			{ProductID: "P1", ExpectedQty: dec("1"), UnitCost: dec("1")},
			{ProductID: "P1", ExpectedQty: dec("2"), UnitCost: dec("1")},
		},
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// approvedCount creates a one-item count, records counted and approves it.
func (s *LedgerSuite) approvedCount(number string, expected, counted string) *domain.StockCount {
	count, err := s.svc.StockCount.CreateStockCount(s.ctx, testTenant, testUser, dto.CreateStockCountRequest{
		CountNumber: number,
		Items: []dto.StockCountItemRequest{
			{ProductID: "P1", ProductName: "Rice 1kg", ExpectedQty: dec(expected), UnitCost: dec("50")},
		},
	})
	s.Require().NoError(err)
	_, err = s.svc.StockCount.RecordCount(s.ctx, testTenant, count.StockCountID, testUser, dto.RecordCountRequest{ProductID: "P1", CountedQty: dec(counted)})
	s.Require().NoError(err)
	count, err = s.svc.StockCount.ApproveStockCount(s.ctx, testTenant, count.StockCountID, testUser)
	s.Require().NoError(err)
	return count
}

func (s *LedgerSuite) TestStockCount_SurplusPostsVariance() {
	count := s.approvedCount("SC-3", "10", "13")

	resp, err := s.svc.StockCount.PostVariance(s.ctx, testTenant, count.StockCountID, testUser)
	s.Require().NoError(err)
	s.Equal("150.00", resp.VarianceValue.StringFixed(2))
	s.Require().NotNil(resp.Entry)
	s.Equal(domain.StockCountPosted, resp.StockCount.Status)

	s.Equal("150.00", s.balance("1300"))
	s.Equal("-150.00", s.balance("6200"))
}

func (s *LedgerSuite) TestStockCount_ZeroVarianceMarksPostedWithoutEntry() {
	count := s.approvedCount("SC-4", "10", "10")

	resp, err := s.svc.StockCount.PostVariance(s.ctx, testTenant, count.StockCountID, testUser)
	s.Require().NoError(err)
	s.True(resp.VarianceValue.IsZero())
	s.Nil(resp.Entry)
	s.Equal(domain.StockCountPosted, resp.StockCount.Status)
	s.Empty(resp.StockCount.JournalEntryID)

	stored, err := s.svc.StockCount.GetStockCount(s.ctx, testTenant, count.StockCountID)
	s.Require().NoError(err)
	s.Equal(domain.StockCountPosted, stored.Status)

	s.Equal("0.00", s.balance("1300"))
	s.Equal("0.00", s.balance("6200"))
}
