package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/apperrors"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/calculators"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	portssvc "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/dto"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/accounting"
)

type invoiceService struct {
	BaseService
	ledger portssvc.LedgerPoster
	rules  calculators.GCTRules
	codes  config.PostingAccountCodes
}

// NewInvoiceService creates the sales-invoice posting adapter.
func NewInvoiceService(store portsrepo.Store, ledger portssvc.LedgerPoster, rules calculators.GCTRules, codes config.PostingAccountCodes, opts ...ServiceOption) portssvc.InvoiceSvc {
	return &invoiceService{
		BaseService: newBaseService(store, opts...),
		ledger:      ledger,
		rules:       rules,
		codes:       codes,
	}
}

var _ portssvc.InvoiceSvc = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, tenantID, userID string, req dto.CreateInvoiceRequest) (*domain.SalesInvoice, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: invoice must have at least one line", apperrors.ErrValidation)
	}
	inv := domain.SalesInvoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      tenantID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   domain.DateOf(req.InvoiceDate),
		CustomerName:  req.CustomerName,
		Status:        domain.InvoiceDraft,
		Lines:         make([]domain.SalesInvoiceLine, len(req.Lines)),
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}
	for i, l := range req.Lines {
		if _, ok := s.rules.BucketRates[l.Bucket]; !ok {
			return nil, fmt.Errorf("%w: line %d has unknown GCT bucket %q", apperrors.ErrValidation, i+1, l.Bucket)
		}
		if !l.NetAmount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d net amount must be positive", apperrors.ErrValidation, i+1)
		}
		net := accounting.Round2(l.NetAmount)
		tax := s.rules.OutputTax(l.Bucket, net)
		if l.TaxAmount != nil {
			if l.TaxAmount.IsNegative() {
				return nil, fmt.Errorf("%w: line %d tax amount cannot be negative", apperrors.ErrValidation, i+1)
			}
			tax = accounting.Round2(*l.TaxAmount)
		}
		inv.Lines[i] = domain.SalesInvoiceLine{
			LineID:           uuid.NewString(),
			InvoiceID:        inv.InvoiceID,
			LineNumber:       i + 1,
			Description:      l.Description,
			RevenueAccountID: l.RevenueAccountID,
			Bucket:           l.Bucket,
			NetAmount:        net,
			TaxAmount:        tax,
		}
	}

	if err := s.store.Repos().Invoices.SaveInvoice(ctx, inv); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Sales invoice recorded", slog.String("invoice_id", inv.InvoiceID), slog.String("invoice_number", inv.InvoiceNumber))
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, tenantID, invoiceID string) (*domain.SalesInvoice, error) {
	return s.store.Repos().Invoices.FindInvoiceByID(ctx, tenantID, invoiceID)
}

// PostInvoice debits receivables gross, credits revenue per line and credits GCT payable
// with the tax charged.
func (s *invoiceService) PostInvoice(ctx context.Context, tenantID, invoiceID, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		inv, err := repos.Invoices.FindInvoiceByID(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvoiceDraft {
			return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, inv.InvoiceNumber, inv.Status)
		}
		receivable, err := resolvePostingAccount(ctx, repos, tenantID, "accounts receivable", s.codes.AccountsReceivable)
		if err != nil {
			return err
		}

		var b lineBuilder
		gross, tax := decimal.Zero, decimal.Zero
		for _, l := range inv.Lines {
			gross = gross.Add(l.NetAmount).Add(l.TaxAmount)
			tax = tax.Add(l.TaxAmount)
		}
		b.debit(receivable.AccountID, inv.CustomerName, gross)
		for _, l := range inv.Lines {
			b.credit(l.RevenueAccountID, l.Description, l.NetAmount)
		}
		if tax.IsPositive() {
			payable, err := resolvePostingAccount(ctx, repos, tenantID, "GCT payable", s.codes.GCTPayable)
			if err != nil {
				return err
			}
			b.credit(payable.AccountID, "Output GCT", tax)
		}

		entry, err = s.ledger.CreateAndPostInTx(ctx, repos, tenantID, userID, domain.JournalEntry{
			EntryDate:        inv.InvoiceDate,
			Description:      "Invoice " + inv.InvoiceNumber + ": " + inv.CustomerName,
			Reference:        inv.InvoiceNumber,
			SourceModule:     domain.SourceInvoice,
			SourceDocumentID: inv.InvoiceID,
			Metadata: map[string]domain.Value{
				"customer": domain.StringValue(inv.CustomerName),
				"gct":      domain.NumberValue(tax),
			},
			Lines: b.lines,
		})
		if err != nil {
			return err
		}
		return repos.Invoices.MarkInvoicePosted(ctx, tenantID, invoiceID, entry.EntryID, userID, s.Now())
	})
	if err != nil {
		s.LogWarn(ctx, "Invoice not posted", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		return nil, err
	}
	return entry, nil
}
