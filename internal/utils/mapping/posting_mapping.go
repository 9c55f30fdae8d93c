package mapping

import (
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/shopspring/decimal"
)

func ToModelExpense(d domain.ExpenseRecord) models.Expense {
	return models.Expense{
		ExpenseID:        d.ExpenseID,
		TenantID:         d.TenantID,
		ExpenseDate:      d.ExpenseDate.UTC(),
		Vendor:           d.Vendor,
		Description:      d.Description,
		Category:         string(d.Category),
		Amount:           d.Amount,
		GCTAmount:        d.GCTAmount,
		GCTClaimable:     d.GCTClaimable,
		ExpenseAccountID: d.ExpenseAccountID,
		PaymentAccountID: d.PaymentAccountID,
		Status:           string(d.Status),
		JournalEntryID:   NullableString(d.JournalEntryID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		ExpenseID:        m.ExpenseID,
		TenantID:         m.TenantID,
		ExpenseDate:      m.ExpenseDate.UTC(),
		Vendor:           m.Vendor,
		Description:      m.Description,
		Category:         domain.TaxCategory(m.Category),
		Amount:           m.Amount,
		GCTAmount:        m.GCTAmount,
		GCTClaimable:     m.GCTClaimable,
		ExpenseAccountID: m.ExpenseAccountID,
		PaymentAccountID: m.PaymentAccountID,
		Status:           domain.ExpenseStatus(m.Status),
		JournalEntryID:   StringValue(m.JournalEntryID),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseTaxLine reads a posted expense as an input-tax line.
func ToDomainPurchaseTaxLine(m models.Expense) domain.PurchaseTaxLine {
	return domain.PurchaseTaxLine{
		PurchaseID:   m.ExpenseID,
		PurchaseDate: m.ExpenseDate.UTC(),
		Category:     domain.TaxCategory(m.Category),
		NetAmount:    m.Amount,
		TaxPaid:      m.GCTAmount,
	}
}

func ToModelSalesInvoice(d domain.SalesInvoice) (models.SalesInvoice, []models.SalesInvoiceLine) {
	lines := make([]models.SalesInvoiceLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.SalesInvoiceLine{
			LineID:           l.LineID,
			InvoiceID:        d.InvoiceID,
			LineNumber:       l.LineNumber,
			Description:      l.Description,
			RevenueAccountID: l.RevenueAccountID,
			Bucket:           string(l.Bucket),
			NetAmount:        l.NetAmount,
			TaxAmount:        l.TaxAmount,
		}
	}
	return models.SalesInvoice{
		InvoiceID:      d.InvoiceID,
		TenantID:       d.TenantID,
		InvoiceNumber:  d.InvoiceNumber,
		InvoiceDate:    d.InvoiceDate.UTC(),
		CustomerName:   d.CustomerName,
		Status:         string(d.Status),
		JournalEntryID: NullableString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, lines
}

func ToDomainSalesInvoice(m models.SalesInvoice, lines []models.SalesInvoiceLine) domain.SalesInvoice {
	out := domain.SalesInvoice{
		InvoiceID:      m.InvoiceID,
		TenantID:       m.TenantID,
		InvoiceNumber:  m.InvoiceNumber,
		InvoiceDate:    m.InvoiceDate.UTC(),
		CustomerName:   m.CustomerName,
		Status:         domain.InvoiceStatus(m.Status),
		JournalEntryID: StringValue(m.JournalEntryID),
		Lines:          make([]domain.SalesInvoiceLine, len(lines)),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		out.Lines[i] = domain.SalesInvoiceLine{
			LineID:           l.LineID,
			InvoiceID:        l.InvoiceID,
			LineNumber:       l.LineNumber,
			Description:      l.Description,
			RevenueAccountID: l.RevenueAccountID,
			Bucket:           domain.GCTBucket(l.Bucket),
			NetAmount:        l.NetAmount,
			TaxAmount:        l.TaxAmount,
		}
	}
	return out
}

func ToDomainSalesTaxLineSlice(ms []models.SalesTaxLine) []domain.SalesTaxLine {
	ds := make([]domain.SalesTaxLine, len(ms))
	for i, m := range ms {
		ds[i] = domain.SalesTaxLine{
			InvoiceID:   m.InvoiceID,
			InvoiceDate: m.InvoiceDate.UTC(),
			Bucket:      domain.GCTBucket(m.Bucket),
			NetAmount:   m.NetAmount,
			TaxAmount:   m.TaxAmount,
		}
	}
	return ds
}

func ToModelStockCount(d domain.StockCount) (models.StockCount, []models.StockCountItem) {
	items := make([]models.StockCountItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.StockCountItem{
			ItemID:       it.ItemID,
			StockCountID: d.StockCountID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ExpectedQty:  it.ExpectedQty,
			UnitCost:     it.UnitCost,
		}
		if it.CountedQty != nil {
			items[i].CountedQty = decimal.NewNullDecimal(*it.CountedQty)
		}
	}
	return models.StockCount{
		StockCountID:   d.StockCountID,
		TenantID:       d.TenantID,
		CountNumber:    d.CountNumber,
		Description:    d.Description,
		Status:         string(d.Status),
		JournalEntryID: NullableString(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, items
}

func ToDomainStockCount(m models.StockCount, items []models.StockCountItem) domain.StockCount {
	out := domain.StockCount{
		StockCountID:   m.StockCountID,
		TenantID:       m.TenantID,
		CountNumber:    m.CountNumber,
		Description:    m.Description,
		Status:         domain.StockCountStatus(m.Status),
		JournalEntryID: StringValue(m.JournalEntryID),
		Items:          make([]domain.StockCountItem, len(items)),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, it := range items {
		out.Items[i] = domain.StockCountItem{
			ItemID:       it.ItemID,
			StockCountID: it.StockCountID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ExpectedQty:  it.ExpectedQty,
			UnitCost:     it.UnitCost,
		}
		if it.CountedQty.Valid {
			qty := it.CountedQty.Decimal
			out.Items[i].CountedQty = &qty
		}
	}
	return out
}
