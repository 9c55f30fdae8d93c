package pgsql

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const expenseColumns = `expense_id, tenant_id, expense_date, vendor, description, category, amount, gct_amount,
	gct_claimable, expense_account_id, payment_account_id, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	db querier
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.db.Exec(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17)`,
		m.ExpenseID, m.TenantID, m.ExpenseDate, m.Vendor, m.Description, m.Category, m.Amount, m.GCTAmount,
		m.GCTClaimable, m.ExpenseAccountID, m.PaymentAccountID, m.Status, m.JournalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	return mapError(err, "expense "+expense.ExpenseID)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, tenantID, expenseID string) (*domain.ExpenseRecord, error) {
	m, err := getOne[models.Expense](ctx, r.db, "expense "+expenseID,
		`SELECT `+expenseColumns+` FROM expenses WHERE tenant_id = $1 AND expense_id = $2`, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainExpense(m)
	return &e, nil
}

func (r *PgxExpenseRepository) MarkExpensePosted(ctx context.Context, tenantID, expenseID, entryID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE expenses SET status = $1, journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $5 AND expense_id = $6 AND status = $7`,
		string(domain.ExpensePosted), entryID, now.UTC(), userID, tenantID, expenseID, string(domain.ExpensePending))
	if err != nil {
		return mapError(err, "expense "+expenseID)
	}
	return transitioned(ctx, r.db, tag, "expense "+expenseID, string(domain.ExpensePending),
		`SELECT status FROM expenses WHERE tenant_id = $1 AND expense_id = $2`, tenantID, expenseID)
}

func (r *PgxExpenseRepository) ListTaxablePurchases(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseTaxLine, error) {
	rows, err := getAll[models.Expense](ctx, r.db, "taxable purchases of tenant "+tenantID,
		`SELECT `+expenseColumns+` FROM expenses
		WHERE tenant_id = $1 AND status = $2 AND gct_claimable AND gct_amount > 0
		AND expense_date >= $3 AND expense_date <= $4
		ORDER BY expense_date, expense_id`,
		tenantID, string(domain.ExpensePosted), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	out := make([]domain.PurchaseTaxLine, 0, len(rows))
	for _, m := range rows {
		out = append(out, mapping.ToDomainPurchaseTaxLine(m))
	}
	return out, nil
}

const invoiceColumns = `invoice_id, tenant_id, invoice_number, invoice_date, customer_name, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, line_number, description, revenue_account_id, bucket, net_amount, tax_amount`

type PgxInvoiceRepository struct {
	db querier
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	header, lines := mapping.ToModelSalesInvoice(invoice)
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO sales_invoices (`+invoiceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		header.InvoiceID, header.TenantID, header.InvoiceNumber, header.InvoiceDate, header.CustomerName, header.Status,
		header.JournalEntryID, header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy)
	for _, l := range lines {
		batch.Queue(`INSERT INTO sales_invoice_lines (`+invoiceLineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.LineID, l.InvoiceID, l.LineNumber, l.Description, l.RevenueAccountID, l.Bucket, l.NetAmount, l.TaxAmount)
	}
	return execBatch(ctx, r.db, batch, "invoice "+invoice.InvoiceNumber)
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.SalesInvoice, error) {
	header, err := getOne[models.SalesInvoice](ctx, r.db, "invoice "+invoiceID,
		`SELECT `+invoiceColumns+` FROM sales_invoices WHERE tenant_id = $1 AND invoice_id = $2`, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := getAll[models.SalesInvoiceLine](ctx, r.db, "lines of invoice "+invoiceID,
		`SELECT `+invoiceLineColumns+` FROM sales_invoice_lines WHERE invoice_id = $1 ORDER BY line_number`, invoiceID)
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainSalesInvoice(header, lines)
	return &inv, nil
}

func (r *PgxInvoiceRepository) MarkInvoicePosted(ctx context.Context, tenantID, invoiceID, entryID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales_invoices SET status = $1, journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $5 AND invoice_id = $6 AND status = $7`,
		string(domain.InvoicePosted), entryID, now.UTC(), userID, tenantID, invoiceID, string(domain.InvoiceDraft))
	if err != nil {
		return mapError(err, "invoice "+invoiceID)
	}
	return transitioned(ctx, r.db, tag, "invoice "+invoiceID, string(domain.InvoiceDraft),
		`SELECT status FROM sales_invoices WHERE tenant_id = $1 AND invoice_id = $2`, tenantID, invoiceID)
}

func (r *PgxInvoiceRepository) ListPostedSalesLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesTaxLine, error) {
	rows, err := getAll[models.SalesTaxLine](ctx, r.db, "posted sales of tenant "+tenantID,
		`SELECT i.invoice_id, i.invoice_date, l.bucket, l.net_amount, l.tax_amount
		FROM sales_invoice_lines l
		JOIN sales_invoices i ON i.invoice_id = l.invoice_id
		WHERE i.tenant_id = $1 AND i.status = $2 AND i.invoice_date >= $3 AND i.invoice_date <= $4
		ORDER BY i.invoice_date, i.invoice_id, l.line_number`,
		tenantID, string(domain.InvoicePosted), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainSalesTaxLineSlice(rows), nil
}

const stockCountColumns = `stock_count_id, tenant_id, count_number, description, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const stockItemColumns = `item_id, stock_count_id, product_id, product_name, expected_qty, counted_qty, unit_cost`

type PgxStockCountRepository struct {
	db querier
}

var _ portsrepo.StockCountRepository = (*PgxStockCountRepository)(nil)

func (r *PgxStockCountRepository) SaveStockCount(ctx context.Context, count domain.StockCount) error {
	header, items := mapping.ToModelStockCount(count)
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO stock_counts (`+stockCountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		header.StockCountID, header.TenantID, header.CountNumber, header.Description, header.Status, header.JournalEntryID,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy)
	for _, it := range items {
		batch.Queue(`INSERT INTO stock_count_items (`+stockItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ItemID, it.StockCountID, it.ProductID, it.ProductName, it.ExpectedQty, it.CountedQty, it.UnitCost)
	}
	return execBatch(ctx, r.db, batch, "stock count "+count.CountNumber)
}

func (r *PgxStockCountRepository) FindStockCountByID(ctx context.Context, tenantID, stockCountID string) (*domain.StockCount, error) {
	header, err := getOne[models.StockCount](ctx, r.db, "stock count "+stockCountID,
		`SELECT `+stockCountColumns+` FROM stock_counts WHERE tenant_id = $1 AND stock_count_id = $2`, tenantID, stockCountID)
	if err != nil {
		return nil, err
	}
	items, err := getAll[models.StockCountItem](ctx, r.db, "items of stock count "+stockCountID,
		`SELECT `+stockItemColumns+` FROM stock_count_items WHERE stock_count_id = $1 ORDER BY product_id`, stockCountID)
	if err != nil {
		return nil, err
	}
	sc := mapping.ToDomainStockCount(header, items)
	return &sc, nil
}

func (r *PgxStockCountRepository) UpdateItemCount(ctx context.Context, stockCountID, productID string, counted decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_count_items SET counted_qty = $1 WHERE stock_count_id = $2 AND product_id = $3`,
		counted, stockCountID, productID)
	if err != nil {
		return mapError(err, "product "+productID)
	}
	return expectOne(tag, "product "+productID+" in stock count "+stockCountID)
}

func (r *PgxStockCountRepository) UpdateStockCountStatus(ctx context.Context, tenantID, stockCountID string, from, to domain.StockCountStatus, entryID, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_counts SET status = $1, journal_entry_id = COALESCE($2, journal_entry_id), last_updated_at = $3,
		last_updated_by = $4
		WHERE tenant_id = $5 AND stock_count_id = $6 AND status = $7`,
		string(to), mapping.NullableString(entryID), now.UTC(), userID, tenantID, stockCountID, string(from))
	if err != nil {
		return mapError(err, "stock count "+stockCountID)
	}
	return transitioned(ctx, r.db, tag, "stock count "+stockCountID, string(from),
		`SELECT status FROM stock_counts WHERE tenant_id = $1 AND stock_count_id = $2`, tenantID, stockCountID)
}
