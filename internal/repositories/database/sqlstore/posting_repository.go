package sqlstore

import (
	"context"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/domain"
	portsrepo "github.com/Mani87-nq/yardbooks-web-sub011/internal/core/ports/repositories"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/models"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const expenseColumns = `expense_id, tenant_id, expense_date, vendor, description, category, amount, gct_amount,
	gct_claimable, expense_account_id, payment_account_id, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

type expenseRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.ExpenseRepository = (*expenseRepository)(nil)

func (r *expenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (:expense_id, :tenant_id, :expense_date, :vendor,
		:description, :category, :amount, :gct_amount, :gct_claimable, :expense_account_id, :payment_account_id, :status,
		:journal_entry_id, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	_, err := sqlx.NamedExecContext(ctx, r.db, query, mapping.ToModelExpense(expense))
	return mapError(err, "expense "+expense.ExpenseID)
}

func (r *expenseRepository) FindExpenseByID(ctx context.Context, tenantID, expenseID string) (*domain.ExpenseRecord, error) {
	var m models.Expense
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE tenant_id = ? AND expense_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &m, query, tenantID, expenseID); err != nil {
		return nil, mapError(err, "expense "+expenseID)
	}
	e := mapping.ToDomainExpense(m)
	return &e, nil
}

func (r *expenseRepository) MarkExpensePosted(ctx context.Context, tenantID, expenseID, entryID, userID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET status = ?, journal_entry_id = ?, last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND expense_id = ? AND status = ?`,
		string(domain.ExpensePosted), entryID, now.UTC(), userID, tenantID, expenseID, string(domain.ExpensePending))
	if err != nil {
		return mapError(err, "expense "+expenseID)
	}
	return transitioned(ctx, r.db, res, "expense "+expenseID, string(domain.ExpensePending),
		`SELECT status FROM expenses WHERE tenant_id = ? AND expense_id = ?`, tenantID, expenseID)
}

func (r *expenseRepository) ListTaxablePurchases(ctx context.Context, tenantID string, from, to time.Time) ([]domain.PurchaseTaxLine, error) {
	var rows []models.Expense
	query := `SELECT ` + expenseColumns + ` FROM expenses
		WHERE tenant_id = ? AND status = ? AND gct_claimable = ? AND expense_date >= ? AND expense_date <= ?
		ORDER BY expense_date, expense_id`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, tenantID, string(domain.ExpensePosted), true, from.UTC(), to.UTC()); err != nil {
		return nil, mapError(err, "taxable purchases of tenant "+tenantID)
	}
	out := make([]domain.PurchaseTaxLine, 0, len(rows))
	for _, m := range rows {
		if m.GCTAmount.IsPositive() {
			out = append(out, mapping.ToDomainPurchaseTaxLine(m))
		}
	}
	return out, nil
}

const invoiceColumns = `invoice_id, tenant_id, invoice_number, invoice_date, customer_name, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, line_number, description, revenue_account_id, bucket, net_amount, tax_amount`

type invoiceRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.InvoiceRepository = (*invoiceRepository)(nil)

func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.SalesInvoice) error {
	header, lines := mapping.ToModelSalesInvoice(invoice)
	query := `INSERT INTO sales_invoices (` + invoiceColumns + `) VALUES (:invoice_id, :tenant_id, :invoice_number,
		:invoice_date, :customer_name, :status, :journal_entry_id, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, header); err != nil {
		return mapError(err, "invoice "+invoice.InvoiceNumber)
	}
	if len(lines) == 0 {
		return nil
	}
	lineQuery := `INSERT INTO sales_invoice_lines (` + invoiceLineColumns + `) VALUES (:line_id, :invoice_id, :line_number,
		:description, :revenue_account_id, :bucket, :net_amount, :tax_amount)`
	_, err := sqlx.NamedExecContext(ctx, r.db, lineQuery, lines)
	return mapError(err, "lines of invoice "+invoice.InvoiceNumber)
}

func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.SalesInvoice, error) {
	var header models.SalesInvoice
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE tenant_id = ? AND invoice_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &header, query, tenantID, invoiceID); err != nil {
		return nil, mapError(err, "invoice "+invoiceID)
	}
	var lines []models.SalesInvoiceLine
	if err := sqlx.SelectContext(ctx, r.db, &lines,
		`SELECT `+invoiceLineColumns+` FROM sales_invoice_lines WHERE invoice_id = ? ORDER BY line_number`, invoiceID); err != nil {
		return nil, mapError(err, "lines of invoice "+invoiceID)
	}
	inv := mapping.ToDomainSalesInvoice(header, lines)
	return &inv, nil
}

func (r *invoiceRepository) MarkInvoicePosted(ctx context.Context, tenantID, invoiceID, entryID, userID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sales_invoices SET status = ?, journal_entry_id = ?, last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND invoice_id = ? AND status = ?`,
		string(domain.InvoicePosted), entryID, now.UTC(), userID, tenantID, invoiceID, string(domain.InvoiceDraft))
	if err != nil {
		return mapError(err, "invoice "+invoiceID)
	}
	return transitioned(ctx, r.db, res, "invoice "+invoiceID, string(domain.InvoiceDraft),
		`SELECT status FROM sales_invoices WHERE tenant_id = ? AND invoice_id = ?`, tenantID, invoiceID)
}

func (r *invoiceRepository) ListPostedSalesLines(ctx context.Context, tenantID string, from, to time.Time) ([]domain.SalesTaxLine, error) {
	var rows []models.SalesTaxLine
	query := `SELECT i.invoice_id, i.invoice_date, l.bucket, l.net_amount, l.tax_amount
		FROM sales_invoice_lines l
		JOIN sales_invoices i ON i.invoice_id = l.invoice_id
		WHERE i.tenant_id = ? AND i.status = ? AND i.invoice_date >= ? AND i.invoice_date <= ?
		ORDER BY i.invoice_date, i.invoice_id, l.line_number`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, tenantID, string(domain.InvoicePosted), from.UTC(), to.UTC()); err != nil {
		return nil, mapError(err, "posted sales of tenant "+tenantID)
	}
	return mapping.ToDomainSalesTaxLineSlice(rows), nil
}

const stockCountColumns = `stock_count_id, tenant_id, count_number, description, status, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const stockItemColumns = `item_id, stock_count_id, product_id, product_name, expected_qty, counted_qty, unit_cost`

type stockCountRepository struct {
	db sqlx.ExtContext
}

var _ portsrepo.StockCountRepository = (*stockCountRepository)(nil)

func (r *stockCountRepository) SaveStockCount(ctx context.Context, count domain.StockCount) error {
	header, items := mapping.ToModelStockCount(count)
	query := `INSERT INTO stock_counts (` + stockCountColumns + `) VALUES (:stock_count_id, :tenant_id, :count_number,
		:description, :status, :journal_entry_id, :created_at, :created_by, :last_updated_at, :last_updated_by)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, header); err != nil {
		return mapError(err, "stock count "+count.CountNumber)
	}
	if len(items) == 0 {
		return nil
	}
	itemQuery := `INSERT INTO stock_count_items (` + stockItemColumns + `) VALUES (:item_id, :stock_count_id, :product_id,
		:product_name, :expected_qty, :counted_qty, :unit_cost)`
	_, err := sqlx.NamedExecContext(ctx, r.db, itemQuery, items)
	return mapError(err, "items of stock count "+count.CountNumber)
}

func (r *stockCountRepository) FindStockCountByID(ctx context.Context, tenantID, stockCountID string) (*domain.StockCount, error) {
	var header models.StockCount
	query := `SELECT ` + stockCountColumns + ` FROM stock_counts WHERE tenant_id = ? AND stock_count_id = ?`
	if err := sqlx.GetContext(ctx, r.db, &header, query, tenantID, stockCountID); err != nil {
		return nil, mapError(err, "stock count "+stockCountID)
	}
	var items []models.StockCountItem
	if err := sqlx.SelectContext(ctx, r.db, &items,
		`SELECT `+stockItemColumns+` FROM stock_count_items WHERE stock_count_id = ? ORDER BY product_id`, stockCountID); err != nil {
		return nil, mapError(err, "items of stock count "+stockCountID)
	}
	sc := mapping.ToDomainStockCount(header, items)
	return &sc, nil
}

func (r *stockCountRepository) UpdateItemCount(ctx context.Context, stockCountID, productID string, counted decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stock_count_items SET counted_qty = ? WHERE stock_count_id = ? AND product_id = ?`,
		counted, stockCountID, productID)
	if err != nil {
		return mapError(err, "product "+productID)
	}
	return expectOne(res, "product "+productID+" in stock count "+stockCountID)
}

func (r *stockCountRepository) UpdateStockCountStatus(ctx context.Context, tenantID, stockCountID string, from, to domain.StockCountStatus, entryID, userID string, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stock_counts SET status = ?, journal_entry_id = COALESCE(?, journal_entry_id), last_updated_at = ?, last_updated_by = ?
		WHERE tenant_id = ? AND stock_count_id = ? AND status = ?`,
		string(to), mapping.NullableString(entryID), now.UTC(), userID, tenantID, stockCountID, string(from))
	if err != nil {
		return mapError(err, "stock count "+stockCountID)
	}
	return transitioned(ctx, r.db, res, "stock count "+stockCountID, string(from),
		`SELECT status FROM stock_counts WHERE tenant_id = ? AND stock_count_id = ?`, tenantID, stockCountID)
}
