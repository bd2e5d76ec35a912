package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/billforge/invoicing-api/internal/database"
	"github.com/billforge/invoicing-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *database.PostgresDB
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *database.PostgresDB) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

// CreateInvoice validates references, prices the draft and persists
// the header plus all line items inside one transaction. Client,
// number and product resolution all happen on the transaction before
// any row is written, so a mid-list failure leaves zero rows visible.
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	var created *domain.Invoice

	err := r.db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		client, err := findClient(ctx, tx, draft.ClientID)
		if err != nil {
			return err
		}

		invoiceNo := draft.InvoiceNo
		if invoiceNo != "" {
			var taken bool
			err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_no = $1)`, invoiceNo).Scan(&taken)
			if err != nil {
				return fmt.Errorf("failed to check invoice number: %w", err)
			}
			if taken {
				return &domain.ConflictError{InvoiceNo: invoiceNo}
			}
		} else {
			invoiceNo, err = nextInvoiceNo(ctx, tx)
			if err != nil {
				return err
			}
		}

		address := draft.Address
		if address == "" {
			address = client.Address
		}

		// Resolve every product before the first insert; prices are
		// snapshotted as of this call.
		items := make([]domain.InvoiceItem, 0, len(draft.Items))
		for _, line := range draft.Items {
			product, err := findProduct(ctx, tx, line.ProductID)
			if err != nil {
				return err
			}
			items = append(items, domain.InvoiceItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
				LineTotal: domain.LineTotal(product.Price, line.Quantity),
			})
		}

		total := domain.InvoiceTotal(items, draft.Tax)

		var invoiceID int64
		err = tx.QueryRow(ctx, `
			INSERT INTO invoices (invoice_no, issue_date, due_date, client_id, address, tax, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, invoiceNo, draft.IssueDate.String(), draft.DueDate.String(), client.ID, address, draft.Tax, total).Scan(&invoiceID)
		if err != nil {
			// Two concurrent creates can pass the pre-check with the
			// same number; the constraint decides the loser.
			if isUniqueViolation(err) {
				return &domain.ConflictError{InvoiceNo: invoiceNo}
			}
			return fmt.Errorf("failed to insert invoice: %w", err)
		}

		for i := range items {
			item := &items[i]
			err = tx.QueryRow(ctx, `
				INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, line_total)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, invoiceID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("failed to insert invoice item: %w", err)
			}
		}

		created = &domain.Invoice{
			ID:        invoiceID,
			InvoiceNo: invoiceNo,
			IssueDate: draft.IssueDate,
			DueDate:   draft.DueDate,
			Client:    *client,
			Address:   address,
			Items:     items,
			Tax:       draft.Tax,
			Total:     total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListInvoices returns all invoices joined with their client name,
// ordered by ascending invoice id. No line items.
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.InvoiceSummary, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT invoices.id, invoices.invoice_no, invoices.issue_date, invoices.due_date,
		       clients.name, invoices.total
		FROM invoices
		JOIN clients ON clients.id = invoices.client_id
		ORDER BY invoices.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	summaries := []domain.InvoiceSummary{}
	for rows.Next() {
		var (
			summary   domain.InvoiceSummary
			issueDate string
			dueDate   string
		)
		if err := rows.Scan(&summary.ID, &summary.InvoiceNo, &issueDate, &dueDate, &summary.ClientName, &summary.Total); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if summary.IssueDate, err = domain.ParseDateOnly(issueDate); err != nil {
			return nil, fmt.Errorf("failed to parse issue date: %w", err)
		}
		if summary.DueDate, err = domain.ParseDateOnly(dueDate); err != nil {
			return nil, fmt.Errorf("failed to parse due date: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return summaries, nil
}

// GetInvoiceByID returns one invoice with its client and all line
// items, each joined against its product for the display name, items
// in original insertion order. Header and items are read in one
// transaction so a concurrent delete can never yield a header with
// zero items.
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	var invoice domain.Invoice

	err := r.db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var (
			issueDate string
			dueDate   string
		)
		err := tx.QueryRow(ctx, `
			SELECT invoices.id, invoices.invoice_no, invoices.issue_date, invoices.due_date,
			       invoices.address, invoices.tax, invoices.total,
			       clients.id, clients.name, clients.address, clients.company_registration_no
			FROM invoices
			JOIN clients ON clients.id = invoices.client_id
			WHERE invoices.id = $1
		`, invoiceID).Scan(
			&invoice.ID, &invoice.InvoiceNo, &issueDate, &dueDate,
			&invoice.Address, &invoice.Tax, &invoice.Total,
			&invoice.Client.ID, &invoice.Client.Name, &invoice.Client.Address, &invoice.Client.CompanyRegistrationNo,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &domain.NotFoundError{Entity: "invoice", ID: invoiceID}
			}
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		if invoice.IssueDate, err = domain.ParseDateOnly(issueDate); err != nil {
			return fmt.Errorf("failed to parse issue date: %w", err)
		}
		if invoice.DueDate, err = domain.ParseDateOnly(dueDate); err != nil {
			return fmt.Errorf("failed to parse due date: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT invoice_items.id, invoice_items.product_id, products.name,
			       invoice_items.unit_price, invoice_items.quantity, invoice_items.line_total
			FROM invoice_items
			JOIN products ON products.id = invoice_items.product_id
			WHERE invoice_items.invoice_id = $1
			ORDER BY invoice_items.id
		`, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to query invoice items: %w", err)
		}
		defer rows.Close()

		invoice.Items = []domain.InvoiceItem{}
		for rows.Next() {
			var item domain.InvoiceItem
			if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity, &item.LineTotal); err != nil {
				return fmt.Errorf("failed to scan invoice item: %w", err)
			}
			invoice.Items = append(invoice.Items, item)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating invoice items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// DeleteInvoice removes an invoice's line items and header in one
// transaction. No soft delete; clients and products are untouched.
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	return r.db.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invoices WHERE id = $1)`, invoiceID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check invoice existence: %w", err)
		}
		if !exists {
			return &domain.NotFoundError{Entity: "invoice", ID: invoiceID}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return nil
	})
}
