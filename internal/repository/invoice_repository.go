package repository

import (
	"context"

	"github.com/billforge/invoicing-api/internal/domain"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateInvoice prices and persists a draft as one atomic unit and
	// returns the fully assembled invoice without a re-read.
	CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error)

	// ListInvoices returns all invoices joined with their client name,
	// ordered by ascending invoice id.
	ListInvoices(ctx context.Context) ([]domain.InvoiceSummary, error)

	// GetInvoiceByID returns one invoice with its client and all line
	// items in original insertion order.
	GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice and its line items atomically.
	DeleteInvoice(ctx context.Context, invoiceID int64) error
}
