package service

import (
	"context"
	"fmt"

	"github.com/billforge/invoicing-api/internal/domain"
	"github.com/billforge/invoicing-api/internal/repository"
)

// InvoiceServiceError represents an error in the invoice service
type InvoiceServiceError struct {
	Op  string
	Err error
}

func (e *InvoiceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap exposes the underlying error so callers can match the domain
// taxonomy with errors.As.
func (e *InvoiceServiceError) Unwrap() error {
	return e.Err
}

// InvoiceService defines the interface for invoice business logic
type InvoiceService interface {
	CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.InvoiceSummary, error)
	GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID int64) error
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository) InvoiceService {
	return &InvoiceServiceImpl{
		repository: repo,
	}
}

// CreateInvoice validates the draft and persists it. Validation runs
// before any store access, so an invalid request writes zero rows.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	if err := draft.Validate(); err != nil {
		return nil, &InvoiceServiceError{
			Op:  "validate_invoice",
			Err: err,
		}
	}

	invoice, err := s.repository.CreateInvoice(ctx, draft)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "create_invoice",
			Err: err,
		}
	}

	return invoice, nil
}

// ListInvoices retrieves all invoices with their client names
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context) ([]domain.InvoiceSummary, error) {
	summaries, err := s.repository.ListInvoices(ctx)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "list_invoices",
			Err: err,
		}
	}
	return summaries, nil
}

// GetInvoiceByID retrieves a single invoice with client and items
func (s *InvoiceServiceImpl) GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	invoice, err := s.repository.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, &InvoiceServiceError{
			Op:  "get_invoice",
			Err: err,
		}
	}
	return invoice, nil
}

// DeleteInvoice removes an invoice and its line items
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	if err := s.repository.DeleteInvoice(ctx, invoiceID); err != nil {
		return &InvoiceServiceError{
			Op:  "delete_invoice",
			Err: err,
		}
	}
	return nil
}
