package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// formatInvoiceNo renders a sequence number as a fixed-width invoice
// tag, e.g. INV-00001.
func formatInvoiceNo(seq int64) string {
	return fmt.Sprintf("INV-%05d", seq)
}

// nextInvoiceNo derives the next sequential invoice number from
// one-greater-than the current maximum invoice id. It must run inside
// the same transaction as the insert; even then two transactions can
// race onto the same number under weaker isolation, which is why the
// UNIQUE constraint on invoice_no stays the authoritative arbiter.
func nextInvoiceNo(ctx context.Context, q rowQuerier) (string, error) {
	var nextID int64
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM invoices`).Scan(&nextID)
	if err != nil {
		return "", fmt.Errorf("failed to derive next invoice number: %w", err)
	}
	return formatInvoiceNo(nextID), nil
}

// isUniqueViolation reports whether err is the store rejecting a
// duplicate key, the backstop for concurrent numbering collisions.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
