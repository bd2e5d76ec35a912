package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFormatInvoiceNo(t *testing.T) {
	assert.Equal(t, "INV-00001", formatInvoiceNo(1))
	assert.Equal(t, "INV-00042", formatInvoiceNo(42))
	assert.Equal(t, "INV-123456", formatInvoiceNo(123456))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "invoices_invoice_no_key"}

	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("failed to insert invoice: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
