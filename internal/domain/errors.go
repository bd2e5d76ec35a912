package domain

import "fmt"

// ValidationError reports a malformed creation request. It is raised
// before any store access, so a failed validation writes zero rows.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError names the entity a lookup missed: "client", "product"
// or "invoice", plus its primary key.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// ConflictError reports a duplicate invoice number, whether caught by
// the pre-check or by the store's uniqueness constraint.
type ConflictError struct {
	InvoiceNo string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("invoice number already exists: %s", e.InvoiceNo)
}

func itemField(index int, name string) string {
	return fmt.Sprintf("items[%d].%s", index, name)
}
