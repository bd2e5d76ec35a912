package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// String returns the date in ISO-8601 format, as persisted in the store.
func (d DateOnly) String() string {
	return d.Time.Format("2006-01-02")
}

// ParseDateOnly parses a YYYY-MM-DD string into a DateOnly.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

// Client is reference data owned outside this service; invoices only
// read it (display name, default billing address, registration number).
type Client struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Address               string `json:"address"`
	CompanyRegistrationNo string `json:"company_registration_no"`
}

// Product is reference data; its price is read once at invoice
// creation and snapshotted into the line item.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// InvoiceItem is a priced line owned by its parent invoice. UnitPrice
// and LineTotal are snapshots taken at creation; later product price
// changes never alter them.
type InvoiceItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Invoice is the core entity: a numbered header plus at least one
// line item, created and deleted as one unit.
type Invoice struct {
	ID        int64           `json:"id"`
	InvoiceNo string          `json:"invoice_no"`
	IssueDate DateOnly        `json:"issue_date"`
	DueDate   DateOnly        `json:"due_date"`
	Client    Client          `json:"client"`
	Address   string          `json:"address"`
	Items     []InvoiceItem   `json:"items"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceSummary is the list-view row: header fields joined with the
// client display name, no line items.
type InvoiceSummary struct {
	ID         int64           `json:"id"`
	InvoiceNo  string          `json:"invoice_no"`
	IssueDate  DateOnly        `json:"issue_date"`
	DueDate    DateOnly        `json:"due_date"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceItemDraft is one requested line before pricing.
type InvoiceItemDraft struct {
	ProductID int64
	Quantity  int
}

// InvoiceDraft is a validated creation request before numbering and
// pricing. InvoiceNo and Address are optional; empty means "derive".
type InvoiceDraft struct {
	InvoiceNo string
	IssueDate DateOnly
	DueDate   DateOnly
	ClientID  int64
	Address   string
	Items     []InvoiceItemDraft
	Tax       decimal.Decimal
}

// Validate checks the draft's shape before any store access. An
// invoice must carry at least one item, every quantity must be
// positive and tax cannot be negative.
func (d *InvoiceDraft) Validate() error {
	if len(d.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "invoice must include at least one item"}
	}
	for i, item := range d.Items {
		if item.ProductID <= 0 {
			return &ValidationError{Field: itemField(i, "productId"), Reason: "product id is required"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Field: itemField(i, "quantity"), Reason: "quantity must be greater than zero"}
		}
	}
	if d.Tax.IsNegative() {
		return &ValidationError{Field: "tax", Reason: "tax cannot be negative"}
	}
	if d.ClientID <= 0 {
		return &ValidationError{Field: "clientId", Reason: "client id is required"}
	}
	if d.IssueDate.IsZero() {
		return &ValidationError{Field: "issueDate", Reason: "issue date is required"}
	}
	if d.DueDate.IsZero() {
		return &ValidationError{Field: "dueDate", Reason: "due date is required"}
	}
	return nil
}

// LineTotal computes the snapshot price of one line: unit price at
// call time multiplied by quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// InvoiceTotal sums all line totals and adds the flat tax. The result
// is stored once at creation and never recomputed.
func InvoiceTotal(items []InvoiceItem, tax decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total.Add(tax)
}
