package model

import (
	"github.com/billforge/invoicing-api/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemCreateRequest is one requested line in an invoice creation
type InvoiceItemCreateRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// InvoiceCreateRequest is the POST /invoices body. InvoiceNo and
// Address are optional: a missing number is generated server-side and
// a missing address defaults to the client's stored address.
type InvoiceCreateRequest struct {
	InvoiceNo string                     `json:"invoiceNo"`
	IssueDate domain.DateOnly            `json:"issueDate"`
	DueDate   domain.DateOnly            `json:"dueDate"`
	ClientID  int64                      `json:"clientId"`
	Address   string                     `json:"address"`
	Items     []InvoiceItemCreateRequest `json:"items"`
	Tax       decimal.Decimal            `json:"tax"`
}

// ToDraft converts the request into a domain draft for validation and
// persistence.
func (r *InvoiceCreateRequest) ToDraft() *domain.InvoiceDraft {
	items := make([]domain.InvoiceItemDraft, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.InvoiceItemDraft{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return &domain.InvoiceDraft{
		InvoiceNo: r.InvoiceNo,
		IssueDate: r.IssueDate,
		DueDate:   r.DueDate,
		ClientID:  r.ClientID,
		Address:   r.Address,
		Items:     items,
		Tax:       r.Tax,
	}
}

// ClientResponse is the embedded client block in an invoice response
type ClientResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Address               string `json:"address"`
	CompanyRegistrationNo string `json:"companyRegistrationNo"`
}

// InvoiceItemResponse is one priced line in an invoice response.
// Money fields are rendered with two decimals.
type InvoiceItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

// InvoiceResponse is the full invoice representation returned from
// create and get
type InvoiceResponse struct {
	ID        int64                 `json:"id"`
	InvoiceNo string                `json:"invoiceNo"`
	IssueDate domain.DateOnly       `json:"issueDate"`
	DueDate   domain.DateOnly       `json:"dueDate"`
	Client    ClientResponse        `json:"client"`
	Address   string                `json:"address"`
	Items     []InvoiceItemResponse `json:"items"`
	Tax       string                `json:"tax"`
	Total     string                `json:"total"`
}

// InvoiceSummaryResponse is one row of the invoice list
type InvoiceSummaryResponse struct {
	ID         int64           `json:"id"`
	InvoiceNo  string          `json:"invoiceNo"`
	IssueDate  domain.DateOnly `json:"issueDate"`
	DueDate    domain.DateOnly `json:"dueDate"`
	ClientName string          `json:"clientName"`
	Total      string          `json:"total"`
}

// InvoiceListResponse is the GET /invoices body
type InvoiceListResponse struct {
	Invoices []InvoiceSummaryResponse `json:"invoices"`
}

// NewInvoiceResponse converts a domain invoice into its API shape
func NewInvoiceResponse(invoice *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = InvoiceItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal.StringFixed(2),
		}
	}
	return InvoiceResponse{
		ID:        invoice.ID,
		InvoiceNo: invoice.InvoiceNo,
		IssueDate: invoice.IssueDate,
		DueDate:   invoice.DueDate,
		Client: ClientResponse{
			ID:                    invoice.Client.ID,
			Name:                  invoice.Client.Name,
			Address:               invoice.Client.Address,
			CompanyRegistrationNo: invoice.Client.CompanyRegistrationNo,
		},
		Address: invoice.Address,
		Items:   items,
		Tax:     invoice.Tax.StringFixed(2),
		Total:   invoice.Total.StringFixed(2),
	}
}

// NewInvoiceListResponse converts list-view rows into the API shape
func NewInvoiceListResponse(summaries []domain.InvoiceSummary) InvoiceListResponse {
	invoices := make([]InvoiceSummaryResponse, len(summaries))
	for i, summary := range summaries {
		invoices[i] = InvoiceSummaryResponse{
			ID:         summary.ID,
			InvoiceNo:  summary.InvoiceNo,
			IssueDate:  summary.IssueDate,
			DueDate:    summary.DueDate,
			ClientName: summary.ClientName,
			Total:      summary.Total.StringFixed(2),
		}
	}
	return InvoiceListResponse{Invoices: invoices}
}
