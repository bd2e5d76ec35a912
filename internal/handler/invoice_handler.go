package handler

import (
	"errors"

	"github.com/billforge/invoicing-api/internal/domain"
	"github.com/billforge/invoicing-api/internal/logger"
	"github.com/billforge/invoicing-api/internal/model"
	"github.com/billforge/invoicing-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler handles HTTP requests for invoice operations
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice handles the POST /invoices endpoint
// @Summary Create an invoice
// @Description Create a new invoice with server-computed line totals and grand total
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.InvoiceCreateRequest true "Invoice data"
// @Success 201 {object} model.InvoiceResponse "Invoice created successfully"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Client or product not found"
// @Failure 409 {object} model.ErrorResponse "Duplicate invoice number"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var input model.InvoiceCreateRequest
	if err := bindJSON(c, &input); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input.ToDraft())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondCreated(c, model.NewInvoiceResponse(invoice))
}

// ListInvoices handles the GET /invoices endpoint
// @Summary List all invoices
// @Description Get all invoices with client names, ordered by id
// @Tags invoices
// @Produce json
// @Success 200 {object} model.InvoiceListResponse "List of invoices"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	summaries, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, model.NewInvoiceListResponse(summaries))
}

// GetInvoiceByID handles the GET /invoices/{invoiceId} endpoint
// @Summary Get an invoice by ID
// @Description Retrieve a specific invoice with its client and line items
// @Tags invoices
// @Produce json
// @Param invoiceId path int true "Invoice ID"
// @Success 200 {object} model.InvoiceResponse "Invoice details"
// @Failure 400 {object} model.ErrorResponse "Invalid invoice ID"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [get]
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	invoiceID, err := getPathID(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondOK(c, model.NewInvoiceResponse(invoice))
}

// DeleteInvoice handles the DELETE /invoices/{invoiceId} endpoint
// @Summary Delete an invoice
// @Description Delete an invoice and all its line items
// @Tags invoices
// @Produce json
// @Param invoiceId path int true "Invoice ID"
// @Success 204 "Invoice deleted successfully"
// @Failure 400 {object} model.ErrorResponse "Invalid invoice ID"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/{invoiceId} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := getPathID(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondNoContent(c)
}

// respondServiceError maps domain errors to HTTP statuses. Anything
// outside the taxonomy is a storage failure: logged with its cause,
// surfaced as a generic 500.
func (h *InvoiceHandler) respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		respondBadRequest(c, "Validation failed", newErrorDetail(validationErr.Field, validationErr.Reason))
	case errors.As(err, &notFoundErr):
		respondNotFound(c, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondConflict(c, conflictErr.Error())
	default:
		logger.FromGinContext(c).Error("invoice operation failed", zap.Error(err))
		respondInternalServerError(c, ErrInternalServer)
	}
}

// RegisterRoutes registers the API routes for the invoice handler
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/v1")

	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:invoiceId", h.GetInvoiceByID)
		invoices.DELETE("/:invoiceId", h.DeleteInvoice)
	}
}
