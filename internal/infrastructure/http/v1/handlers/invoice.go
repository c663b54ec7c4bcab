package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/http/v1/dto"
)

// HeaderIdempotencyKey carries the idempotency token. It wins over
// the requestId field in the body when both are present.
const HeaderIdempotencyKey = "Idempotency-Key"

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers invoice endpoints.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/complete", h.CreateComplete)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/lines", h.GetLines)
}

// CreateComplete handles POST /invoices/complete: header, lines,
// vehicle upsert and numbering in one transaction.
//
// A replayed idempotency token answers 200 with duplicate=true
// instead of 201; nothing is written twice.
func (h *InvoiceHandler) CreateComplete(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if key := c.GetHeader(HeaderIdempotencyKey); key != "" {
		req.RequestID = key
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.CreateComplete(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetByID handles GET /invoices/:id.
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, inv)
}

// GetLines handles GET /invoices/:id/lines.
func (h *InvoiceHandler) GetLines(c *gin.Context) {
	invoiceID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.GetLines(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lines)
}

// List handles GET /invoices: the journal with joined client and
// plate.
func (h *InvoiceHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}
