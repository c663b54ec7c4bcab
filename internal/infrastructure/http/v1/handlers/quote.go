package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/quote"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/http/v1/dto"
)

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	*BaseHandler
	service *quote.Service
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(base *BaseHandler, service *quote.Service) *QuoteHandler {
	return &QuoteHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers quote endpoints.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/complete", h.CreateComplete)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/lines", h.GetLines)
}

// CreateComplete handles POST /quotes/complete. Same transactional
// and idempotency semantics as invoices.
func (h *QuoteHandler) CreateComplete(c *gin.Context) {
	var req dto.CreateQuoteRequest
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

// GetByID handles GET /quotes/:id.
func (h *QuoteHandler) GetByID(c *gin.Context) {
	quoteID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	q, err := h.service.GetByID(c.Request.Context(), quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// GetLines handles GET /quotes/:id/lines.
func (h *QuoteHandler) GetLines(c *gin.Context) {
	quoteID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	lines, err := h.service.GetLines(c.Request.Context(), quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lines)
}

// List handles GET /quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}
