package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/invoice"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/documents/quote"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/vehicles"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	*BaseHandler
	service  *vehicles.Service
	invoices *invoice.Service
	quotes   *quote.Service
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(base *BaseHandler, service *vehicles.Service, invoices *invoice.Service, quotes *quote.Service) *VehicleHandler {
	return &VehicleHandler{BaseHandler: base, service: service, invoices: invoices, quotes: quotes}
}

// RegisterRoutes registers vehicle endpoints.
func (h *VehicleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/invoices", h.ListInvoices)
	rg.GET("/:id/quotes", h.ListQuotes)
}

// Create handles POST /vehicles (direct CRUD path, not the document
// upsert).
func (h *VehicleHandler) Create(c *gin.Context) {
	var vehicle vehicles.Vehicle
	if !h.BindJSON(c, &vehicle) {
		return
	}

	vehicle.ID = id.New()
	if err := h.service.Create(c.Request.Context(), &vehicle); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, vehicle.ID)
}

// GetByID handles GET /vehicles/:id.
func (h *VehicleHandler) GetByID(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.service.GetByID(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, vehicle)
}

// ListInvoices handles GET /vehicles/:id/invoices.
func (h *VehicleHandler) ListInvoices(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.invoices.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// ListQuotes handles GET /vehicles/:id/quotes.
func (h *VehicleHandler) ListQuotes(c *gin.Context) {
	vehicleID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.quotes.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}
