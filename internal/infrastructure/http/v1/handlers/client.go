package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/id"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/clients"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/vehicles"
)

// ClientHandler handles HTTP requests for the client catalog.
type ClientHandler struct {
	*BaseHandler
	service  *clients.Service
	vehicles *vehicles.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *clients.Service, vehicleService *vehicles.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service, vehicles: vehicleService}
}

// RegisterRoutes registers client endpoints.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/vehicles", h.ListVehicles)
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var client clients.Client
	if !h.BindJSON(c, &client) {
		return
	}

	client.ID = id.New()
	if err := h.service.Create(c.Request.Context(), &client); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, client.ID)
}

// GetByID handles GET /clients/:id.
func (h *ClientHandler) GetByID(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, client)
}

// Update handles PUT /clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var client clients.Client
	if !h.BindJSON(c, &client) {
		return
	}
	client.ID = clientID

	if err := h.service.Update(c.Request.Context(), &client); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, client)
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// ListVehicles handles GET /clients/:id/vehicles.
func (h *ClientHandler) ListVehicles(c *gin.Context) {
	clientID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.vehicles.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}
