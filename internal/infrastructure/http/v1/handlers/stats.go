package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/domain/stats"
)

// StatsHandler handles reporting endpoints.
type StatsHandler struct {
	*BaseHandler
	service *stats.Service
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(base *BaseHandler, service *stats.Service) *StatsHandler {
	return &StatsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers stats endpoints.
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/summary", h.Summary)
	rg.GET("/daily", h.Daily)
	rg.GET("/top-clients", h.TopClients)
	rg.GET("/documents", h.DocumentsOn)
}

func (h *StatsHandler) parseRange(c *gin.Context) (stats.DateRange, bool) {
	from, err := h.ParseDateQuery(c, "start")
	if err != nil {
		h.Error(c, err)
		return stats.DateRange{}, false
	}
	to, err := h.ParseDateQuery(c, "end")
	if err != nil {
		h.Error(c, err)
		return stats.DateRange{}, false
	}
	return stats.DateRange{From: from, To: to}, true
}

// Summary handles GET /stats/summary.
func (h *StatsHandler) Summary(c *gin.Context) {
	r, ok := h.parseRange(c)
	if !ok {
		return
	}

	sum, err := h.service.Summary(c.Request.Context(), r)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sum)
}

// Daily handles GET /stats/daily.
func (h *StatsHandler) Daily(c *gin.Context) {
	r, ok := h.parseRange(c)
	if !ok {
		return
	}

	entries, err := h.service.Daily(c.Request.Context(), r)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}

// TopClients handles GET /stats/top-clients?limit=N.
func (h *StatsHandler) TopClients(c *gin.Context) {
	r, ok := h.parseRange(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 0)
	items, err := h.service.TopClients(c.Request.Context(), r, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// DocumentsOn handles GET /stats/documents?date=YYYY-MM-DD.
func (h *StatsHandler) DocumentsOn(c *gin.Context) {
	day, err := h.ParseDateQuery(c, "date")
	if err != nil {
		h.Error(c, err)
		return
	}
	if day == nil {
		h.Error(c, apperror.NewValidation("date is required").WithDetail("param", "date"))
		return
	}

	items, err := h.service.DocumentsOn(c.Request.Context(), *day)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}
