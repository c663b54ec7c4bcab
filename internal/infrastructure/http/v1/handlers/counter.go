package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/apperror"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/appctx"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/core/counter"
	"github.com/khaliljaouani/gestion-factures-rouen/internal/infrastructure/http/v1/dto"
)

// CounterHandler handles administrative access to the numbering
// counters. Regular numbering never goes through here; it happens
// inside document creation.
type CounterHandler struct {
	*BaseHandler
	store counter.Store
}

// NewCounterHandler creates a new counter handler.
func NewCounterHandler(base *BaseHandler, store counter.Store) *CounterHandler {
	return &CounterHandler{BaseHandler: base, store: store}
}

// RegisterRoutes registers counter endpoints.
func (h *CounterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Snapshot)
	rg.GET("/:type/next", h.PeekNext)
	rg.PUT("/:type", h.SetValue)
}

func (h *CounterHandler) parseType(c *gin.Context) (counter.Type, bool) {
	t := counter.Type(c.Param("type"))
	if !t.IsValid() {
		h.Error(c, apperror.NewValidation("unknown counter type").
			WithDetail("type", c.Param("type")))
		return "", false
	}
	return t, true
}

// Snapshot handles GET /counters.
func (h *CounterHandler) Snapshot(c *gin.Context) {
	values, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, values)
}

// PeekNext handles GET /counters/:type/next. The preview is
// advisory: a concurrent creation may claim the number first.
func (h *CounterHandler) PeekNext(c *gin.Context) {
	t, ok := h.parseType(c)
	if !ok {
		return
	}

	next, err := h.store.PeekNext(c.Request.Context(), t)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewNextNumberResponse(t, next))
}

// SetValue handles PUT /counters/:type, the audited admin override.
func (h *CounterHandler) SetValue(c *gin.Context) {
	t, ok := h.parseType(c)
	if !ok {
		return
	}

	var req dto.SetCounterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.store.SetValue(ctx, t, *req.Value, appctx.CallerName(ctx)); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "counter updated")
}
