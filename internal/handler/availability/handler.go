package availability

import (
	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/service/availability"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/httputil"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddSlot(c *gin.Context) {
	var req model.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid slot payload", err))
		return
	}

	slot, err := h.service.AddSlot(c.Request.Context(), c.Param("username"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "availability slot added", gin.H{"slotId": slot.SlotID, "slot": slot})
}

func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", slots)
}

func (h *Handler) RemoveSlot(c *gin.Context) {
	if err := h.service.RemoveSlot(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "slot removed successfully", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/doctors/:username/slots", h.AddSlot)
	r.GET("/doctors/:username/slots", h.ListSlots)
	r.DELETE("/slots/:id", h.RemoveSlot)
}
