package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/service/appointment"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req model.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	request, err := h.service.SubmitRequest(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "appointment request submitted", gin.H{"requestId": request.RequestID})
}

func (h *Handler) GetRequest(c *gin.Context) {
	request, err := h.service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", request)
}

func (h *Handler) ListRequests(c *gin.Context) {
	if doctor := c.Query("doctor"); doctor != "" {
		requests, err := h.service.ListRequestsByDoctor(c.Request.Context(), doctor)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, "", requests)
		return
	}
	if patient := c.Query("patient"); patient != "" {
		requests, err := h.service.ListRequestsByPatient(c.Request.Context(), patient)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, "", requests)
		return
	}

	requests, err := h.service.ListRequests(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", requests)
}

func (h *Handler) ApproveRequest(c *gin.Context) {
	var req model.ApproveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid approval payload", err))
		return
	}

	apt, err := h.service.ApproveRequest(c.Request.Context(), c.Param("id"), req.AdminNotes, req.ChosenDate, req.ChosenTime)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointment approved successfully", gin.H{"appointmentId": apt.AppointmentID})
}

func (h *Handler) RejectRequest(c *gin.Context) {
	var req model.RejectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("rejection reason is required", err))
		return
	}

	if err := h.service.RejectRequest(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointment request rejected", nil)
}

func (h *Handler) CancelRequest(c *gin.Context) {
	if err := h.service.CancelRequest(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointment request cancelled", nil)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	apt, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	if doctor := c.Query("doctor"); doctor != "" {
		appointments, err := h.service.ListAppointmentsByDoctor(c.Request.Context(), doctor)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, "", appointments)
		return
	}
	if patient := c.Query("patient"); patient != "" {
		appointments, err := h.service.ListAppointmentsByPatient(c.Request.Context(), patient)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, "", appointments)
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", appointments)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid cancellation payload", err))
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointment cancelled successfully", nil)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	var req model.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid completion payload", err))
		return
	}

	if err := h.service.CompleteAppointment(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "appointment marked as completed", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.SubmitRequest)
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.POST("/:id/approve", h.ApproveRequest)
		requests.POST("/:id/reject", h.RejectRequest)
		requests.POST("/:id/cancel", h.CancelRequest)
	}

	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/complete", h.CompleteAppointment)
	}
}
