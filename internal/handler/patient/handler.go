package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/service/patient"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a front-desk patient record.
func (h *Handler) Create(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient payload", err))
		return
	}

	p, err := h.service.Register(c.Request.Context(), model.OriginAdmin, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "patient registered successfully", gin.H{"patientId": p.ID})
}

// SelfRegister creates a portal account; this is the public registration
// form.
func (h *Handler) SelfRegister(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid registration payload", err))
		return
	}

	p, err := h.service.Register(c.Request.Context(), model.OriginPortal, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, "registration successful", gin.H{"patientUserId": p.ID})
}

func (h *Handler) List(c *gin.Context) {
	origin := model.PatientOrigin(c.DefaultQuery("origin", string(model.OriginAdmin)))
	if origin != model.OriginAdmin && origin != model.OriginPortal {
		httputil.RespondWithError(c, errors.Validation("unknown origin"))
		return
	}

	patients, err := h.service.List(c.Request.Context(), origin)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", patients)
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", p)
}

func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		httputil.RespondWithError(c, errors.Validation("search query is required"))
		return
	}

	patients, err := h.service.SearchByName(c.Request.Context(), query)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "", patients)
}

func (h *Handler) Update(c *gin.Context) {
	var patch model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patch payload", err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "patient data updated successfully", p)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, "patient deleted successfully", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/search", h.Search)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
	}
}

// RegisterPublicRoutes exposes the self-registration endpoint outside the
// session gate.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.SelfRegister)
}
