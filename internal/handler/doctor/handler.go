package doctor

import (
	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/internal/repository"
	"github.com/meddesk/frontdesk-api/pkg/httputil"
)

type Handler struct {
	doctors repository.DoctorRepository
}

func NewHandler(doctors repository.DoctorRepository) *Handler {
	return &Handler{doctors: doctors}
}

// List returns the roster without credentials.
func (h *Handler) List(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	out := make([]map[string]string, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, d.Public())
	}
	httputil.RespondWithSuccess(c, "", out)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.List)
}
