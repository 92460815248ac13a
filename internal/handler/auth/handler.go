package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/service/identity"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/httputil"
)

type Handler struct {
	service *identity.Service
}

func NewHandler(service *identity.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	role := model.Role(c.Param("role"))
	if !role.Valid() {
		httputil.RespondWithError(c, errors.Validation("unknown role"))
		return
	}

	var login, password string
	if role == model.RolePatient {
		var req model.PatientLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, errors.NewValidation("invalid login payload", err))
			return
		}
		login, password = req.Email, req.Password
	} else {
		var req model.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithError(c, errors.NewValidation("invalid login payload", err))
			return
		}
		login, password = req.Username, req.Password
	}

	session, token, err := h.service.Authenticate(c.Request.Context(), role, login, password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, "login successful", gin.H{
		"token":   token,
		"session": session,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.service.EndSession(c.Request.Context())
	httputil.RespondWithSuccess(c, "logged out successfully", nil)
}

func (h *Handler) Session(c *gin.Context) {
	session := h.service.CurrentSession(c.Request.Context())
	if session == nil {
		httputil.RespondWithError(c, errors.Unauthorized("no active session"))
		return
	}
	httputil.RespondWithSuccess(c, "", session)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login/:role", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
	}
}
