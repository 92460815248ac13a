package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddesk/frontdesk-api/internal/handler"
	appointmenthandler "github.com/meddesk/frontdesk-api/internal/handler/appointment"
	authhandler "github.com/meddesk/frontdesk-api/internal/handler/auth"
	availabilityhandler "github.com/meddesk/frontdesk-api/internal/handler/availability"
	doctorhandler "github.com/meddesk/frontdesk-api/internal/handler/doctor"
	patienthandler "github.com/meddesk/frontdesk-api/internal/handler/patient"
	"github.com/meddesk/frontdesk-api/internal/middleware"
	"github.com/meddesk/frontdesk-api/internal/repository/kv"
	"github.com/meddesk/frontdesk-api/internal/router"
	appointmentservice "github.com/meddesk/frontdesk-api/internal/service/appointment"
	availabilityservice "github.com/meddesk/frontdesk-api/internal/service/availability"
	identityservice "github.com/meddesk/frontdesk-api/internal/service/identity"
	patientservice "github.com/meddesk/frontdesk-api/internal/service/patient"
	memorystore "github.com/meddesk/frontdesk-api/internal/store/memory"
	"github.com/meddesk/frontdesk-api/pkg/auth"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
	"github.com/meddesk/frontdesk-api/pkg/validator"
)

var registerValidations sync.Once

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// field pulls one string value out of an object payload.
func (r apiResponse) field(t *testing.T, key string) string {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Data, &m))
	s, _ := m[key].(string)
	return s
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerValidations.Do(func() {
		require.NoError(t, validator.RegisterCustom())
	})

	st := memorystore.NewStore()
	ids := idgen.NewSequential()

	credentialRepo := kv.NewCredentialRepository(st, nil)
	require.NoError(t, credentialRepo.Seed(context.Background()))

	doctorRepo := kv.NewDoctorRepository(st, nil)
	patientRepo := kv.NewPatientRepository(st, nil)
	availabilityRepo := kv.NewAvailabilityRepository(st, nil)
	requestRepo := kv.NewAppointmentRequestRepository(st, nil)
	appointmentRepo := kv.NewAppointmentRepository(st, nil)

	tokens := auth.NewTokenService("test-secret", 1)
	identitySvc := identityservice.NewService(credentialRepo, doctorRepo, patientRepo, tokens)
	patientSvc := patientservice.NewService(patientRepo, ids)
	availabilitySvc := availabilityservice.NewService(availabilityRepo, doctorRepo, ids)
	appointmentSvc := appointmentservice.NewService(requestRepo, appointmentRepo, doctorRepo, patientRepo, ids, nil)

	r := router.NewRouter(
		middleware.NewAuthMiddleware(identitySvc),
		authhandler.NewHandler(identitySvc),
		patienthandler.NewHandler(patientSvc),
		doctorhandler.NewHandler(doctorRepo),
		availabilityhandler.NewHandler(availabilitySvc),
		appointmenthandler.NewHandler(appointmentSvc),
		handler.NewHandler(st, prometheus.NewRegistry()),
		router.Config{CORS: middleware.DefaultCORSConfig()},
	)
	r.Setup()
	return r.Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func login(t *testing.T, engine *gin.Engine, role string, body interface{}) string {
	t.Helper()
	code, resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login/"+role, body, "")
	require.Equal(t, http.StatusOK, code, resp.Message)
	token := resp.field(t, "token")
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndRoster(t *testing.T) {
	engine := newTestEngine(t)

	code, _ := doJSON(t, engine, http.MethodGet, "/api/v1/health/live", nil, "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, engine, http.MethodGet, "/api/v1/health/ready", nil, "")
	assert.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Sharma")
	assert.NotContains(t, w.Body.String(), "doc123")
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	// Portal signup is public.
	code, resp := doJSON(t, engine, http.MethodPost, "/api/v1/register", map[string]interface{}{
		"fullName":     "Asha Rao",
		"email":        "asha@example.com",
		"mobileNumber": "9876543210",
		"password":     "secret",
	}, "")
	require.Equal(t, http.StatusCreated, code, resp.Message)
	patientID := resp.field(t, "patientUserId")
	require.NotEmpty(t, patientID)

	patientToken := login(t, engine, "patient", map[string]string{
		"email": "asha@example.com", "password": "secret",
	})
	adminToken := login(t, engine, "admin", map[string]string{
		"username": "admin", "password": "admin123",
	})

	// Submission requires a session.
	submission := map[string]interface{}{
		"patientUserId":  patientID,
		"doctorUsername": "doctor1",
		"reason":         "chest pain",
		"preferredDates": []string{"2024-06-01"},
		"preferredTimes": []string{"10:00"},
	}
	code, _ = doJSON(t, engine, http.MethodPost, "/api/v1/requests", submission, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = doJSON(t, engine, http.MethodPost, "/api/v1/requests", submission, patientToken)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	requestID := resp.field(t, "requestId")
	require.NotEmpty(t, requestID)

	// Malformed preferences are stopped at the binding layer.
	bad := map[string]interface{}{
		"patientUserId":  patientID,
		"doctorUsername": "doctor1",
		"reason":         "checkup",
		"preferredDates": []string{"01-06-2024"},
		"preferredTimes": []string{"10:00"},
	}
	code, _ = doJSON(t, engine, http.MethodPost, "/api/v1/requests", bad, patientToken)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/approve", requestID), map[string]string{
		"adminNotes": "bring reports",
	}, adminToken)
	require.Equal(t, http.StatusOK, code, resp.Message)
	appointmentID := resp.field(t, "appointmentId")
	require.NotEmpty(t, appointmentID)

	code, resp = doJSON(t, engine, http.MethodGet, "/api/v1/appointments?patient="+patientID, nil, patientToken)
	require.Equal(t, http.StatusOK, code)

	code, resp = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/approve", requestID), map[string]string{}, adminToken)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%s/complete", appointmentID), map[string]string{
		"notes": "all clear",
	}, adminToken)
	assert.Equal(t, http.StatusOK, code)
}

func TestRejectRequiresReason(t *testing.T) {
	engine := newTestEngine(t)

	adminToken := login(t, engine, "admin", map[string]string{
		"username": "admin", "password": "admin123",
	})

	code, resp := doJSON(t, engine, http.MethodPost, "/api/v1/patients", map[string]interface{}{
		"fullName":     "Walk In",
		"email":        "walkin@example.com",
		"mobileNumber": "1112223333",
	}, adminToken)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	patientID := resp.field(t, "patientId")

	code, resp = doJSON(t, engine, http.MethodPost, "/api/v1/requests", map[string]interface{}{
		"patientUserId":  patientID,
		"doctorUsername": "doctor2",
		"reason":         "headache",
		"preferredDates": []string{"2024-06-02"},
		"preferredTimes": []string{"11:00"},
	}, adminToken)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	requestID := resp.field(t, "requestId")

	code, _ = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/reject", requestID), map[string]string{}, adminToken)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = doJSON(t, engine, http.MethodGet, "/api/v1/requests/"+requestID, nil, adminToken)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pending", resp.field(t, "status"))

	code, _ = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/api/v1/requests/%s/reject", requestID), map[string]string{
		"reason": "doctor unavailable",
	}, adminToken)
	assert.Equal(t, http.StatusOK, code)
}

// Patient records management is admin-only.
func TestPatientRoutesRequireAdmin(t *testing.T) {
	engine := newTestEngine(t)

	code, _ := doJSON(t, engine, http.MethodPost, "/api/v1/register", map[string]interface{}{
		"fullName":     "Asha Rao",
		"email":        "asha@example.com",
		"mobileNumber": "9876543210",
		"password":     "secret",
	}, "")
	require.Equal(t, http.StatusCreated, code)

	patientToken := login(t, engine, "patient", map[string]string{
		"email": "asha@example.com", "password": "secret",
	})

	code, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients", nil, patientToken)
	assert.Equal(t, http.StatusForbidden, code)

	adminToken := login(t, engine, "admin", map[string]string{
		"username": "admin", "password": "admin123",
	})
	code, _ = doJSON(t, engine, http.MethodGet, "/api/v1/patients?origin=portal", nil, adminToken)
	assert.Equal(t, http.StatusOK, code)
}

func TestSlotManagementOverHTTP(t *testing.T) {
	engine := newTestEngine(t)

	doctorToken := login(t, engine, "doctor", map[string]string{
		"username": "doctor1", "password": "doc123",
	})

	code, resp := doJSON(t, engine, http.MethodPost, "/api/v1/doctors/doctor1/slots", map[string]interface{}{
		"date":         "2024-06-01",
		"startTime":    "09:00",
		"endTime":      "12:00",
		"slotsPerHour": 2,
	}, doctorToken)
	require.Equal(t, http.StatusCreated, code, resp.Message)
	slotID := resp.field(t, "slotId")
	require.NotEmpty(t, slotID)

	code, _ = doJSON(t, engine, http.MethodPost, "/api/v1/doctors/doctor1/slots", map[string]interface{}{
		"date":         "2024-06-01",
		"startTime":    "12:00",
		"endTime":      "09:00",
		"slotsPerHour": 2,
	}, doctorToken)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, engine, http.MethodGet, "/api/v1/doctors/doctor1/slots", nil, doctorToken)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, engine, http.MethodDelete, "/api/v1/slots/"+slotID, nil, doctorToken)
	assert.Equal(t, http.StatusOK, code)
}
