package appointment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/repository/kv"
	"github.com/meddesk/frontdesk-api/internal/service/appointment"
	availabilityservice "github.com/meddesk/frontdesk-api/internal/service/availability"
	memorystore "github.com/meddesk/frontdesk-api/internal/store/memory"
	apperrors "github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
)

type testEnv struct {
	svc          *appointment.Service
	availability *availabilityservice.Service
	patient      *model.Patient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	st := memorystore.NewStore()
	ids := idgen.NewSequential()

	credentialRepo := kv.NewCredentialRepository(st, nil)
	require.NoError(t, credentialRepo.Seed(ctx))

	doctorRepo := kv.NewDoctorRepository(st, nil)
	patientRepo := kv.NewPatientRepository(st, nil)
	requestRepo := kv.NewAppointmentRequestRepository(st, nil)
	appointmentRepo := kv.NewAppointmentRepository(st, nil)
	availabilityRepo := kv.NewAvailabilityRepository(st, nil)

	patient := &model.Patient{
		ID:           "PAT1001",
		Origin:       model.OriginPortal,
		FullName:     "Asha Rao",
		Email:        "asha@example.com",
		MobileNumber: "9876543210",
		Password:     "secret",
	}
	require.NoError(t, patientRepo.Create(ctx, patient))

	return &testEnv{
		svc:          appointment.NewService(requestRepo, appointmentRepo, doctorRepo, patientRepo, ids, nil),
		availability: availabilityservice.NewService(availabilityRepo, doctorRepo, ids),
		patient:      patient,
	}
}

func submitRequest(t *testing.T, env *testEnv, dates, times []string) *model.AppointmentRequest {
	t.Helper()
	request, err := env.svc.SubmitRequest(context.Background(), &model.SubmitRequestRequest{
		PatientUserID:  env.patient.ID,
		DoctorUsername: "doctor1",
		Reason:         "chest pain",
		PreferredDates: dates,
		PreferredTimes: times,
	})
	require.NoError(t, err)
	return request
}

func TestSubmitRequest(t *testing.T) {
	env := newTestEnv(t)

	request := submitRequest(t, env, []string{"2024-06-01", "2024-06-02"}, []string{"10:00"})

	assert.True(t, strings.HasPrefix(request.RequestID, "REQ"))
	assert.Equal(t, model.RequestStatusPending, request.Status)
	assert.Equal(t, "Asha Rao", request.PatientName)
	assert.Equal(t, "Dr. Sharma", request.DoctorName)
	assert.Equal(t, "Cardiology", request.Specialization)
	assert.NotEmpty(t, request.RequestDate)
	assert.NotEmpty(t, request.RequestTime)

	stored, err := env.svc.GetRequest(context.Background(), request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, request.RequestID, stored.RequestID)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, stored.PreferredDates)
}

func TestSubmitRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.SubmitRequestRequest
	}{
		{"missing reason", model.SubmitRequestRequest{
			PatientUserID: env.patient.ID, DoctorUsername: "doctor1",
			PreferredDates: []string{"2024-06-01"}, PreferredTimes: []string{"10:00"},
		}},
		{"no preferred dates", model.SubmitRequestRequest{
			PatientUserID: env.patient.ID, DoctorUsername: "doctor1", Reason: "checkup",
			PreferredTimes: []string{"10:00"},
		}},
		{"no preferred times", model.SubmitRequestRequest{
			PatientUserID: env.patient.ID, DoctorUsername: "doctor1", Reason: "checkup",
			PreferredDates: []string{"2024-06-01"},
		}},
		{"unknown doctor", model.SubmitRequestRequest{
			PatientUserID: env.patient.ID, DoctorUsername: "doctor9", Reason: "checkup",
			PreferredDates: []string{"2024-06-01"}, PreferredTimes: []string{"10:00"},
		}},
		{"unknown patient", model.SubmitRequestRequest{
			PatientUserID: "PAT9999", DoctorUsername: "doctor1", Reason: "checkup",
			PreferredDates: []string{"2024-06-01"}, PreferredTimes: []string{"10:00"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.SubmitRequest(ctx, &tc.req)
			assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
		})
	}

	requests, err := env.svc.ListRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestApproveRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})

	apt, err := env.svc.ApproveRequest(ctx, request.RequestID, "bring reports", "", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(apt.AppointmentID, "APT"))
	assert.Equal(t, request.RequestID, apt.RequestID)
	assert.Equal(t, model.AppointmentStatusApproved, apt.Status)
	assert.Equal(t, "2024-06-01", apt.AppointmentDate)
	assert.Equal(t, "10:00", apt.AppointmentTime)
	assert.Equal(t, "bring reports", apt.AdminNotes)

	updated, err := env.svc.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, updated.Status)

	appointments, err := env.svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)

	// A request is approvable exactly once.
	_, err = env.svc.ApproveRequest(ctx, request.RequestID, "", "", "")
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))

	appointments, err = env.svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 1)
}

func TestApproveRequestChosenValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env,
		[]string{"2024-06-01", "2024-06-02"},
		[]string{"10:00", "11:00"})

	_, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "2024-06-03", "")
	assert.Equal(t, apperrors.ErrInvalidSelection, apperrors.CodeOf(err))

	_, err = env.svc.ApproveRequest(ctx, request.RequestID, "", "", "12:00")
	assert.Equal(t, apperrors.ErrInvalidSelection, apperrors.CodeOf(err))

	// Rejected selections leave the request pending.
	pending, err := env.svc.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, pending.Status)

	apt, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "2024-06-02", "11:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02", apt.AppointmentDate)
	assert.Equal(t, "11:00", apt.AppointmentTime)
}

func TestRejectRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})

	err := env.svc.RejectRequest(ctx, request.RequestID, "   ")
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	unchanged, err := env.svc.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, unchanged.Status)

	require.NoError(t, env.svc.RejectRequest(ctx, request.RequestID, "doctor unavailable"))

	rejected, err := env.svc.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, rejected.Status)
	assert.Equal(t, "doctor unavailable", rejected.RejectionReason)
	assert.NotEmpty(t, rejected.RejectionDate)

	err = env.svc.RejectRequest(ctx, request.RequestID, "again")
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))
}

func TestCancelRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})
	require.NoError(t, env.svc.CancelRequest(ctx, request.RequestID))

	cancelled, err := env.svc.GetRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusCancelled, cancelled.Status)

	err = env.svc.CancelRequest(ctx, request.RequestID)
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))
}

func TestCancelAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})
	apt, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "", "")
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelAppointment(ctx, apt.AppointmentID, "patient travelling"))

	cancelled, err := env.svc.GetAppointment(ctx, apt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	assert.Equal(t, "patient travelling", cancelled.CancellationReason)

	err = env.svc.CancelAppointment(ctx, apt.AppointmentID, "again")
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))

	err = env.svc.CompleteAppointment(ctx, apt.AppointmentID, "")
	assert.Equal(t, apperrors.ErrInvalidState, apperrors.CodeOf(err))
}

func TestCompleteAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})
	apt, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "", "")
	require.NoError(t, err)

	require.NoError(t, env.svc.CompleteAppointment(ctx, apt.AppointmentID, "follow up in a month"))

	completed, err := env.svc.GetAppointment(ctx, apt.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)
	assert.Equal(t, "follow up in a month", completed.CompletionNotes)
	assert.NotEmpty(t, completed.CompletionDate)
}

func TestListAppointmentsSortedByDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, date := range []string{"2024-06-10", "2024-06-01", "2024-06-05"} {
		request := submitRequest(t, env, []string{date}, []string{"10:00"})
		_, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "", "")
		require.NoError(t, err)
	}

	appointments, err := env.svc.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 3)
	assert.Equal(t, "2024-06-01", appointments[0].AppointmentDate)
	assert.Equal(t, "2024-06-05", appointments[1].AppointmentDate)
	assert.Equal(t, "2024-06-10", appointments[2].AppointmentDate)
}

// Slot capacity is informational: approvals never consult the ledger, so
// a day can be booked past the published capacity.
func TestApprovalIgnoresSlotCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	slot, err := env.availability.AddSlot(ctx, "doctor1", &model.AddSlotRequest{
		Date:         "2024-06-01",
		StartTime:    "10:00",
		EndTime:      "11:00",
		SlotsPerHour: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, slot.MaxCapacity)

	for i := 0; i < 3; i++ {
		request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})
		_, err := env.svc.ApproveRequest(ctx, request.RequestID, "", "", "")
		require.NoError(t, err)
	}

	appointments, err := env.svc.ListAppointmentsByDoctor(ctx, "doctor1")
	require.NoError(t, err)
	assert.Len(t, appointments, 3)

	slots, err := env.availability.ListSlots(ctx, "doctor1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].BookedSlots)
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	request := submitRequest(t, env, []string{"2024-06-01"}, []string{"10:00"})

	byDoctor, err := env.svc.ListRequestsByDoctor(ctx, "doctor1")
	require.NoError(t, err)
	assert.Len(t, byDoctor, 1)

	byOther, err := env.svc.ListRequestsByDoctor(ctx, "doctor2")
	require.NoError(t, err)
	assert.Empty(t, byOther)

	byPatient, err := env.svc.ListRequestsByPatient(ctx, env.patient.ID)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.Equal(t, request.RequestID, byPatient[0].RequestID)
}
