package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/repository"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Service is the appointment workflow engine.
//
// Per request:  Pending -> Approved | Rejected | Cancelled (all terminal).
// Per appointment: Approved -> Completed | Cancelled.
//
// Approval creates the appointment and flips the request in two
// sequential collection writes; there is no cross-collection transaction,
// matching the storage contract.
type Service struct {
	requests     repository.AppointmentRequestRepository
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	ids          idgen.Generator
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewService(
	requests repository.AppointmentRequestRepository,
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	ids idgen.Generator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		requests:     requests,
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		ids:          ids,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *Service) SubmitRequest(ctx context.Context, req *model.SubmitRequestRequest) (result *model.AppointmentRequest, err error) {
	defer func() { s.metrics.Transition("submit", err) }()

	if strings.TrimSpace(req.Reason) == "" {
		return nil, errors.Validation("reason is required")
	}
	if len(req.PreferredDates) == 0 {
		return nil, errors.Validation("at least one preferred date is required")
	}
	if len(req.PreferredTimes) == 0 {
		return nil, errors.Validation("at least one preferred time is required")
	}

	doctor, err := s.doctors.GetByUsername(ctx, req.DoctorUsername)
	if err != nil {
		return nil, errors.Validation("unknown doctor")
	}

	patient, err := s.patients.GetByID(ctx, req.PatientUserID)
	if err != nil {
		return nil, errors.Validation("unknown patient")
	}

	now := s.now()
	request := &model.AppointmentRequest{
		RequestID:      s.ids.Next(idgen.PrefixRequest),
		PatientUserID:  patient.ID,
		PatientName:    patient.FullName,
		PatientEmail:   patient.Email,
		PatientMobile:  patient.MobileNumber,
		DoctorUsername: doctor.Username,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialization,
		Reason:         req.Reason,
		Notes:          req.Notes,
		PreferredDates: req.PreferredDates,
		PreferredTimes: req.PreferredTimes,
		Status:         model.RequestStatusPending,
		RequestDate:    now.Format(dateLayout),
		RequestTime:    now.Format(timeLayout),
	}

	if err = s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to submit request: %w", err)
	}

	log.Debug().Str("request_id", request.RequestID).Str("doctor", doctor.Username).Msg("appointment requested")
	return request, nil
}

// ApproveRequest transitions a pending request to Approved and derives
// the appointment. A request that is unknown or no longer pending fails
// with not-found: re-approval is an error, not an idempotent no-op.
// chosenDate and chosenTime, when supplied, must come from the request's
// preference lists; when empty, the first preference is kept.
func (s *Service) ApproveRequest(ctx context.Context, requestID, adminNotes, chosenDate, chosenTime string) (apt *model.Appointment, err error) {
	defer func() { s.metrics.Transition("approve", err) }()

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if request.Status != model.RequestStatusPending {
		return nil, errors.NotFound("pending request")
	}

	date := request.PreferredDates[0]
	if chosenDate != "" {
		if !contains(request.PreferredDates, chosenDate) {
			return nil, errors.InvalidSelection("chosen date is not among the preferred dates")
		}
		date = chosenDate
	}

	timeOfDay := request.PreferredTimes[0]
	if chosenTime != "" {
		if !contains(request.PreferredTimes, chosenTime) {
			return nil, errors.InvalidSelection("chosen time is not among the preferred times")
		}
		timeOfDay = chosenTime
	}

	apt = &model.Appointment{
		AppointmentID:   s.ids.Next(idgen.PrefixAppointment),
		RequestID:       request.RequestID,
		PatientUserID:   request.PatientUserID,
		PatientName:     request.PatientName,
		PatientEmail:    request.PatientEmail,
		PatientMobile:   request.PatientMobile,
		DoctorUsername:  request.DoctorUsername,
		DoctorName:      request.DoctorName,
		Specialization:  request.Specialization,
		Reason:          request.Reason,
		Notes:           request.Notes,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          model.AppointmentStatusApproved,
		ApprovalDate:    s.now().Format(dateLayout),
		AdminNotes:      adminNotes,
	}

	if err = s.appointments.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// Second write: a failure here leaves the appointment created and the
	// request still pending.
	request.Status = model.RequestStatusApproved
	if err = s.requests.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	log.Info().Str("request_id", requestID).Str("appointment_id", apt.AppointmentID).Msg("request approved")
	return apt, nil
}

func (s *Service) RejectRequest(ctx context.Context, requestID, reason string) (err error) {
	defer func() { s.metrics.Transition("reject", err) }()

	if strings.TrimSpace(reason) == "" {
		return errors.Validation("rejection reason is required")
	}

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}
	if request.Status != model.RequestStatusPending {
		return errors.InvalidState(fmt.Sprintf("cannot reject a %s request", strings.ToLower(string(request.Status))))
	}

	request.Status = model.RequestStatusRejected
	request.RejectionReason = reason
	request.RejectionDate = s.now().Format(dateLayout)

	if err = s.requests.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to reject request: %w", err)
	}

	log.Info().Str("request_id", requestID).Msg("request rejected")
	return nil
}

func (s *Service) CancelRequest(ctx context.Context, requestID string) (err error) {
	defer func() { s.metrics.Transition("cancel_request", err) }()

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}
	if request.Status != model.RequestStatusPending {
		return errors.InvalidState(fmt.Sprintf("cannot cancel a %s request", strings.ToLower(string(request.Status))))
	}

	request.Status = model.RequestStatusCancelled
	if err = s.requests.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	return nil
}

func (s *Service) CancelAppointment(ctx context.Context, appointmentID, reason string) (err error) {
	defer func() { s.metrics.Transition("cancel_appointment", err) }()

	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	if apt.Status != model.AppointmentStatusApproved {
		return errors.InvalidState(fmt.Sprintf("cannot cancel a %s appointment", strings.ToLower(string(apt.Status))))
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancellationReason = reason
	apt.CancellationDate = s.now().Format(dateLayout)

	if err = s.appointments.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	log.Info().Str("appointment_id", appointmentID).Msg("appointment cancelled")
	return nil
}

func (s *Service) CompleteAppointment(ctx context.Context, appointmentID, notes string) (err error) {
	defer func() { s.metrics.Transition("complete", err) }()

	apt, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	if apt.Status != model.AppointmentStatusApproved {
		return errors.InvalidState(fmt.Sprintf("cannot complete a %s appointment", strings.ToLower(string(apt.Status))))
	}

	apt.Status = model.AppointmentStatusCompleted
	apt.CompletionNotes = notes
	apt.CompletionDate = s.now().Format(dateLayout)

	if err = s.appointments.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to complete appointment: %w", err)
	}

	log.Info().Str("appointment_id", appointmentID).Msg("appointment completed")
	return nil
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (*model.AppointmentRequest, error) {
	return s.requests.Get(ctx, requestID)
}

func (s *Service) ListRequests(ctx context.Context) ([]*model.AppointmentRequest, error) {
	return s.requests.List(ctx)
}

func (s *Service) ListRequestsByDoctor(ctx context.Context, doctorUsername string) ([]*model.AppointmentRequest, error) {
	return s.requests.ListByDoctor(ctx, doctorUsername)
}

func (s *Service) ListRequestsByPatient(ctx context.Context, patientUserID string) ([]*model.AppointmentRequest, error) {
	return s.requests.ListByPatient(ctx, patientUserID)
}

func (s *Service) GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	return s.appointments.Get(ctx, appointmentID)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}
	sortByDate(appointments)
	return appointments, nil
}

func (s *Service) ListAppointmentsByDoctor(ctx context.Context, doctorUsername string) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorUsername)
	if err != nil {
		return nil, err
	}
	sortByDate(appointments)
	return appointments, nil
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientUserID string) ([]*model.Appointment, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientUserID)
	if err != nil {
		return nil, err
	}
	sortByDate(appointments)
	return appointments, nil
}

// sortByDate orders appointments ascending by date; insertion order is
// the tie-break on same-day collisions.
func sortByDate(appointments []*model.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		di, _ := time.Parse(dateLayout, appointments[i].AppointmentDate)
		dj, _ := time.Parse(dateLayout, appointments[j].AppointmentDate)
		return di.Before(dj)
	})
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
