package kv

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type appointmentRepository struct {
	appointments *collection
}

func NewAppointmentRepository(s store.Store, m *metrics.Metrics) *appointmentRepository {
	return &appointmentRepository{appointments: newCollection(s, store.KeyAppointments, m)}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	defer r.appointments.lock()()

	var appointments []*model.Appointment
	if err := r.appointments.load(ctx, &appointments); err != nil {
		return err
	}

	appointments = append(appointments, apt)
	return r.appointments.save(ctx, appointments)
}

func (r *appointmentRepository) Get(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	appointments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, apt := range appointments {
		if apt.AppointmentID == appointmentID {
			return apt, nil
		}
	}
	return nil, errors.NotFound("appointment")
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	defer r.appointments.lock()()

	var appointments []*model.Appointment
	if err := r.appointments.load(ctx, &appointments); err != nil {
		return err
	}

	for i, existing := range appointments {
		if existing.AppointmentID == apt.AppointmentID {
			appointments[i] = apt
			return r.appointments.save(ctx, appointments)
		}
	}
	return errors.NotFound("appointment")
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	if err := r.appointments.load(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.Appointment, error) {
	appointments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	// Doctor schedules only show still-approved entries.
	var out []*model.Appointment
	for _, apt := range appointments {
		if apt.DoctorUsername == doctorUsername && apt.Status == model.AppointmentStatusApproved {
			out = append(out, apt)
		}
	}
	return out, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientUserID string) ([]*model.Appointment, error) {
	appointments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []*model.Appointment
	for _, apt := range appointments {
		if apt.PatientUserID == patientUserID {
			out = append(out, apt)
		}
	}
	return out, nil
}
