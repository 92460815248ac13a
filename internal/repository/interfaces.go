package repository

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
)

// All repository interfaces in one file
type (
	// CredentialRepository handles the singleton admin credential and
	// first-start seeding of reference data.
	CredentialRepository interface {
		GetAdmin(ctx context.Context) (*model.AdminCredential, error)
		Seed(ctx context.Context) error
	}

	// DoctorRepository reads the static roster.
	DoctorRepository interface {
		List(ctx context.Context) ([]*model.Doctor, error)
		GetByUsername(ctx context.Context, username string) (*model.Doctor, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context, origin model.PatientOrigin) ([]*model.Patient, error)
		GetByID(ctx context.Context, id string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id string) error
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, slot *model.AvailabilitySlot) error
		ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.AvailabilitySlot, error)
		Delete(ctx context.Context, slotID string) error
	}

	AppointmentRequestRepository interface {
		Create(ctx context.Context, req *model.AppointmentRequest) error
		Get(ctx context.Context, requestID string) (*model.AppointmentRequest, error)
		Update(ctx context.Context, req *model.AppointmentRequest) error
		List(ctx context.Context) ([]*model.AppointmentRequest, error)
		ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.AppointmentRequest, error)
		ListByPatient(ctx context.Context, patientUserID string) ([]*model.AppointmentRequest, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, appointmentID string) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientUserID string) ([]*model.Appointment, error)
	}
)
