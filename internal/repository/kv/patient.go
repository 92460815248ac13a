package kv

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type patientRepository struct {
	admin  *collection
	portal *collection
}

func NewPatientRepository(s store.Store, m *metrics.Metrics) *patientRepository {
	return &patientRepository{
		admin:  newCollection(s, store.KeyPatients, m),
		portal: newCollection(s, store.KeyPatientUsers, m),
	}
}

func (r *patientRepository) byOrigin(origin model.PatientOrigin) *collection {
	if origin == model.OriginPortal {
		return r.portal
	}
	return r.admin
}

// Create appends the patient to its origin's collection. Uniqueness on
// email or mobile number is checked inside the collection lock so the
// check and the append form one cycle.
func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	c := r.byOrigin(patient.Origin)
	defer c.lock()()

	var patients []*model.Patient
	if err := c.load(ctx, &patients); err != nil {
		return err
	}

	for _, p := range patients {
		if p.Email == patient.Email || p.MobileNumber == patient.MobileNumber {
			return errors.Duplicate("patient with this email or mobile number already exists")
		}
	}

	patients = append(patients, patient)
	return c.save(ctx, patients)
}

func (r *patientRepository) List(ctx context.Context, origin model.PatientOrigin) ([]*model.Patient, error) {
	var patients []*model.Patient
	if err := r.byOrigin(origin).load(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetByID resolves an ID against both collections; patientId and
// patientUserId are interchangeable lookups.
func (r *patientRepository) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	for _, origin := range []model.PatientOrigin{model.OriginAdmin, model.OriginPortal} {
		patients, err := r.List(ctx, origin)
		if err != nil {
			return nil, err
		}
		for _, p := range patients {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return nil, errors.NotFound("patient")
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	c := r.byOrigin(patient.Origin)
	defer c.lock()()

	var patients []*model.Patient
	if err := c.load(ctx, &patients); err != nil {
		return err
	}

	for i, p := range patients {
		if p.ID == patient.ID {
			patients[i] = patient
			return c.save(ctx, patients)
		}
	}
	return errors.NotFound("patient")
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	for _, origin := range []model.PatientOrigin{model.OriginAdmin, model.OriginPortal} {
		c := r.byOrigin(origin)
		unlock := c.lock()

		var patients []*model.Patient
		if err := c.load(ctx, &patients); err != nil {
			unlock()
			return err
		}

		kept := patients[:0]
		for _, p := range patients {
			if p.ID != id {
				kept = append(kept, p)
			}
		}

		if len(kept) < len(patients) {
			err := c.save(ctx, kept)
			unlock()
			return err
		}
		unlock()
	}
	return errors.NotFound("patient")
}
