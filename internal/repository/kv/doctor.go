package kv

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type doctorRepository struct {
	doctors *collection
}

func NewDoctorRepository(s store.Store, m *metrics.Metrics) *doctorRepository {
	return &doctorRepository{doctors: newCollection(s, store.KeyDoctors, m)}
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	if err := r.doctors.load(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) GetByUsername(ctx context.Context, username string) (*model.Doctor, error) {
	doctors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		if d.Username == username {
			return d, nil
		}
	}
	return nil, errors.NotFound("doctor")
}
