package kv

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type appointmentRequestRepository struct {
	requests *collection
}

func NewAppointmentRequestRepository(s store.Store, m *metrics.Metrics) *appointmentRequestRepository {
	return &appointmentRequestRepository{requests: newCollection(s, store.KeyRequests, m)}
}

func (r *appointmentRequestRepository) Create(ctx context.Context, req *model.AppointmentRequest) error {
	defer r.requests.lock()()

	var requests []*model.AppointmentRequest
	if err := r.requests.load(ctx, &requests); err != nil {
		return err
	}

	requests = append(requests, req)
	return r.requests.save(ctx, requests)
}

func (r *appointmentRequestRepository) Get(ctx context.Context, requestID string) (*model.AppointmentRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if req.RequestID == requestID {
			return req, nil
		}
	}
	return nil, errors.NotFound("request")
}

func (r *appointmentRequestRepository) Update(ctx context.Context, req *model.AppointmentRequest) error {
	defer r.requests.lock()()

	var requests []*model.AppointmentRequest
	if err := r.requests.load(ctx, &requests); err != nil {
		return err
	}

	for i, existing := range requests {
		if existing.RequestID == req.RequestID {
			requests[i] = req
			return r.requests.save(ctx, requests)
		}
	}
	return errors.NotFound("request")
}

func (r *appointmentRequestRepository) List(ctx context.Context) ([]*model.AppointmentRequest, error) {
	var requests []*model.AppointmentRequest
	if err := r.requests.load(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *appointmentRequestRepository) ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.AppointmentRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []*model.AppointmentRequest
	for _, req := range requests {
		if req.DoctorUsername == doctorUsername {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *appointmentRequestRepository) ListByPatient(ctx context.Context, patientUserID string) ([]*model.AppointmentRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []*model.AppointmentRequest
	for _, req := range requests {
		if req.PatientUserID == patientUserID {
			out = append(out, req)
		}
	}
	return out, nil
}
