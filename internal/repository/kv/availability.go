package kv

import (
	"context"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type availabilityRepository struct {
	slots *collection
}

func NewAvailabilityRepository(s store.Store, m *metrics.Metrics) *availabilityRepository {
	return &availabilityRepository{slots: newCollection(s, store.KeyAvailability, m)}
}

func (r *availabilityRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	defer r.slots.lock()()

	var slots []*model.AvailabilitySlot
	if err := r.slots.load(ctx, &slots); err != nil {
		return err
	}

	slots = append(slots, slot)
	return r.slots.save(ctx, slots)
}

func (r *availabilityRepository) ListByDoctor(ctx context.Context, doctorUsername string) ([]*model.AvailabilitySlot, error) {
	var slots []*model.AvailabilitySlot
	if err := r.slots.load(ctx, &slots); err != nil {
		return nil, err
	}

	var out []*model.AvailabilitySlot
	for _, s := range slots {
		if s.DoctorUsername == doctorUsername {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, slotID string) error {
	defer r.slots.lock()()

	var slots []*model.AvailabilitySlot
	if err := r.slots.load(ctx, &slots); err != nil {
		return err
	}

	kept := slots[:0]
	for _, s := range slots {
		if s.SlotID != slotID {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(slots) {
		return errors.NotFound("slot")
	}
	return r.slots.save(ctx, kept)
}
