package availability

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/repository"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Service is the availability ledger. Capacity is informational only:
// approving an appointment never consults or decrements a slot.
type Service struct {
	repo    repository.AvailabilityRepository
	doctors repository.DoctorRepository
	ids     idgen.Generator
	now     func() time.Time
}

func NewService(repo repository.AvailabilityRepository, doctors repository.DoctorRepository, ids idgen.Generator) *Service {
	return &Service{repo: repo, doctors: doctors, ids: ids, now: time.Now}
}

func (s *Service) AddSlot(ctx context.Context, doctorUsername string, req *model.AddSlotRequest) (*model.AvailabilitySlot, error) {
	if _, err := s.doctors.GetByUsername(ctx, doctorUsername); err != nil {
		return nil, errors.Validation("unknown doctor")
	}

	start, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return nil, errors.Validation("start time must be HH:MM")
	}
	end, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return nil, errors.Validation("end time must be HH:MM")
	}
	if !start.Before(end) {
		return nil, errors.InvalidRange("start time must be before end time")
	}
	if req.SlotsPerHour < 1 {
		return nil, errors.Validation("slots per hour must be at least 1")
	}

	minutes := end.Sub(start).Minutes()
	capacity := int(math.Floor(minutes / (60.0 / float64(req.SlotsPerHour))))

	slot := &model.AvailabilitySlot{
		SlotID:         s.ids.Next(idgen.PrefixSlot),
		DoctorUsername: doctorUsername,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		SlotsPerHour:   req.SlotsPerHour,
		MaxCapacity:    capacity,
		BookedSlots:    0,
		CreatedDate:    s.now().Format(dateLayout),
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to add slot: %w", err)
	}
	return slot, nil
}

func (s *Service) ListSlots(ctx context.Context, doctorUsername string) ([]*model.AvailabilitySlot, error) {
	slots, err := s.repo.ListByDoctor(ctx, doctorUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (s *Service) RemoveSlot(ctx context.Context, slotID string) error {
	if err := s.repo.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("failed to remove slot: %w", err)
	}
	return nil
}
