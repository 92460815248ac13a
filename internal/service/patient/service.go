package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/repository"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
)

const dateLayout = "2006-01-02"

// Service is the patient registry: CRUD and search over the two
// origin-tagged collections.
type Service struct {
	repo repository.PatientRepository
	ids  idgen.Generator
	now  func() time.Time
}

func NewService(repo repository.PatientRepository, ids idgen.Generator) *Service {
	return &Service{repo: repo, ids: ids, now: time.Now}
}

func (s *Service) Register(ctx context.Context, origin model.PatientOrigin, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if err := s.validateRegistration(origin, req); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		ID:                s.ids.Next(idgen.PrefixPatient),
		Origin:            origin,
		FullName:          req.FullName,
		Age:               req.Age,
		Gender:            req.Gender,
		BloodGroup:        req.BloodGroup,
		Email:             req.Email,
		MobileNumber:      req.MobileNumber,
		Password:          req.Password,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		MedicalHistory:    req.MedicalHistory,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
		EmergencyContact:  req.EmergencyContact,
		EmergencyPhone:    req.EmergencyPhone,
		RegistrationDate:  s.now().Format(dateLayout),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}
	return patient, nil
}

func (s *Service) validateRegistration(origin model.PatientOrigin, req *model.RegisterPatientRequest) error {
	if req.FullName == "" {
		return errors.Validation("full name is required")
	}
	if req.Email == "" {
		return errors.Validation("email is required")
	}
	if req.MobileNumber == "" {
		return errors.Validation("mobile number is required")
	}
	if origin == model.OriginPortal && req.Password == "" {
		return errors.Validation("password is required")
	}
	return nil
}

func (s *Service) List(ctx context.Context, origin model.PatientOrigin) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// SearchByName matches a case-insensitive substring against full name and
// ID, across both collections.
func (s *Service) SearchByName(ctx context.Context, query string) ([]*model.Patient, error) {
	needle := strings.ToLower(query)

	var out []*model.Patient
	for _, origin := range []model.PatientOrigin{model.OriginAdmin, model.OriginPortal} {
		patients, err := s.repo.List(ctx, origin)
		if err != nil {
			return nil, fmt.Errorf("failed to search patients: %w", err)
		}
		for _, p := range patients {
			if strings.Contains(strings.ToLower(p.FullName), needle) ||
				strings.Contains(strings.ToLower(p.ID), needle) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, patch *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	applyPatch(patient, patch)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func applyPatch(p *model.Patient, patch *model.UpdatePatientRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FullName, patch.FullName)
	set(&p.Age, patch.Age)
	set(&p.Gender, patch.Gender)
	set(&p.BloodGroup, patch.BloodGroup)
	set(&p.Email, patch.Email)
	set(&p.MobileNumber, patch.MobileNumber)
	set(&p.Address, patch.Address)
	set(&p.City, patch.City)
	set(&p.State, patch.State)
	set(&p.ZipCode, patch.ZipCode)
	set(&p.MedicalHistory, patch.MedicalHistory)
	set(&p.Allergies, patch.Allergies)
	set(&p.MedicalConditions, patch.MedicalConditions)
	set(&p.EmergencyContact, patch.EmergencyContact)
	set(&p.EmergencyPhone, patch.EmergencyPhone)
}
