package kv

import (
	"context"
	"fmt"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/store"
	"github.com/meddesk/frontdesk-api/pkg/errors"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
)

type credentialRepository struct {
	admin   *collection
	doctors *collection
}

func NewCredentialRepository(s store.Store, m *metrics.Metrics) *credentialRepository {
	return &credentialRepository{
		admin:   newCollection(s, store.KeyAdmin, m),
		doctors: newCollection(s, store.KeyDoctors, m),
	}
}

func (r *credentialRepository) GetAdmin(ctx context.Context) (*model.AdminCredential, error) {
	var admin model.AdminCredential
	if err := r.admin.load(ctx, &admin); err != nil {
		return nil, err
	}
	if admin.Username == "" {
		return nil, errors.NotFound("admin credential")
	}
	return &admin, nil
}

// Seed writes the default admin account and doctor roster on first start.
// Existing collections are left untouched.
func (r *credentialRepository) Seed(ctx context.Context) error {
	ok, err := r.admin.exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check admin collection: %w", err)
	}
	if !ok {
		defaultAdmin := &model.AdminCredential{
			Username: "admin",
			Password: "admin123",
			Name:     "Admin",
		}
		if err := r.admin.save(ctx, defaultAdmin); err != nil {
			return err
		}
	}

	ok, err = r.doctors.exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check doctor collection: %w", err)
	}
	if !ok {
		defaultDoctors := []*model.Doctor{
			{Username: "doctor1", Password: "doc123", Name: "Dr. Sharma", Specialization: "Cardiology"},
			{Username: "doctor2", Password: "doc123", Name: "Dr. Patel", Specialization: "Neurology"},
			{Username: "doctor3", Password: "doc123", Name: "Dr. Singh", Specialization: "General Medicine"},
			{Username: "doctor4", Password: "doc123", Name: "Dr. Verma", Specialization: "Pediatrics"},
		}
		if err := r.doctors.save(ctx, defaultDoctors); err != nil {
			return err
		}
	}

	return nil
}
