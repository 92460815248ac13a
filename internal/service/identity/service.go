package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/meddesk/frontdesk-api/internal/model"
	"github.com/meddesk/frontdesk-api/internal/repository"
	"github.com/meddesk/frontdesk-api/pkg/auth"
	"github.com/meddesk/frontdesk-api/pkg/errors"
)

// Service authenticates the three fixed roles and keeps the single
// current session. A successful login silently replaces any prior
// session, whoever owned it.
type Service struct {
	creds    repository.CredentialRepository
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	tokens   auth.TokenService

	mu      sync.Mutex
	current *model.Session

	now func() time.Time
}

func NewService(creds repository.CredentialRepository, doctors repository.DoctorRepository, patients repository.PatientRepository, tokens auth.TokenService) *Service {
	return &Service{
		creds:    creds,
		doctors:  doctors,
		patients: patients,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Authenticate compares the supplied credentials against the stored ones
// for the role. login is the username for admin and doctor, the email for
// patient. Comparison is exact-match plaintext; there is no hashing,
// lockout, or rate limiting here by contract.
func (s *Service) Authenticate(ctx context.Context, role model.Role, login, password string) (*model.Session, string, error) {
	var session *model.Session

	switch role {
	case model.RoleAdmin:
		admin, err := s.creds.GetAdmin(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load admin credential: %w", err)
		}
		if admin.Username != login || admin.Password != password {
			return nil, "", errors.Unauthorized("invalid admin credentials")
		}
		session = &model.Session{Role: model.RoleAdmin, Name: admin.Name}

	case model.RoleDoctor:
		doctors, err := s.doctors.List(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load doctor roster: %w", err)
		}
		for _, d := range doctors {
			if d.Username == login && d.Password == password {
				session = &model.Session{
					Role:           model.RoleDoctor,
					Name:           d.Name,
					Username:       d.Username,
					Specialization: d.Specialization,
				}
				break
			}
		}
		if session == nil {
			return nil, "", errors.Unauthorized("invalid doctor credentials")
		}

	case model.RolePatient:
		patients, err := s.patients.List(ctx, model.OriginPortal)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load patient accounts: %w", err)
		}
		for _, p := range patients {
			if p.Email == login && p.Password == password {
				session = &model.Session{
					Role:          model.RolePatient,
					Name:          p.FullName,
					Email:         p.Email,
					PatientUserID: p.ID,
					MobileNumber:  p.MobileNumber,
				}
				break
			}
		}
		if session == nil {
			return nil, "", errors.Unauthorized("invalid email or password")
		}

	default:
		return nil, "", errors.Validation("unknown role")
	}

	session.ID = uuid.New().String()
	session.CreatedAt = s.now()

	token, err := s.tokens.Generate(string(session.Role), session.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	log.Debug().Str("role", string(role)).Str("name", session.Name).Msg("session started")
	return session, token, nil
}

// CurrentSession returns the current session, or nil when nobody is
// logged in.
func (s *Service) CurrentSession(_ context.Context) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// EndSession clears the current session. Ending an absent session is a
// no-op.
func (s *Service) EndSession(_ context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// ValidateToken verifies a session token at the HTTP boundary.
func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid session token")
	}
	return claims, nil
}
