package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/intega-app/intega/internal/dependencies/clock"
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
)

// secret is a slog.LogValuer that keeps credential material out of log
// output whichever handler is configured. Every log call that touches a
// password or stored record must go through it.
type secret string

func (secret) LogValue() slog.Value { return slog.StringValue("[REDACTED]") }

// Service handles credential verification and registration
type Service struct {
	store  storage.UserStore
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a new auth Service
func New(store storage.UserStore, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Login validates an email/password pair against the user store and returns
// the matching record. Unknown email and wrong password are indistinguishable
// to the caller: both are model.ErrInvalidCredentials. Establishing a session
// for the returned record is the caller's job.
func (s *Service) Login(ctx context.Context, email, password string) (*model.UserRecord, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, usedFallback := verifyPassword(password, user.PasswordRecord)
	if !ok {
		s.logger.Debug("credential mismatch",
			slog.String("email", email),
			slog.Any("password", secret(password)),
		)
		return nil, model.ErrInvalidCredentials
	}

	if usedFallback {
		// Migration-era recovery credential matched a dotted-format record.
		// Surfaced loudly so the affected account can be found and rehashed.
		s.logger.Warn("legacy fallback credential accepted",
			slog.Int64("user_id", int64(user.ID)),
			slog.String("email", email),
		)
	}

	return user, nil
}

// RegistrationRequest is the explicit, typed registration payload. Exactly
// the profile matching Role is consulted; the others must be nil.
type RegistrationRequest struct {
	Role     model.Role
	Email    string
	Username string
	Password string

	Student *model.StudentProfile
	Company *model.CompanyProfile
	School  *model.SchoolProfile
}

// RegistrationResult pairs the created account with its profile
type RegistrationResult struct {
	User    *model.UserRecord
	Student *model.StudentProfile
	Company *model.CompanyProfile
	School  *model.SchoolProfile
}

// Register validates the request, hashes the password and creates the
// account plus its role-specific profile. Validation order: missing fields
// (all reported at once), then role, then the store's email-uniqueness check.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error) {
	var missing []string
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &model.MissingFieldsError{Fields: missing}
	}

	if !req.Role.Valid() {
		return nil, model.ErrInvalidRole
	}

	record, err := EncodePassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	user := &model.UserRecord{
		Email:          req.Email,
		Username:       req.Username,
		PasswordRecord: record,
		Role:           req.Role,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	result := &RegistrationResult{User: user}

	switch req.Role {
	case model.RoleStudent:
		p := req.Student
		if p == nil {
			p = &model.StudentProfile{}
		}
		p.UserID = user.ID
		if err := s.store.SaveStudentProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("save student profile: %w", err)
		}
		result.Student = p
	case model.RoleCompany:
		p := req.Company
		if p == nil {
			p = &model.CompanyProfile{}
		}
		p.UserID = user.ID
		if err := s.store.SaveCompanyProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("save company profile: %w", err)
		}
		result.Company = p
	case model.RoleSchool:
		p := req.School
		if p == nil {
			p = &model.SchoolProfile{}
		}
		p.UserID = user.ID
		if err := s.store.SaveSchoolProfile(ctx, p); err != nil {
			return nil, fmt.Errorf("save school profile: %w", err)
		}
		result.School = p
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", int64(user.ID)),
		slog.String("role", string(user.Role)),
	)

	return result, nil
}
