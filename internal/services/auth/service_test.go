package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/intega-app/intega/internal/dependencies/mocks"
	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
	"github.com/intega-app/intega/internal/storage/memory"
	"github.com/intega-app/intega/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Storage
	clock   *mocks.MockClock
	service *auth.Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = auth.New(s.store, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) registerStudent(email string) *auth.RegistrationResult {
	result, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role:     model.RoleStudent,
		Email:    email,
		Username: "ana",
		Password: "correct horse",
		Student: &model.StudentProfile{
			FirstName: "Ana",
			LastName:  "Ferreira",
			School:    "FEUP",
			Degree:    "Informatics",
		},
	})
	s.Require().NoError(err)
	return result
}

// Registration

func (s *ServiceSuite) TestRegisterStudent() {
	result := s.registerStudent("ana@example.com")

	s.NotZero(result.User.ID)
	s.Equal("ana@example.com", result.User.Email)
	s.Equal(model.RoleStudent, result.User.Role)
	s.Equal(s.clock.CurrentTime, result.User.CreatedAt)

	// Password is stored encoded, never as the plaintext
	s.NotEqual("correct horse", result.User.PasswordRecord)
	s.True(auth.VerifyPassword("correct horse", result.User.PasswordRecord))

	profile, err := s.store.GetStudentProfile(s.ctx, result.User.ID)
	s.Require().NoError(err)
	s.Equal("Ana", profile.FirstName)
	s.Equal(result.User.ID, profile.UserID)
}

func (s *ServiceSuite) TestRegisterCompany() {
	result, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role:     model.RoleCompany,
		Email:    "hr@acme.test",
		Username: "acme",
		Password: "s3cret",
		Company: &model.CompanyProfile{
			CompanyName: "ACME",
			Sector:      "Manufacturing",
		},
	})
	s.Require().NoError(err)
	s.Nil(result.Student)
	s.Nil(result.School)
	s.Require().NotNil(result.Company)

	profile, err := s.store.GetCompanyProfile(s.ctx, result.User.ID)
	s.Require().NoError(err)
	s.Equal("ACME", profile.CompanyName)
}

func (s *ServiceSuite) TestRegisterSchoolWithoutProfileData() {
	// A missing profile payload still creates the 1:1 profile row
	result, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role:     model.RoleSchool,
		Email:    "admin@school.test",
		Username: "school",
		Password: "pw",
	})
	s.Require().NoError(err)
	s.Require().NotNil(result.School)

	profile, err := s.store.GetSchoolProfile(s.ctx, result.User.ID)
	s.Require().NoError(err)
	s.Equal(result.User.ID, profile.UserID)
	s.Empty(profile.SchoolName)
}

func (s *ServiceSuite) TestRegisterMissingFieldsAllReported() {
	_, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role: model.RoleStudent,
	})
	s.Require().Error(err)

	var missing *model.MissingFieldsError
	s.Require().ErrorAs(err, &missing)
	s.ElementsMatch([]string{"email", "username", "password"}, missing.Fields)
}

func (s *ServiceSuite) TestRegisterInvalidRole() {
	_, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role:     "ADMIN",
		Email:    "x@example.com",
		Username: "x",
		Password: "pw",
	})
	s.ErrorIs(err, model.ErrInvalidRole)
}

func (s *ServiceSuite) TestRegisterDuplicateEmail() {
	first := s.registerStudent("ana@example.com")

	_, err := s.service.Register(s.ctx, auth.RegistrationRequest{
		Role:     model.RoleCompany,
		Email:    "ana@example.com",
		Username: "other",
		Password: "pw",
	})
	s.ErrorIs(err, model.ErrEmailExists)

	// The original record is untouched
	user, err := s.store.GetUserByEmail(s.ctx, "ana@example.com")
	s.Require().NoError(err)
	s.Equal(first.User.ID, user.ID)
	s.Equal(model.RoleStudent, user.Role)
}

// Login

func (s *ServiceSuite) TestLoginSuccess() {
	registered := s.registerStudent("ana@example.com")

	user, err := s.service.Login(s.ctx, "ana@example.com", "correct horse")
	s.Require().NoError(err)
	s.Equal(registered.User.ID, user.ID)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	s.registerStudent("ana@example.com")

	_, err := s.service.Login(s.ctx, "ana@example.com", "wrong horse")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "whatever")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginLegacyPlaintextRecord() {
	s.seedUser("legacy@example.com", "hunter2")

	user, err := s.service.Login(s.ctx, "legacy@example.com", "hunter2")
	s.Require().NoError(err)
	s.Equal("legacy@example.com", user.Email)

	_, err = s.service.Login(s.ctx, "legacy@example.com", "Hunter2")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginDottedFallbackCredential() {
	// A dotted record that was never derived from "password" still accepts it
	s.seedUser("dotted@example.com", "deadbeefdeadbeef.00112233445566778899aabbccddeeff")

	user, err := s.service.Login(s.ctx, "dotted@example.com", "password")
	s.Require().NoError(err)
	s.Equal("dotted@example.com", user.Email)
}

func (s *ServiceSuite) seedUser(email, record string) {
	err := s.store.CreateUser(s.ctx, &model.UserRecord{
		Email:          email,
		Username:       "legacy",
		PasswordRecord: record,
		Role:           model.RoleStudent,
		CreatedAt:      s.clock.Now(),
	})
	s.Require().NoError(err)
}
