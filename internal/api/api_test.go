package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/intega-app/intega/internal/api"
	"github.com/intega-app/intega/internal/factory"
	"github.com/intega-app/intega/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
	client *http.Client
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		AuthService: s.app.AuthService,
		Binder:      s.app.Binder,
		Store:       s.app.Store,
	})

	s.server = httptest.NewServer(router)

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.client = &http.Client{Jar: jar}
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) do(method, path string, body any) *http.Response {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, out any) {
	defer func() { _ = resp.Body.Close() }()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *APISuite) errorCode(resp *http.Response) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	return body.Error.Code
}

func (s *APISuite) registerStudent(email string) {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role":     "STUDENT",
		"email":    email,
		"username": "ana",
		"password": "correct horse",
		"student": map[string]string{
			"first_name": "Ana",
			"last_name":  "Ferreira",
			"school":     "FEUP",
			"degree":     "Informatics",
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *APISuite) TestHealth() {
	resp := s.do(http.MethodGet, "/api/v1/health", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Status string `json:"status"`
	}
	s.decode(resp, &body)
	s.Equal("ok", body.Status)
}

func (s *APISuite) TestRegisterReturnsUserAndHome() {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role":     "COMPANY",
		"email":    "hr@acme.test",
		"username": "acme",
		"password": "s3cret",
		"company": map[string]string{
			"company_name": "ACME",
			"sector":       "Manufacturing",
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var body struct {
		User struct {
			ID       int64  `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
		Home string `json:"home"`
	}
	s.decode(resp, &body)
	s.NotZero(body.User.ID)
	s.Equal("hr@acme.test", body.User.Email)
	s.Equal("COMPANY", body.User.Role)
	s.Equal("/company/dashboard", body.Home)
}

func (s *APISuite) TestRegisterNeverExposesPasswordRecord() {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role":     "STUDENT",
		"email":    "ana@example.com",
		"username": "ana",
		"password": "correct horse",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var raw map[string]any
	s.decode(resp, &raw)
	user, ok := raw["user"].(map[string]any)
	s.Require().True(ok)
	s.NotContains(user, "password_record")
	s.NotContains(user, "password")
}

func (s *APISuite) TestRegisterMissingFields() {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role": "STUDENT",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("MISSING_FIELDS", s.errorCode(resp))
}

func (s *APISuite) TestRegisterInvalidRole() {
	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role":     "ADMIN",
		"email":    "x@example.com",
		"username": "x",
		"password": "pw",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_ROLE", s.errorCode(resp))
}

func (s *APISuite) TestRegisterDuplicateEmail() {
	s.registerStudent("ana@example.com")

	resp := s.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"role":     "STUDENT",
		"email":    "ana@example.com",
		"username": "other",
		"password": "pw",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("DUPLICATE_EMAIL", s.errorCode(resp))
}

func (s *APISuite) TestRegisterLogsIn() {
	s.registerStudent("ana@example.com")

	resp := s.do(http.MethodGet, "/api/v1/auth/me", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Email string `json:"email"`
	}
	s.decode(resp, &body)
	s.Equal("ana@example.com", body.Email)
}

func (s *APISuite) TestLoginFlow() {
	s.registerStudent("ana@example.com")

	// Drop the registration session
	resp := s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.do(http.MethodGet, "/api/v1/auth/me", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("UNAUTHORIZED", s.errorCode(resp))

	resp = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "correct horse",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Home string `json:"home"`
	}
	s.decode(resp, &body)
	s.Equal("/student/dashboard", body.Home)

	resp = s.do(http.MethodGet, "/api/v1/auth/me", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *APISuite) TestLoginWrongPassword() {
	s.registerStudent("ana@example.com")

	resp := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_CREDENTIALS", s.errorCode(resp))
}

func (s *APISuite) TestLoginUnknownEmailSameError() {
	resp := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("INVALID_CREDENTIALS", s.errorCode(resp))
}

func (s *APISuite) TestLogoutIsIdempotent() {
	resp := s.do(http.MethodPost, "/api/v1/auth/logout", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()
}

func (s *APISuite) TestProfile() {
	s.registerStudent("ana@example.com")

	resp := s.do(http.MethodGet, "/api/v1/profile", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Role    string `json:"role"`
		Student *struct {
			FirstName string `json:"first_name"`
			School    string `json:"school"`
		} `json:"student"`
		Company any `json:"company"`
	}
	s.decode(resp, &body)
	s.Equal("STUDENT", body.Role)
	s.Require().NotNil(body.Student)
	s.Equal("Ana", body.Student.FirstName)
	s.Equal("FEUP", body.Student.School)
	s.Nil(body.Company)
}

func (s *APISuite) TestProfileRequiresAuth() {
	resp := s.do(http.MethodGet, "/api/v1/profile", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("UNAUTHORIZED", s.errorCode(resp))
}

func (s *APISuite) TestSessionSurvivesAcrossRequestsOnly() {
	s.registerStudent("ana@example.com")

	// A client without the cookie is not authenticated
	bare := &http.Client{}
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/api/v1/auth/me", nil)
	s.Require().NoError(err)
	resp, err := bare.Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
