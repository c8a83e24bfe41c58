package response

import (
	"time"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/services/auth"
)

// User represents an account in API responses. The stored credential record
// never appears here.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromModel converts a model.UserRecord to a response User
func UserFromModel(u *model.UserRecord) User {
	return User{
		ID:        int64(u.ID),
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// StudentProfile represents a student profile in API responses
type StudentProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
}

// StudentProfileFromModel converts model.StudentProfile
func StudentProfileFromModel(p *model.StudentProfile) StudentProfile {
	return StudentProfile{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		School:    p.School,
		Degree:    p.Degree,
	}
}

// CompanyProfile represents a company profile in API responses
type CompanyProfile struct {
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
}

// CompanyProfileFromModel converts model.CompanyProfile
func CompanyProfileFromModel(p *model.CompanyProfile) CompanyProfile {
	return CompanyProfile{
		CompanyName: p.CompanyName,
		Sector:      p.Sector,
		Website:     p.Website,
		ContactName: p.ContactName,
	}
}

// SchoolProfile represents a school profile in API responses
type SchoolProfile struct {
	SchoolName  string `json:"school_name"`
	City        string `json:"city"`
	ContactName string `json:"contact_name"`
}

// SchoolProfileFromModel converts model.SchoolProfile
func SchoolProfileFromModel(p *model.SchoolProfile) SchoolProfile {
	return SchoolProfile{
		SchoolName:  p.SchoolName,
		City:        p.City,
		ContactName: p.ContactName,
	}
}

// AuthResponse is the response for register and login
type AuthResponse struct {
	User User   `json:"user"`
	Home string `json:"home"`
}

// AuthResponseFromModel builds an AuthResponse, including the role's
// landing path so clients can redirect without hardcoding the mapping
func AuthResponseFromModel(u *model.UserRecord) AuthResponse {
	return AuthResponse{
		User: UserFromModel(u),
		Home: auth.HomeFor(u.Role),
	}
}

// Profile is the role-discriminated profile response. Exactly one of the
// profile fields is set, matching Role.
type Profile struct {
	Role    string          `json:"role"`
	Student *StudentProfile `json:"student,omitempty"`
	Company *CompanyProfile `json:"company,omitempty"`
	School  *SchoolProfile  `json:"school,omitempty"`
}
