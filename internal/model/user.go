package model

import "time"

// UserID uniquely identifies a user account across the system
type UserID int64

// Role is a user's fixed category, assigned at registration and never changed
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleCompany Role = "COMPANY"
	RoleSchool  Role = "SCHOOL"
)

// Valid reports whether the role is one of the three supported categories
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleSchool:
		return true
	}
	return false
}

// UserRecord is an account as held by the user store.
// PasswordRecord is the opaque stored credential (hash+salt, or one of the
// legacy formats the codec understands), never the plaintext. It is part of
// the persistence encoding only; API responses go through DTOs that omit it.
type UserRecord struct {
	ID             UserID    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordRecord string    `json:"password_record"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// StudentProfile holds student-specific registration data, linked 1:1 by user id
type StudentProfile struct {
	UserID    UserID `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
}

// CompanyProfile holds company-specific registration data, linked 1:1 by user id
type CompanyProfile struct {
	UserID      UserID `json:"user_id"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
}

// SchoolProfile holds school-specific registration data, linked 1:1 by user id
type SchoolProfile struct {
	UserID      UserID `json:"user_id"`
	SchoolName  string `json:"school_name"`
	City        string `json:"city"`
	ContactName string `json:"contact_name"`
}
