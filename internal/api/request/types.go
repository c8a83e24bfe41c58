package request

// StudentProfile carries the student-specific registration fields
type StudentProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
}

// CompanyProfile carries the company-specific registration fields
type CompanyProfile struct {
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
}

// SchoolProfile carries the school-specific registration fields
type SchoolProfile struct {
	SchoolName  string `json:"school_name"`
	City        string `json:"city"`
	ContactName string `json:"contact_name"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`

	Student *StudentProfile `json:"student,omitempty"`
	Company *CompanyProfile `json:"company,omitempty"`
	School  *SchoolProfile  `json:"school,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
