package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Profile:
		o.printProfile(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the register/login response
type AuthResult struct {
	User User   `json:"user"`
	Home string `json:"home"`
}

// StudentProfile response type
type StudentProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
}

// CompanyProfile response type
type CompanyProfile struct {
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
}

// SchoolProfile response type
type SchoolProfile struct {
	SchoolName  string `json:"school_name"`
	City        string `json:"city"`
	ContactName string `json:"contact_name"`
}

// Profile is the role-discriminated profile response
type Profile struct {
	Role    string          `json:"role"`
	Student *StudentProfile `json:"student,omitempty"`
	Company *CompanyProfile `json:"company,omitempty"`
	School  *SchoolProfile  `json:"school,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (#%d)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Role: %s\n", u.Role)
	fmt.Printf("Registered: %s\n", u.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Home: %s\n", a.Home)
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("Role: %s\n", p.Role)
	switch {
	case p.Student != nil:
		fmt.Printf("Name: %s %s\n", p.Student.FirstName, p.Student.LastName)
		fmt.Printf("School: %s\n", p.Student.School)
		fmt.Printf("Degree: %s\n", p.Student.Degree)
	case p.Company != nil:
		fmt.Printf("Company: %s\n", p.Company.CompanyName)
		fmt.Printf("Sector: %s\n", p.Company.Sector)
		fmt.Printf("Website: %s\n", p.Company.Website)
		fmt.Printf("Contact: %s\n", p.Company.ContactName)
	case p.School != nil:
		fmt.Printf("School: %s\n", p.School.SchoolName)
		fmt.Printf("City: %s\n", p.School.City)
		fmt.Printf("Contact: %s\n", p.School.ContactName)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
