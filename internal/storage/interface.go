package storage

import (
	"context"

	"github.com/intega-app/intega/internal/model"
)

// UserStore defines the interface for account persistence.
//
// CreateUser assigns the record's ID and enforces email uniqueness: the
// backend's own atomic check is the source of truth, so a racing duplicate
// registration surfaces as model.ErrEmailExists rather than a second row.
type UserStore interface {
	// User operations
	CreateUser(ctx context.Context, user *model.UserRecord) error
	GetUserByEmail(ctx context.Context, email string) (*model.UserRecord, error)
	GetUserByID(ctx context.Context, id model.UserID) (*model.UserRecord, error)

	// UpdatePasswordRecord replaces a user's stored credential record.
	// Reserved for password-reset flows; login never mutates the store.
	UpdatePasswordRecord(ctx context.Context, id model.UserID, record string) error

	// Profile operations, one pair per role
	SaveStudentProfile(ctx context.Context, p *model.StudentProfile) error
	GetStudentProfile(ctx context.Context, userID model.UserID) (*model.StudentProfile, error)
	SaveCompanyProfile(ctx context.Context, p *model.CompanyProfile) error
	GetCompanyProfile(ctx context.Context, userID model.UserID) (*model.CompanyProfile, error)
	SaveSchoolProfile(ctx context.Context, p *model.SchoolProfile) error
	GetSchoolProfile(ctx context.Context, userID model.UserID) (*model.SchoolProfile, error)
}
