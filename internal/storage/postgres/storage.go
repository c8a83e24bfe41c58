package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
	"github.com/intega-app/intega/internal/storage/postgres/migrations"
)

// uniqueViolation is the postgres error code raised by the users.email
// unique constraint; it is what makes duplicate registration race-safe.
const uniqueViolation = "23505"

// Storage is a Postgres-backed implementation of the user store
type Storage struct {
	db *sql.DB
}

// New opens a connection pool, runs the embedded migrations and returns the store
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	s := &Storage{db: db}
	if err := s.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return s, nil
}

// NewWithDB wraps an existing connection without running migrations (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	query := `
		INSERT INTO users (email, username, password_record, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordRecord, string(user.Role), user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.UserRecord, error) {
	return s.getUser(ctx, `
		SELECT id, email, username, password_record, role, created_at
		FROM users WHERE email = $1`, email)
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.UserRecord, error) {
	return s.getUser(ctx, `
		SELECT id, email, username, password_record, role, created_at
		FROM users WHERE id = $1`, int64(id))
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (*model.UserRecord, error) {
	var (
		user model.UserRecord
		role string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordRecord, &role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	user.Role = model.Role(role)
	return &user, nil
}

func (s *Storage) UpdatePasswordRecord(ctx context.Context, id model.UserID, record string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_record = $1 WHERE id = $2`, record, int64(id))
	if err != nil {
		return fmt.Errorf("update password record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Profile operations

func (s *Storage) SaveStudentProfile(ctx context.Context, p *model.StudentProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO student_profiles (user_id, first_name, last_name, school, degree)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			school = EXCLUDED.school,
			degree = EXCLUDED.degree`,
		int64(p.UserID), p.FirstName, p.LastName, p.School, p.Degree)
	if err != nil {
		return fmt.Errorf("save student profile: %w", err)
	}
	return nil
}

func (s *Storage) GetStudentProfile(ctx context.Context, userID model.UserID) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, first_name, last_name, school, degree
		FROM student_profiles WHERE user_id = $1`, int64(userID),
	).Scan(&p.UserID, &p.FirstName, &p.LastName, &p.School, &p.Degree)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select student profile: %w", err)
	}
	return &p, nil
}

func (s *Storage) SaveCompanyProfile(ctx context.Context, p *model.CompanyProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO company_profiles (user_id, company_name, sector, website, contact_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			sector = EXCLUDED.sector,
			website = EXCLUDED.website,
			contact_name = EXCLUDED.contact_name`,
		int64(p.UserID), p.CompanyName, p.Sector, p.Website, p.ContactName)
	if err != nil {
		return fmt.Errorf("save company profile: %w", err)
	}
	return nil
}

func (s *Storage) GetCompanyProfile(ctx context.Context, userID model.UserID) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, company_name, sector, website, contact_name
		FROM company_profiles WHERE user_id = $1`, int64(userID),
	).Scan(&p.UserID, &p.CompanyName, &p.Sector, &p.Website, &p.ContactName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select company profile: %w", err)
	}
	return &p, nil
}

func (s *Storage) SaveSchoolProfile(ctx context.Context, p *model.SchoolProfile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO school_profiles (user_id, school_name, city, contact_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			school_name = EXCLUDED.school_name,
			city = EXCLUDED.city,
			contact_name = EXCLUDED.contact_name`,
		int64(p.UserID), p.SchoolName, p.City, p.ContactName)
	if err != nil {
		return fmt.Errorf("save school profile: %w", err)
	}
	return nil
}

func (s *Storage) GetSchoolProfile(ctx context.Context, userID model.UserID) (*model.SchoolProfile, error) {
	var p model.SchoolProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, school_name, city, contact_name
		FROM school_profiles WHERE user_id = $1`, int64(userID),
	).Scan(&p.UserID, &p.SchoolName, &p.City, &p.ContactName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select school profile: %w", err)
	}
	return &p, nil
}

// isUniqueViolation reports whether err is a postgres unique-constraint error
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
