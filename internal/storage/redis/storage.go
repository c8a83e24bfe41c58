package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
)

// emailClaimTTL bounds how long a "pending" email claim can outlive a
// registration that crashed between the claim and the record write
const emailClaimTTL = time.Minute

// Storage is a Redis-backed implementation of the user store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	// Claim the email first; SETNX is the atomic uniqueness check, so two
	// racing registrations cannot both pass it. The placeholder carries a
	// TTL so a crash before the write below cannot hold the email forever;
	// the successful write replaces it with the real id and no expiry.
	claimed, err := s.client.SetNX(ctx, emailIndexKey(user.Email), "pending", emailClaimTTL).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrEmailExists
	}

	id, err := s.client.Incr(ctx, userIDCounterKey()).Result()
	if err != nil {
		s.releaseEmailClaim(ctx, user.Email)
		return err
	}
	user.ID = model.UserID(id)

	data, err := json.Marshal(user)
	if err != nil {
		s.releaseEmailClaim(ctx, user.Email)
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), strconv.FormatInt(id, 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		s.releaseEmailClaim(ctx, user.Email)
		return err
	}
	return nil
}

// releaseEmailClaim frees a claimed email after a failed insert so a retried
// registration does not see a phantom ErrEmailExists. Best effort: if the
// delete also fails, GetUserByEmail still treats the leftover placeholder as
// not found.
func (s *Storage) releaseEmailClaim(ctx context.Context, email string) {
	_ = s.client.Del(ctx, emailIndexKey(email)).Err()
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.UserRecord, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		// "pending" placeholder from an insert that did not complete
		return nil, model.ErrUserNotFound
	}

	return s.GetUserByID(ctx, model.UserID(id))
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.UserRecord, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) UpdatePasswordRecord(ctx context.Context, id model.UserID, record string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	user.PasswordRecord = record
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(id), data, 0).Err()
}

// Profile operations

func (s *Storage) SaveStudentProfile(ctx context.Context, p *model.StudentProfile) error {
	return s.saveProfile(ctx, model.RoleStudent, p.UserID, p)
}

func (s *Storage) GetStudentProfile(ctx context.Context, userID model.UserID) (*model.StudentProfile, error) {
	var p model.StudentProfile
	if err := s.getProfile(ctx, model.RoleStudent, userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) SaveCompanyProfile(ctx context.Context, p *model.CompanyProfile) error {
	return s.saveProfile(ctx, model.RoleCompany, p.UserID, p)
}

func (s *Storage) GetCompanyProfile(ctx context.Context, userID model.UserID) (*model.CompanyProfile, error) {
	var p model.CompanyProfile
	if err := s.getProfile(ctx, model.RoleCompany, userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) SaveSchoolProfile(ctx context.Context, p *model.SchoolProfile) error {
	return s.saveProfile(ctx, model.RoleSchool, p.UserID, p)
}

func (s *Storage) GetSchoolProfile(ctx context.Context, userID model.UserID) (*model.SchoolProfile, error) {
	var p model.SchoolProfile
	if err := s.getProfile(ctx, model.RoleSchool, userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) saveProfile(ctx context.Context, role model.Role, userID model.UserID, p any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileKey(role, userID), data, 0).Err()
}

func (s *Storage) getProfile(ctx context.Context, role model.Role, userID model.UserID, out any) error {
	data, err := s.client.Get(ctx, profileKey(role, userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrProfileNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	return nil
}
