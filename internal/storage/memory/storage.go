package memory

import (
	"context"
	"sync"

	"github.com/intega-app/intega/internal/model"
	"github.com/intega-app/intega/internal/storage"
)

// Storage is an in-memory implementation of the user store, used in tests
// and for local development without external services.
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.UserRecord
	emailIndex map[string]model.UserID
	students   map[model.UserID]*model.StudentProfile
	companies  map[model.UserID]*model.CompanyProfile
	schools    map[model.UserID]*model.SchoolProfile

	// nextID is owned exclusively by this instance; ids are allocated
	// monotonically under the write lock.
	nextID model.UserID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.UserRecord),
		emailIndex: make(map[string]model.UserID),
		students:   make(map[model.UserID]*model.StudentProfile),
		companies:  make(map[model.UserID]*model.CompanyProfile),
		schools:    make(map[model.UserID]*model.SchoolProfile),
	}
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[user.Email]; exists {
		return model.ErrEmailExists
	}

	s.nextID++
	user.ID = s.nextID

	stored := *user
	s.users[user.ID] = &stored
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.userLocked(id)
}

func (s *Storage) GetUserByID(ctx context.Context, id model.UserID) (*model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userLocked(id)
}

// userLocked must be called with at least a read lock held
func (s *Storage) userLocked(id model.UserID) (*model.UserRecord, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) UpdatePasswordRecord(ctx context.Context, id model.UserID, record string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.PasswordRecord = record
	return nil
}

// DeleteUser removes a user record. Sessions referencing the id resolve to
// unauthenticated afterwards; exposed for tests exercising that path.
func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	delete(s.emailIndex, user.Email)
	delete(s.users, id)
	return nil
}

// Profile operations

func (s *Storage) SaveStudentProfile(ctx context.Context, p *model.StudentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	s.students[p.UserID] = &stored
	return nil
}

func (s *Storage) GetStudentProfile(ctx context.Context, userID model.UserID) (*model.StudentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.students[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *Storage) SaveCompanyProfile(ctx context.Context, p *model.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	s.companies[p.UserID] = &stored
	return nil
}

func (s *Storage) GetCompanyProfile(ctx context.Context, userID model.UserID) (*model.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.companies[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *Storage) SaveSchoolProfile(ctx context.Context, p *model.SchoolProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	s.schools[p.UserID] = &stored
	return nil
}

func (s *Storage) GetSchoolProfile(ctx context.Context, userID model.UserID) (*model.SchoolProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.schools[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}
