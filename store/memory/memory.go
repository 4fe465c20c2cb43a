// Package memory provides an in-memory vacation.Store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/vacation-tracker/vacation"
)

// =============================================================================
// MEMORY STORE - Map-backed implementation with the same error contract
// as the SQLite store
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	users     map[int64]vacation.User
	usernames map[string]int64
	mails     map[string]int64
	vacations map[int64]vacation.Vacation

	nextUserID     int64
	nextVacationID int64
}

var _ vacation.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:          make(map[int64]vacation.User),
		usernames:      make(map[string]int64),
		mails:          make(map[string]int64),
		vacations:      make(map[int64]vacation.Vacation),
		nextUserID:     1,
		nextVacationID: 1,
	}
}

// CreateUser persists a user, enforcing username/mail uniqueness.
func (m *Store) CreateUser(_ context.Context, u vacation.User) (*vacation.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.usernames[u.Username]; taken {
		return nil, vacation.ErrDuplicateIdentity
	}
	if _, taken := m.mails[u.Mail]; taken {
		return nil, vacation.ErrDuplicateIdentity
	}

	u.ID = m.nextUserID
	m.nextUserID++
	m.users[u.ID] = u
	m.usernames[u.Username] = u.ID
	m.mails[u.Mail] = u.ID
	return &u, nil
}

func (m *Store) GetUser(_ context.Context, id int64) (*vacation.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, &vacation.NotFoundError{Kind: "user", ID: id}
	}
	return &u, nil
}

func (m *Store) GetUserByUsername(_ context.Context, username string) (*vacation.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, vacation.ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

// CreateVacation persists a vacation, enforcing the user foreign key.
func (m *Store) CreateVacation(_ context.Context, v vacation.Vacation) (*vacation.Vacation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[v.UserID]; !ok {
		return nil, &vacation.NotFoundError{Kind: "user", ID: v.UserID}
	}
	if v.Status == "" {
		v.Status = vacation.StatusPending
	}

	v.ID = m.nextVacationID
	m.nextVacationID++
	m.vacations[v.ID] = v
	return &v, nil
}

func (m *Store) GetVacation(_ context.Context, id int64) (*vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vacations[id]
	if !ok {
		return nil, &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	return &v, nil
}

func (m *Store) DeleteVacation(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vacations[id]; !ok {
		return &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	delete(m.vacations, id)
	return nil
}

func (m *Store) UpdateVacationStatus(_ context.Context, id int64, status vacation.Status, denialReason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.vacations[id]
	if !ok {
		return &vacation.NotFoundError{Kind: "vacation", ID: id}
	}
	v.Status = status
	v.DenialReason = denialReason
	m.vacations[id] = v
	return nil
}

func (m *Store) ListVacations(_ context.Context, userID int64) ([]vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(v vacation.Vacation) bool { return v.UserID == userID }), nil
}

func (m *Store) ListVacationsByYear(_ context.Context, userID int64, year int) ([]vacation.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(v vacation.Vacation) bool {
		return v.UserID == userID && v.Start.Year() == year
	}), nil
}

func (m *Store) collect(match func(vacation.Vacation) bool) []vacation.Vacation {
	var result []vacation.Vacation
	for _, v := range m.vacations {
		if match(v) {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
