// Package memstore keeps accounts and leads in process memory. It follows the
// same contracts as the Postgres repositories, including the per-record atomic
// reset-token updates.
package memstore

import (
	"context"
	"digiroots/internal/models"
	"digiroots/internal/repository"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type AccountStore struct {
	mu      sync.Mutex
	byID    map[string]*models.Account
	byEmail map[string]string
	now     func() time.Time
	writes  int
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func clone(a *models.Account) *models.Account {
	c := *a
	if a.ResetTokenHash != nil {
		h := *a.ResetTokenHash
		c.ResetTokenHash = &h
	}
	if a.ResetTokenExpiry != nil {
		e := *a.ResetTokenExpiry
		c.ResetTokenExpiry = &e
	}
	return &c
}

func (s *AccountStore) Create(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(a.Email)
	if _, ok := s.byEmail[key]; ok {
		return repository.ErrDuplicateEmail
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now().UTC()

	s.byID[a.ID] = clone(a)
	s.byEmail[key] = a.ID
	s.writes++
	return nil
}

func (s *AccountStore) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *AccountStore) GetByID(_ context.Context, id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(a), nil
}

func (s *AccountStore) SetResetToken(_ context.Context, id, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.ResetTokenHash = &tokenHash
	a.ResetTokenExpiry = &expiresAt
	s.writes++
	return nil
}

func (s *AccountStore) ClearResetToken(_ context.Context, id, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok || a.ResetTokenHash == nil || *a.ResetTokenHash != tokenHash {
		return nil
	}
	a.ResetTokenHash = nil
	a.ResetTokenExpiry = nil
	s.writes++
	return nil
}

func (s *AccountStore) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.byID {
		if a.HasPendingReset() && *a.ResetTokenHash == tokenHash && a.ResetTokenExpiry.After(now) {
			return clone(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *AccountStore) ResetPassword(_ context.Context, id, tokenHash, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok || !a.HasPendingReset() || *a.ResetTokenHash != tokenHash || !a.ResetTokenExpiry.After(now) {
		return repository.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.ResetTokenHash = nil
	a.ResetTokenExpiry = nil
	s.writes++
	return nil
}

// Writes returns the number of successful mutations so far.
func (s *AccountStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type LeadStore struct {
	mu     sync.Mutex
	leads  []*models.Lead
	nextID int64
	now    func() time.Time
}

func NewLeadStore() *LeadStore {
	return &LeadStore{now: time.Now}
}

func (s *LeadStore) Create(_ context.Context, l *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	l.ID = s.nextID
	l.CreatedAt = s.now().UTC()
	c := *l
	s.leads = append(s.leads, &c)
	return nil
}

func (s *LeadStore) List(_ context.Context, limit, offset int) ([]*models.Lead, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := make([]*models.Lead, len(s.leads))
	copy(sorted, s.leads)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	total := len(sorted)
	if offset >= total {
		return []*models.Lead{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]*models.Lead, 0, end-offset)
	for _, l := range sorted[offset:end] {
		c := *l
		out = append(out, &c)
	}
	return out, total, nil
}
