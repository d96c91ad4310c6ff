// Package allowlist holds the set of user identifiers the relay will reply to.
package allowlist

import (
	"errors"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var (
	// ErrInvalid is returned by Add for an empty user id.
	ErrInvalid = errors.New("user id is required")
	// ErrExists is returned by Add for a user id that is already allowed.
	ErrExists = errors.New("user already exists")
	// ErrNotFound is returned by Remove for a user id that is not allowed.
	ErrNotFound = errors.New("user not found")
)

// Store is a process-lifetime, ordered, duplicate-free set of user ids.
// It is seeded from static configuration and mutated only by the admin
// surface; it is not persisted across restarts.
type Store struct {
	mu    sync.RWMutex
	users []string
}

// NewStore creates a Store seeded with the given user ids. Seed entries are
// trimmed; empty and duplicate entries are dropped while preserving order.
func NewStore(seed []string) *Store {
	users := make([]string, 0, len(seed))
	for _, id := range seed {
		id = strings.TrimSpace(id)
		if id == "" || lo.Contains(users, id) {
			continue
		}
		users = append(users, id)
	}
	return &Store{users: users}
}

// List returns a copy of the allowed user ids in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Len returns the number of allowed users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Contains reports whether userID is an exact member of the allow-list.
// An empty id never matches; there is no prefix or partial matching.
func (s *Store) Contains(userID string) bool {
	if userID == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Contains(s.users, userID)
}

// Add appends userID to the allow-list. It returns ErrInvalid for an empty
// id and ErrExists for a duplicate.
func (s *Store) Add(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.Contains(s.users, userID) {
		return ErrExists
	}
	s.users = append(s.users, userID)
	return nil
}

// Remove deletes userID from the allow-list by exact match.
// It returns ErrNotFound when the id is not a member.
func (s *Store) Remove(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := lo.IndexOf(s.users, userID)
	if idx < 0 {
		return ErrNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	return nil
}
