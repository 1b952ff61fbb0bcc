package utils

import (
	"fmt"
	"sync"

	"pizza-harness/dtos"
	"pizza-harness/models"

	"github.com/google/uuid"
)

type account struct {
	user models.User
	hash []byte
}

// Session holds the mutable state of one gateway session: the user directory
// that registration extends and the currently logged-in user.
type Session struct {
	mu      sync.Mutex
	users   map[string]*account // keyed by email, case-sensitive
	current *models.User
}

// NewSession creates an anonymous session whose directory holds the given
// seed users. The seed map is copied.
func NewSession(seed map[string]dtos.SeedUser) (*Session, error) {
	s := &Session{users: make(map[string]*account, len(seed))}
	for email, u := range seed {
		hash, err := HashPassword(u.Password)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", email, err)
		}
		s.users[email] = &account{user: u.Record(), hash: hash}
	}
	return s, nil
}

// Register logs in as email, creating a diner if the address is unknown.
// A known address keeps its record but takes the new password.
func (s *Session) Register(name, email, password string) (models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.users[email]
	if !exists {
		if name == "" {
			name = email
		}
		acct = &account{user: models.User{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
			Roles: []models.RoleAssignment{{Role: models.RoleDiner}},
		}}
		s.users[email] = acct
	}
	acct.hash = hash

	user := acct.user.Clone()
	s.current = &user
	return user.Clone(), nil
}

// Login switches the session to email when password matches. On failure the
// session is left as it was.
func (s *Session) Login(email, password string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, exists := s.users[email]
	if !exists || !CheckPassword(acct.hash, password) {
		return models.User{}, false
	}
	user := acct.user.Clone()
	s.current = &user
	return user.Clone(), true
}

// Logout clears the current user. It is a no-op for an anonymous session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

func (s *Session) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return s.current.Clone(), true
}

