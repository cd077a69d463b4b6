package auth

import (
	"errors"
	"log"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"travelmate/store"
)

// Storage keys, kept compatible with the web client's local storage layout.
const (
	usersKey   = "registered-users"
	sessionKey = "current-session-user"
)

var (
	// ErrInvalidCredentials is returned when email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a locally registered account. Passwords are stored as bcrypt
// hashes; the hash is never serialized into API responses.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// Public returns the user without credential material.
func (u User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}

// Service manages the registered user list and the current session.
// At most one user is signed in at a time; the session survives restarts
// through the local key-value store.
type Service struct {
	mu      sync.Mutex
	store   *store.Store
	users   []User
	current *User
}

// NewService loads the persisted user list and restores the previous
// session, if any.
func NewService(s *store.Store) (*Service, error) {
	svc := &Service{store: s}

	if err := s.Get(usersKey, &svc.users); err != nil && err != store.ErrNotFound {
		return nil, err
	}

	var current User
	err := s.Get(sessionKey, &current)
	switch err {
	case nil:
		svc.current = &current
		log.Printf("Restored session for %s", current.Email)
	case store.ErrNotFound:
		// No previous session; start unauthenticated.
	default:
		return nil, err
	}

	return svc, nil
}

// Login matches email case-sensitively and verifies the password against the
// stored hash. On success the session is set and persisted. A failed attempt
// has no side effects.
func (s *Service) Login(email, password string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(s.users[i].PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		u := s.users[i]
		if err := s.store.Put(sessionKey, u); err != nil {
			return nil, err
		}
		s.current = &u
		return &u, nil
	}
	return nil, ErrInvalidCredentials
}

// Register creates a new user with the next numeric id and signs them in.
// The user list and session are only persisted together on success.
func (s *Service) Register(name, email, password string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:           len(s.users) + 1,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	updated := append(append([]User(nil), s.users...), u)
	if err := s.store.Put(usersKey, updated); err != nil {
		return nil, err
	}
	if err := s.store.Put(sessionKey, u); err != nil {
		return nil, err
	}

	s.users = updated
	s.current = &u
	return &u, nil
}

// Logout clears the current session. The registered user list is retained.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(sessionKey); err != nil {
		return err
	}
	s.current = nil
	return nil
}

// Current returns the signed-in user, or nil.
func (s *Service) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// UserCount reports the number of registered users.
func (s *Service) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
