package users

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/grocymate/core/internal/auth"
	"github.com/grocymate/core/internal/storage"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUnknownEmail       = errors.New("email not found")
	ErrInvalidCredentials = errors.New("incorrect password")
)

type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Address      string    `json:"address"`
	Mobile       string    `json:"mobile"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the durable user collection. The in-memory map is the truth;
// every mutation holds the lock for the full read-modify-write-replace cycle.
type Store struct {
	path  string
	mu    sync.Mutex
	users map[string]User // keyed by normalized email
}

// Open loads users.json from path. Missing or corrupt files load as an empty
// collection.
func Open(path string) (*Store, error) {
	s := &Store{path: path, users: map[string]User{}}
	ok, err := storage.ReadJSON(path, &s.users)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.users = map[string]User{}
	}
	return s, nil
}

// Register creates a user with a hashed, speech-normalized password and
// persists the collection.
func (s *Store) Register(name, email, password, address, mobile string) (User, error) {
	email = auth.NormalizeEmail(email)
	hash, err := auth.HashPassword(auth.NormalizeSpoken(password))
	if err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return User{}, ErrDuplicateEmail
	}
	u := User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Address:      strings.TrimSpace(address),
		Mobile:       strings.TrimSpace(mobile),
		CreatedAt:    time.Now().UTC(),
	}
	s.users[email] = u
	if err := storage.WriteJSON(s.path, s.users); err != nil {
		delete(s.users, email)
		return User{}, err
	}
	slog.Info("saved users", "path", s.path, "count", len(s.users))
	return u, nil
}

// Authenticate verifies email + spoken password.
func (s *Store) Authenticate(email, password string) (User, error) {
	s.mu.Lock()
	u, exists := s.users[auth.NormalizeEmail(email)]
	s.mu.Unlock()
	if !exists {
		return User{}, ErrUnknownEmail
	}
	if !auth.CheckPassword(auth.NormalizeSpoken(password), u.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ResetPassword replaces the stored hash for an existing user.
func (s *Store) ResetPassword(email, newPassword string) error {
	email = auth.NormalizeEmail(email)
	hash, err := auth.HashPassword(auth.NormalizeSpoken(newPassword))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, exists := s.users[email]
	if !exists {
		return ErrUnknownEmail
	}
	prev := u.PasswordHash
	u.PasswordHash = hash
	s.users[email] = u
	if err := storage.WriteJSON(s.path, s.users); err != nil {
		u.PasswordHash = prev
		s.users[email] = u
		return err
	}
	return nil
}

func (s *Store) Get(email string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[auth.NormalizeEmail(email)]
	return u, ok
}

