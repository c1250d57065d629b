package users

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s, _ := openStore(t)

	u, err := s.Register("Alice", "Alice@Example.com", "four four", "12 Park Street", "9999999999")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email, "email must be stored lower-cased")
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "44", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.Authenticate("ALICE@example.COM", "four four")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	// the normalized digits work too
	_, err = s.Authenticate("alice@example.com", "44")
	assert.NoError(t, err)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Register("Alice", "alice@example.com", "four four", "addr", "123")
	require.NoError(t, err)

	_, err = s.Authenticate("alice@example.com", "45")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Authenticate("ghost@example.com", "pass")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Register("Alice", "alice@example.com", "pw", "addr", "123")
	require.NoError(t, err)

	// same email, different case
	_, err = s.Register("Other", "ALICE@EXAMPLE.COM", "pw2", "addr2", "456")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestResetPassword(t *testing.T) {
	s, _ := openStore(t)
	_, err := s.Register("Alice", "alice@example.com", "four four", "addr", "123")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword("alice@example.com", "nine nine one"))

	_, err = s.Authenticate("alice@example.com", "four four")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate("alice@example.com", "991")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.ResetPassword("ghost@example.com", "pw"), ErrUnknownEmail)
}

func TestPersistenceAcrossOpens(t *testing.T) {
	s, path := openStore(t)
	_, err := s.Register("Alice", "alice@example.com", "four four", "addr", "123")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	u, ok := reopened.Get("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "Alice", u.Name)

	_, err = reopened.Authenticate("alice@example.com", "four four")
	assert.NoError(t, err)
}

func TestOpen_CorruptFileHealsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get("anyone@example.com")
	assert.False(t, ok)

	// and it is usable again
	_, err = s.Register("Alice", "alice@example.com", "pw", "addr", "123")
	assert.NoError(t, err)
}
