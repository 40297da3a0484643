package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(clock *fakeClock) *OneTimeTokenSigner {
	s := NewOneTimeTokenSigner("secret", "website.users.one-time-token", 2)
	s.now = clock.Now
	return s
}

func TestOneTimeToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newSigner(clock)

	key, err := s.Key(42)
	require.NoError(t, err)

	userID, err := s.UserID(key)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestOneTimeToken_Expires(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newSigner(clock)

	key, err := s.Key(42)
	require.NoError(t, err)

	clock.Advance(47 * time.Hour)
	_, err = s.UserID(key)
	assert.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = s.UserID(key)
	assert.ErrorIs(t, err, ErrOneTimeTokenDoesNotExist)
}

func TestOneTimeToken_RejectsTamperingAndForeignSalt(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newSigner(clock)

	key, err := s.Key(42)
	require.NoError(t, err)

	_, err = s.UserID("hejhej")
	assert.ErrorIs(t, err, ErrOneTimeTokenDoesNotExist)

	// payload другого пользователя с подписью исходного ключа
	otherKey, err := s.Key(43)
	require.NoError(t, err)
	parts, otherParts := strings.Split(key, "."), strings.Split(otherKey, ".")
	tampered := strings.Join([]string{parts[0], otherParts[1], parts[2]}, ".")
	_, err = s.UserID(tampered)
	assert.ErrorIs(t, err, ErrOneTimeTokenDoesNotExist)

	otherSalt := NewOneTimeTokenSigner("secret", "another-salt", 2)
	_, err = otherSalt.UserID(key)
	assert.ErrorIs(t, err, ErrOneTimeTokenDoesNotExist)

	// access-токен тем же секретом не подходит как одноразовый
	m := NewTokenManager("secret", time.Minute, time.Hour)
	access, _, err := m.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = s.UserID(access)
	assert.ErrorIs(t, err, ErrOneTimeTokenDoesNotExist)
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(RoleFor(true, false), PermTasksRun))
	assert.False(t, HasPermission(RoleFor(false, false), PermUsersList))
	assert.True(t, HasPermission(RoleFor(false, true), PermSystemManage))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("supersafepassword")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("supersafepassword", hash))
	assert.False(t, CheckPasswordHash("hej", hash))
}
