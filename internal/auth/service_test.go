package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easybooking/internal/domain"
	"easybooking/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Users, *memory.Sessions) {
	t.Helper()
	users, sessions := memory.NewUsers(), memory.NewSessions()
	return NewService(users, sessions, 6*time.Hour), users, sessions
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", h)
	assert.True(t, CheckPassword(h, "secret"))
	assert.False(t, CheckPassword(h, "Secret"))
}

func TestEnsureAdmin(t *testing.T) {
	s, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.True(t, CheckPassword(u.PasswordHash, "admin12345"))

	created, err = s.EnsureAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)
	u, _ = users.FindByUsername(ctx, "admin")
	assert.True(t, CheckPassword(u.PasswordHash, "admin12345"), "existing admin must keep its password")
}

func TestLogin(t *testing.T) {
	s, _, sessions := newTestService(t)
	ctx := context.Background()
	_, err := s.EnsureAdmin(ctx, "admin", "admin12345")
	require.NoError(t, err)

	for _, c := range []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "admin12345"},
		{"", "admin12345"},
		{"admin", ""},
	} {
		_, err := s.Login(ctx, c.user, c.pass)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "%q/%q", c.user, c.pass)
	}
	assert.Equal(t, 0, sessions.Len())

	sess, err := s.Login(ctx, "admin", "admin12345")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
	assert.WithinDuration(t, time.Now().Add(6*time.Hour), sess.ExpiresAt, time.Minute)
	assert.Equal(t, 1, sessions.Len())
}

func TestResolve(t *testing.T) {
	s, _, sessions := newTestService(t)
	ctx := context.Background()
	_, _ = s.EnsureAdmin(ctx, "admin", "pw")
	sess, err := s.Login(ctx, "admin", "pw")
	require.NoError(t, err)

	got, err := s.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	_, err = s.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = s.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// past half the window: renewed
	base := time.Now()
	s.now = func() time.Time { return base.Add(4 * time.Hour) }
	got, err = s.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.After(sess.ExpiresAt))

	// past the renewed window: gone
	s.now = func() time.Time { return base.Add(11 * time.Hour) }
	_, err = s.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout(t *testing.T) {
	s, _, sessions := newTestService(t)
	ctx := context.Background()
	_, _ = s.EnsureAdmin(ctx, "admin", "pw")
	sess, _ := s.Login(ctx, "admin", "pw")

	require.NoError(t, s.Logout(ctx, sess.Token))
	require.NoError(t, s.Logout(ctx, sess.Token))
	require.NoError(t, s.Logout(ctx, ""))
	assert.Equal(t, 0, sessions.Len())
	_, err := s.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSetPassword(t *testing.T) {
	s, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := s.SetPassword(ctx, "ops", "first", "admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.SetPassword(ctx, "ops", "second", "admin")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = s.Login(ctx, "ops", "first")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = s.Login(ctx, "ops", "second")
	assert.NoError(t, err)
	u, _ := users.FindByUsername(ctx, "ops")
	assert.Equal(t, "admin", u.Role)
}
