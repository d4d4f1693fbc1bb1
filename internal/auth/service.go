// Package auth implements the login/session contract: bcrypt password
// storage, server-side sessions keyed by opaque tokens, and an inactivity
// window renewed while the session is in use.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"easybooking/internal/domain"
)

type Service struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewService(users domain.UserRepository, sessions domain.SessionRepository, ttl time.Duration) *Service {
	return &Service{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

// EnsureAdmin creates the admin account when username is not taken yet.
// An existing account is left as is.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.users.Insert(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert admin: %w", err)
	}
	return true, nil
}

// SetPassword creates the user or resets its password and role.
func (s *Service) SetPassword(ctx context.Context, username, password, role string) (bool, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	return s.users.SetPassword(ctx, username, hash, role)
}

// Login checks the credentials and opens a session. Unknown users and wrong
// passwords are both reported as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		burnCompare(password)
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	sess := domain.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Resolve returns the live session behind token, or ErrUnauthorized.
// Sessions past half their window get a fresh one.
func (s *Service) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthorized
	}
	sess, err := s.sessions.Get(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	now := s.now()
	if sess.Expired(now) {
		_ = s.sessions.Delete(ctx, token)
		return domain.Session{}, domain.ErrUnauthorized
	}
	if sess.ExpiresAt.Sub(now) < s.ttl/2 {
		exp := now.UTC().Add(s.ttl)
		if err := s.sessions.Touch(ctx, token, exp); err == nil {
			sess.ExpiresAt = exp
		}
	}
	return sess, nil
}

// Logout ends the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
