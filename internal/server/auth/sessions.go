package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
	"github.com/google/uuid"
)

// SessionManager issues, validates and revokes opaque session tokens.
//
// A session is Active until its expiry instant, Expired from then on, and
// Revoked once deleted. Expired sessions are rejected on read but left in
// storage.
type SessionManager struct {
	repo sessions.Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionManager(repo sessions.Repository, ttl time.Duration) *SessionManager {
	return &SessionManager{repo: repo, ttl: ttl, now: time.Now}
}

// TTL is the lifetime applied when Issue is called without one.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue creates and stores a session for userID. A non-positive ttl selects
// the manager default.
func (m *SessionManager) Issue(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.ttl
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: token generation failed: %v", common.ErrHashing, err)
	}

	created := m.now().UTC()
	s := &models.Session{
		Token:     id.String(),
		UserID:    userID,
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}

	if err := m.repo.Create(ctx, s); err != nil {
		return "", err
	}
	return s.Token, nil
}

// Validate returns the owner of an active session. Empty, unknown and
// expired tokens all yield common.ErrorUnauthorized.
func (m *SessionManager) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}

	s, err := m.repo.Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorUnauthorized
		}
		return 0, err
	}

	if !s.ActiveAt(m.now()) {
		return 0, common.ErrorUnauthorized
	}
	return s.UserID, nil
}

// Revoke deletes the session. Unknown or empty tokens are a no-op.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.repo.Delete(ctx, token)
}
