// Package services contains server-side business logic. AccountService
// validates registration input, verifies credentials, and ties successful
// logins to sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

const MinPasswordLength = 6

// Client-facing validation messages.
const (
	MsgUsernameRequired = "username required"
	MsgEmailRequired    = "email required"
	MsgPasswordTooShort = "password min 6 chars"
	MsgUsernameExists   = "username exists"
	MsgEmailExists      = "email exists"
	MsgDuplicateAccount = "username or email exists"
)

// dummyPassword feeds the verify performed for unknown usernames.
const dummyPassword = "gophauth-dummy-password"

// AccountService provides account operations:
// - Register: validate and create users
// - Authenticate: check a username/password pair
// - Login / Logout / CurrentUser: session lifecycle on top of SessionManager
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	sessions    *auth.SessionManager

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(db *sql.DB, rm repomanager.RepositoryManager, h auth.Hasher, sm *auth.SessionManager) *AccountService {
	return &AccountService{db: db, repomanager: rm, hasher: h, sessions: sm}
}

// Register validates input, rejects taken usernames and emails, and stores a
// new user with a hashed password. Rejections are *common.ValidationError.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, common.NewValidationError(MsgUsernameRequired)
	}
	if strings.TrimSpace(email) == "" {
		return nil, common.NewValidationError(MsgEmailRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, common.NewValidationError(MsgPasswordTooShort)
	}

	users := s.repomanager.Users(s.db)

	taken, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, common.NewValidationError(MsgUsernameExists)
	}

	taken, err = users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, common.NewValidationError(MsgEmailExists)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, &models.User{
			UserName:     username,
			Email:        email,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		// lost a race with a concurrent registration
		if dbx.IsUniqueViolation(err) {
			return nil, common.NewValidationError(MsgDuplicateAccount)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Authenticate returns the user when password matches. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized and cost one verify.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Login authenticates and issues a session with the manager's TTL.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.sessions.Issue(ctx, user.ID, s.sessions.TTL())
}

// Logout revokes the session; unknown tokens are ignored.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// CurrentUser resolves token to its user. Invalid sessions and sessions whose
// user no longer exists yield common.ErrorUnauthorized.
func (s *AccountService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// SessionTTL is the lifetime of sessions issued by Login.
func (s *AccountService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
