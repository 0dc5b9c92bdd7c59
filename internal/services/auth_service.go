// Package services – AuthService
//
// This file implements the AuthService, which owns the credential lifecycle:
// registration (with uniqueness rules), login (password verification plus
// token issuance), and principal resolution for the request-scoped auth
// middleware. Service-level errors (ErrDuplicateUser, ErrInvalidCredentials,
// ...) are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/auth"
	"github.com/recipeshare/go-recipe-backend/internal/domain"
	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// minPasswordLen is the minimum accepted password length on registration.
const minPasswordLen = 6

// Principal is the authenticated identity resolved from a valid token for
// the current request. It carries only public user fields and is never
// persisted beyond the request.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthService implements registration, login, and principal resolution.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Hasher produces and verifies bcrypt digests.
	Hasher *auth.PasswordHasher
	// Tokens issues and verifies session tokens.
	Tokens *auth.TokenService
}

// NewAuthService constructs an AuthService bound to the given collaborators.
func NewAuthService(db *gorm.DB, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{DB: db, Hasher: hasher, Tokens: tokens}
}

// Register creates a new account and returns its public representation.
//
// Semantics and validation:
//   - username, email, and password are required; email is lowercased.
//   - password must be at least 6 characters; otherwise ErrPasswordTooShort.
//   - A taken username or email yields ErrDuplicateUser. The pre-check makes
//     the common case cheap; the unique constraints remain the source of
//     truth, so a registration race also resolves to ErrDuplicateUser.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	taken, err := repo.UsernameOrEmailTaken(ctx, s.DB, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUser
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, email, hash)
	if err != nil {
		// Two requests can pass the pre-check concurrently; the unique
		// constraint decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a session token for the account.
// Unknown email and wrong password are indistinguishable to the caller:
// both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err = s.Tokens.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Resolve verifies a bearer token and loads the principal it asserts.
// It fails with auth.ErrInvalidToken both for bad/expired tokens and for
// tokens whose user no longer exists (e.g. a deleted account).
func (s *AuthService) Resolve(ctx context.Context, tokenString string) (*Principal, error) {
	userID, err := s.Tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	u, err := repo.GetUserByID(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return &Principal{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
