package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeshare/go-recipe-backend/internal/auth"
	"github.com/recipeshare/go-recipe-backend/internal/domain"
	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// ---------- shared test helpers ----------

// newSvcDB opens a fresh in-memory SQLite database with the full schema and
// foreign keys enabled. Each call gets its own database.
func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.User{}, &domain.Recipe{}, &domain.Comment{}, &domain.Favorite{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newAutocommitDB is newSvcDB without the default per-write transaction, for
// tests that mutate rows from inside a GORM callback while a write runs.
func newAutocommitDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.User{}, &domain.Recipe{}, &domain.Comment{}, &domain.Favorite{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newAuthService wires an AuthService with cheap bcrypt and a 1h token TTL.
func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db,
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenService("test-secret", time.Hour),
	)
}

// seedUser inserts a user directly and returns it.
func seedUser(t *testing.T, db *gorm.DB, username, email string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, username, email, "$2a$04$notarealhashnotarealhashno")
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// asPrincipal converts a seeded user into a request principal.
func asPrincipal(u *domain.User) Principal {
	return Principal{ID: u.ID, Username: u.Username, Email: u.Email}
}

// ---------- Register() ----------

func TestAuthService_Register_Success(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	u, err := s.Register(context.Background(), "alice", "Alice@Example.COM", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}
	if !s.Hasher.Verify("password123", u.PasswordHash) {
		t.Fatalf("stored hash does not verify against the original password")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	cases := [][3]string{
		{"", "a@b.com", "password123"},
		{"alice", "", "password123"},
		{"alice", "a@b.com", ""},
		{"   ", "a@b.com", "password123"},
	}
	for _, c := range cases {
		if _, err := s.Register(context.Background(), c[0], c[1], c[2]); err != ErrMissingFields {
			t.Fatalf("expected ErrMissingFields for %v, got %v", c, err)
		}
	}
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, err := s.Register(context.Background(), "alice", "a@b.com", "12345"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	// Exactly at the minimum passes validation.
	if _, err := s.Register(context.Background(), "alice", "a@b.com", "123456"); err != nil {
		t.Fatalf("6-char password should register: %v", err)
	}
}

func TestAuthService_Register_DuplicateUsernameAndEmail(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, err := s.Register(context.Background(), "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	// Same username, different email.
	if _, err := s.Register(context.Background(), "alice", "other@example.com", "password123"); err != ErrDuplicateUser {
		t.Fatalf("expected ErrDuplicateUser for username, got %v", err)
	}
	// Same email, different username. Case differences collapse because the
	// email is lowercased before the lookup.
	if _, err := s.Register(context.Background(), "bob", "ALICE@example.com", "password123"); err != ErrDuplicateUser {
		t.Fatalf("expected ErrDuplicateUser for email, got %v", err)
	}
}

func TestIsDuplicate_DetectsConstraintViolation(t *testing.T) {
	db := newSvcDB(t)
	seedUser(t, db, "alice", "alice@example.com")

	// A raw insert past the pre-check surfaces the constraint error that the
	// service translates into ErrDuplicateUser when it loses a register race.
	_, err := repo.CreateUser(context.Background(), db, "alice", "alice@example.com", "h")
	if err == nil {
		t.Fatalf("expected unique constraint violation")
	}
	if !isDuplicate(err) {
		t.Fatalf("isDuplicate should recognize %v", err)
	}
}

// ---------- Login() ----------

func TestAuthService_Login_SuccessAndTokenRoundTrip(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	u, err := s.Register(context.Background(), "alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	token, got, err := s.Login(context.Background(), "Alice@Example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("expected logged-in user %s, got %#v", u.ID, got)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a compact JWT, got %q", token)
	}

	// The issued token resolves back to the same account.
	p, err := s.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if p.ID != u.ID || p.Username != "alice" || p.Email != "alice@example.com" {
		t.Fatalf("unexpected principal %#v", p)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, err := s.Register(context.Background(), "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Unknown email and wrong password yield the same error.
	if _, _, err := s.Login(context.Background(), "nobody@example.com", "password123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := s.Login(context.Background(), "alice@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, _, err := s.Login(context.Background(), "", "pw"); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields for empty email, got %v", err)
	}
	if _, _, err := s.Login(context.Background(), "a@b.com", ""); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields for empty password, got %v", err)
	}
}

// ---------- Resolve() ----------

func TestAuthService_Resolve_InvalidToken(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, err := s.Resolve(context.Background(), "not-a-token"); err != auth.ErrInvalidToken {
		t.Fatalf("expected auth.ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Resolve_DeletedUser(t *testing.T) {
	db := newSvcDB(t)
	s := newAuthService(db)

	if _, err := s.Register(context.Background(), "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token, u, err := s.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	// Delete the account; the still-valid token must no longer resolve.
	if err := db.Where("id = ?", u.ID).Delete(&domain.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.Resolve(context.Background(), token); err != auth.ErrInvalidToken {
		t.Fatalf("expected auth.ErrInvalidToken for deleted user, got %v", err)
	}
}
