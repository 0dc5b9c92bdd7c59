package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
)

// newRepoDB opens a migrated in-memory database with foreign keys on.
func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestOpenSQLite_CreatesAndConfigures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var fk int
	if err := db.Raw("PRAGMA foreign_keys;").Scan(&fk).Error; err != nil {
		t.Fatalf("read pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys must be ON, got %d", fk)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate error: %v", err)
	}
	for _, table := range []string{"users", "recipes", "comments", "favorites"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after migration", table)
		}
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "no-such-dir", "x.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestForeignKeys_RejectOrphansAndCascade(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	// A recipe without an owner must be rejected outright.
	if _, err := CreateRecipe(ctx, db, "ghost-user", "T", "I", "S"); err == nil {
		t.Fatalf("expected FK violation for orphan recipe")
	}

	u, err := CreateUser(ctx, db, "alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	r, err := CreateRecipe(ctx, db, u.ID, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if _, err := CreateComment(ctx, db, r.ID, u.ID, "note"); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := CreateFavorite(ctx, db, u.ID, r.ID); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}

	// Deleting the user cascades through recipes to comments and favorites.
	if err := db.Where("id = ?", u.ID).Delete(&domain.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	var recipes, comments, favorites int64
	db.Model(&domain.Recipe{}).Count(&recipes)
	db.Model(&domain.Comment{}).Count(&comments)
	db.Model(&domain.Favorite{}).Count(&favorites)
	if recipes != 0 || comments != 0 || favorites != 0 {
		t.Fatalf("expected full cascade, got recipes=%d comments=%d favorites=%d", recipes, comments, favorites)
	}
}

func TestFavoriteUniqueConstraint(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	r, err := CreateRecipe(ctx, db, u.ID, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	if _, err := CreateFavorite(ctx, db, u.ID, r.ID); err != nil {
		t.Fatalf("first CreateFavorite: %v", err)
	}
	if _, err := CreateFavorite(ctx, db, u.ID, r.ID); err == nil {
		t.Fatalf("expected unique constraint violation for duplicate pair")
	}
}

func TestDeleteRecipe_ZeroRowsIsNotFound(t *testing.T) {
	db := newRepoDB(t)
	if err := DeleteRecipe(context.Background(), db, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := UpdateRecipe(context.Background(), db, "missing", "t", "i", "s"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := DeleteFavorite(context.Background(), db, "u", "r"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := DeleteComment(context.Background(), db, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
