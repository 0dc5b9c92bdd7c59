package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// ---------- Create() ----------

func TestRecipeService_Create_MissingFields(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	cases := [][3]string{
		{"", "Water", "Boil"},
		{"Soup", "", "Boil"},
		{"Soup", "Water", ""},
		{"  ", "Water", "Boil"},
	}
	for _, c := range cases {
		if _, err := s.Create(context.Background(), alice, c[0], c[1], c[2]); err != ErrMissingFields {
			t.Fatalf("expected ErrMissingFields for %v, got %v", c, err)
		}
	}
}

func TestRecipeService_Create_Success_ZeroCounts(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if r.ID == "" || r.UserID != alice.ID {
		t.Fatalf("unexpected recipe %#v", r)
	}
	if r.OwnerUsername != "alice" {
		t.Fatalf("expected owner username alice, got %q", r.OwnerUsername)
	}
	if r.CommentCount != 0 || r.FavoriteCount != 0 {
		t.Fatalf("fresh recipe must have zero counts, got %d/%d", r.CommentCount, r.FavoriteCount)
	}
}

// ---------- ListPage() / Get() ----------

func TestRecipeService_ListPage_EmptyAndDefaults(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)

	items, total, err := s.ListPage(context.Background(), -3, 0) // defaults to 1/20
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected empty listing, got total=%d len=%d", total, len(items))
	}
}

func TestRecipeService_ListPage_NewestFirstWithCounts(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	cs := NewCommentService(db)
	fs := NewFavoriteService(db)

	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))
	bob := asPrincipal(seedUser(t, db, "bob", "bob@example.com"))

	first, err := s.Create(context.Background(), alice, "First", "i", "s")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// Distinct created_at so the ordering is deterministic.
	db.Model(&domain.Recipe{}).Where("id = ?", first.ID).
		Update("created_at", first.CreatedAt.Add(-time.Second))

	second, err := s.Create(context.Background(), alice, "Second", "i", "s")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := cs.Create(context.Background(), bob, first.ID, "nice"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := fs.Add(context.Background(), bob, first.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	items, total, err := s.ListPage(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 recipes, got total=%d len=%d", total, len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest first, got [%s %s]", items[0].Title, items[1].Title)
	}
	if items[1].CommentCount != 1 || items[1].FavoriteCount != 1 {
		t.Fatalf("expected counts 1/1 on first recipe, got %d/%d", items[1].CommentCount, items[1].FavoriteCount)
	}
}

func TestRecipeService_ListPage_Pagination(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	for i := 0; i < 5; i++ {
		if _, err := s.Create(context.Background(), alice, "Recipe", "i", "s"); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	page1, total, err := s.ListPage(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if total != 5 || len(page1) != 2 {
		t.Fatalf("expected total=5 page len=2, got total=%d len=%d", total, len(page1))
	}
	page3, _, err := s.ListPage(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(page3) != 1 {
		t.Fatalf("expected final partial page of 1, got %d", len(page3))
	}
	page4, _, err := s.ListPage(context.Background(), 4, 2)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(page4) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(page4))
	}
}

func TestRecipeService_Get_NotFound(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)

	if _, err := s.Get(context.Background(), "missing-id"); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

// ---------- Update() ----------

func TestRecipeService_Update_OwnershipAndNotFound(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))
	bob := asPrincipal(seedUser(t, db, "bob", "bob@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Non-owner is rejected before any write.
	if _, err := s.Update(context.Background(), bob, r.ID, "Stolen", "x", "y"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	got, err := s.Get(context.Background(), r.ID)
	if err != nil || got.Title != "Soup" {
		t.Fatalf("recipe must be unchanged after rejected update, got %#v (%v)", got, err)
	}

	// Owner succeeds.
	updated, err := s.Update(context.Background(), alice, r.ID, "Better Soup", "Water, Salt", "Boil longer")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "Better Soup" || updated.Ingredients != "Water, Salt" {
		t.Fatalf("update not applied: %#v", updated)
	}

	// Missing recipe.
	if _, err := s.Update(context.Background(), alice, "missing-id", "T", "I", "S"); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeService_Update_MissingFields(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// Validation runs before the ownership check and before any write.
	if _, err := s.Update(context.Background(), alice, r.ID, "", "Water", "Boil"); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

// ---------- Delete() ----------

func TestRecipeService_Delete_OwnershipAndNotFound(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))
	bob := asPrincipal(seedUser(t, db, "bob", "bob@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(context.Background(), bob, r.ID); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := s.Delete(context.Background(), alice, r.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(context.Background(), r.ID); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound after delete, got %v", err)
	}
	if err := s.Delete(context.Background(), alice, r.ID); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound for repeat delete, got %v", err)
	}
}

func TestRecipeService_Delete_CascadesToCommentsAndFavorites(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	cs := NewCommentService(db)
	fs := NewFavoriteService(db)

	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))
	bob := asPrincipal(seedUser(t, db, "bob", "bob@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := cs.Create(context.Background(), bob, r.ID, "looks great"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := fs.Add(context.Background(), bob, r.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	if err := s.Delete(context.Background(), alice, r.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	// No orphan rows survive the delete.
	var comments, favorites int64
	db.Model(&domain.Comment{}).Where("recipe_id = ?", r.ID).Count(&comments)
	db.Model(&domain.Favorite{}).Where("recipe_id = ?", r.ID).Count(&favorites)
	if comments != 0 || favorites != 0 {
		t.Fatalf("expected cascade to remove rows, got comments=%d favorites=%d", comments, favorites)
	}

	// Bob's favorites listing is empty again.
	favs, err := fs.List(context.Background(), bob)
	if err != nil {
		t.Fatalf("List favorites: %v", err)
	}
	if len(favs) != 0 {
		t.Fatalf("expected no favorites after cascade, got %d", len(favs))
	}
}

func TestRecipeService_Update_ConcurrentDeleteMapsToNotFound(t *testing.T) {
	db := newSvcDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// Drop the row behind the service's back; the write must report the
	// vanished recipe, never silent success.
	if err := repo.DeleteRecipe(context.Background(), db, r.ID); err != nil {
		t.Fatalf("raw delete: %v", err)
	}
	if _, err := s.Update(context.Background(), alice, r.ID, "T", "I", "S"); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestRecipeService_Update_DeletedDuringEchoRead(t *testing.T) {
	db := newAutocommitDB(t)
	s := NewRecipeService(db)
	alice := asPrincipal(seedUser(t, db, "alice", "alice@example.com"))

	r, err := s.Create(context.Background(), alice, "Soup", "Water", "Boil")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Drop the row right after the UPDATE lands so the re-read for the
	// response body misses. The race must still surface as not-found, not
	// as a raw record-not-found error.
	const cb = "recipe_service_test_drop_row"
	if err := db.Callback().Update().After("gorm:update").Register(cb, func(tx *gorm.DB) {
		if tx.Statement.Table == "recipes" {
			db.Exec("DELETE FROM recipes WHERE id = ?", r.ID)
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() { _ = db.Callback().Update().Remove(cb) })

	if _, err := s.Update(context.Background(), alice, r.ID, "Stew", "Water", "Simmer"); err != ErrRecipeNotFound {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}
