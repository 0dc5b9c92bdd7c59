// Package services – RecipeService
//
// This file implements the RecipeService, which manages the recipe lifecycle.
// Reads are public and annotated with comment/favorite counts; writes require
// a resolved principal and enforce the ownership rule: only the creating user
// may update or delete a recipe.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// RecipeService provides recipe CRUD with ownership enforcement.
type RecipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewRecipeService constructs a RecipeService.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// Create inserts a new recipe owned by the principal. All three content
// fields are required after trimming.
func (s *RecipeService) Create(ctx context.Context, p Principal, title, ingredients, steps string) (*repo.RecipeWithStats, error) {
	title, ingredients, steps = strings.TrimSpace(title), strings.TrimSpace(ingredients), strings.TrimSpace(steps)
	if title == "" || ingredients == "" || steps == "" {
		return nil, ErrMissingFields
	}
	r, err := repo.CreateRecipe(ctx, s.DB, p.ID, title, ingredients, steps)
	if err != nil {
		return nil, err
	}
	// Re-read through the stats query so the response carries counts and
	// the owner username, same shape as every other recipe read. Get maps
	// a row deleted in between to ErrRecipeNotFound.
	return s.Get(ctx, r.ID)
}

// ListPage returns a page of recipes with counts, newest first, plus the
// total for pagination metadata. It applies defaults for invalid page and
// pageSize values.
func (s *RecipeService) ListPage(ctx context.Context, page, pageSize int) ([]repo.RecipeWithStats, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountRecipes(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []repo.RecipeWithStats{}, 0, nil
	}

	items, err := repo.ListRecipesPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Get returns a single recipe with counts, or ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, id string) (*repo.RecipeWithStats, error) {
	r, err := repo.GetRecipeWithStats(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// Update replaces the content of a recipe owned by the principal.
//
// Outcomes, in order of evaluation:
//   - blank required field            → ErrMissingFields
//   - recipe missing                  → ErrRecipeNotFound
//   - principal is not the owner      → ErrNotOwner
//   - deleted between check and write → ErrRecipeNotFound
//
// The ownership check and the write are deliberately not wrapped in one
// transaction; a concurrent delete surfaces as zero affected rows, never as
// silent success.
func (s *RecipeService) Update(ctx context.Context, p Principal, id, title, ingredients, steps string) (*repo.RecipeWithStats, error) {
	title, ingredients, steps = strings.TrimSpace(title), strings.TrimSpace(ingredients), strings.TrimSpace(steps)
	if title == "" || ingredients == "" || steps == "" {
		return nil, ErrMissingFields
	}
	if err := s.authorize(ctx, p, id); err != nil {
		return nil, err
	}
	if err := repo.UpdateRecipe(ctx, s.DB, id, title, ingredients, steps); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	// Echo read for the response body. Get maps a row deleted between the
	// write and this read to ErrRecipeNotFound, keeping the race on the
	// not-found path instead of surfacing a raw record-not-found error.
	return s.Get(ctx, id)
}

// Delete removes a recipe owned by the principal. The database cascades the
// delete to the recipe's comments and favorites.
func (s *RecipeService) Delete(ctx context.Context, p Principal, id string) error {
	if err := s.authorize(ctx, p, id); err != nil {
		return err
	}
	if err := repo.DeleteRecipe(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// authorize loads the recipe and applies the ownership rule.
func (s *RecipeService) authorize(ctx context.Context, p Principal, id string) error {
	r, err := repo.GetRecipe(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if r.UserID != p.ID {
		return ErrNotOwner
	}
	return nil
}
