// Package services – FavoriteService
//
// This file implements the FavoriteService. Favorites differ from recipes
// and comments in two ways: adding one is deliberately idempotent (marking
// an already-favorited recipe succeeds without duplicating the row), and
// there is no owner field beyond the acting principal itself.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// FavoriteService manages the (user, recipe) favorite relation.
type FavoriteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// List returns the principal's favorites joined with recipe data, newest
// first.
func (s *FavoriteService) List(ctx context.Context, p Principal) ([]repo.FavoriteWithRecipe, error) {
	return repo.ListFavorites(ctx, s.DB, p.ID)
}

// Add marks recipeID as a favorite of the principal. The operation is
// idempotent: if the pair already exists (found by the pre-check, or inserted
// concurrently and caught by the unique constraint) Add reports success with
// created=false. A missing recipe yields
// ErrRecipeNotFound before any row is written.
func (s *FavoriteService) Add(ctx context.Context, p Principal, recipeID string) (created bool, err error) {
	exists, err := repo.RecipeExists(ctx, s.DB, recipeID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrRecipeNotFound
	}

	already, err := repo.FavoriteExists(ctx, s.DB, p.ID, recipeID)
	if err != nil {
		return false, err
	}
	if already {
		return false, nil
	}

	if _, err := repo.CreateFavorite(ctx, s.DB, p.ID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Remove deletes the principal's favorite for recipeID. Removing a recipe
// that was never favorited (or whose favorite vanished concurrently) yields
// ErrFavoriteNotFound.
func (s *FavoriteService) Remove(ctx context.Context, p Principal, recipeID string) error {
	if err := repo.DeleteFavorite(ctx, s.DB, p.ID, recipeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}
