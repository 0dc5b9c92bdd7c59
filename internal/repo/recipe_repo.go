// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// model, including the read-augmented queries that annotate each recipe with
// its comment and favorite counts (computed at read time, never stored).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
)

// RecipeWithStats is the read model for recipe listings and detail views:
// the recipe row joined with its owner's username and per-recipe counts.
type RecipeWithStats struct {
	domain.Recipe
	OwnerUsername string `json:"owner_username"`
	CommentCount  int64  `json:"comment_count"`
	FavoriteCount int64  `json:"favorite_count"`
}

// recipeStatsQuery composes the shared SELECT for recipe reads. Counts are
// correlated subqueries so they reflect the state at read time.
func recipeStatsQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Select(`recipes.*,
			users.username AS owner_username,
			(SELECT COUNT(*) FROM comments WHERE comments.recipe_id = recipes.id) AS comment_count,
			(SELECT COUNT(*) FROM favorites WHERE favorites.recipe_id = recipes.id) AS favorite_count`).
		Joins("JOIN users ON users.id = recipes.user_id")
}

// CreateRecipe inserts a new recipe owned by userID. The recipe ID is a
// randomly generated UUID and CreatedAt/UpdatedAt are set to UTC now.
func CreateRecipe(ctx context.Context, db *gorm.DB, userID, title, ingredients, steps string) (*domain.Recipe, error) {
	now := time.Now().UTC()
	r := &domain.Recipe{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipesPage returns a page of recipes with stats, ordered by creation
// time descending (most recent first).
func ListRecipesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]RecipeWithStats, error) {
	var out []RecipeWithStats
	err := recipeStatsQuery(ctx, db).
		Order("recipes.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountRecipes returns the total number of recipes, for pagination metadata.
func CountRecipes(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Recipe{}).Count(&total).Error
	return total, err
}

// GetRecipeWithStats fetches a single recipe with owner username and counts.
// Returns ErrNotFound if the recipe does not exist.
func GetRecipeWithStats(ctx context.Context, db *gorm.DB, id string) (*RecipeWithStats, error) {
	var r RecipeWithStats
	err := recipeStatsQuery(ctx, db).Where("recipes.id = ?", id).First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipe fetches the bare recipe row by ID, primarily for ownership
// checks. Returns ErrNotFound if missing.
func GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// RecipeExists reports whether a recipe row with the given ID exists.
func RecipeExists(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Recipe{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// UpdateRecipe replaces title, ingredients, and steps of the recipe and
// bumps UpdatedAt. If no rows are affected (recipe deleted concurrently),
// it returns ErrNotFound rather than reporting silent success.
func UpdateRecipe(ctx context.Context, db *gorm.DB, id, title, ingredients, steps string) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"ingredients": ingredients,
			"steps":       steps,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe row. The FK constraints cascade the delete
// to comments and favorites. Zero affected rows map to ErrNotFound.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
