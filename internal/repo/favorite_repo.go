// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Favorite
// model, the (user, recipe) join table behind "mark as favorite".
//
// Error semantics:
//   - A duplicate (user_id, recipe_id) pair relies on the database unique
//     constraint and is returned as a raw DB error; the service layer treats
//     it as idempotent success.
//   - Removing a row that does not exist returns ErrNotFound.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
)

// FavoriteWithRecipe is the read model for a user's favorites listing: the
// favorite row joined with the recipe and its owner's username.
type FavoriteWithRecipe struct {
	FavoriteID    string    `json:"favorite_id"`
	FavoritedAt   time.Time `json:"favorited_at"`
	RecipeID      string    `json:"recipe_id"`
	Title         string    `json:"title"`
	Ingredients   string    `json:"ingredients"`
	Steps         string    `json:"steps"`
	OwnerUsername string    `json:"owner_username"`
}

// CreateFavorite inserts a favorite row for (userID, recipeID). The pair
// must be unique; a concurrent duplicate insert surfaces as a constraint
// violation from the database.
func CreateFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) (*domain.Favorite, error) {
	f := &domain.Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// FavoriteExists reports whether userID has already favorited recipeID.
func FavoriteExists(ctx context.Context, db *gorm.DB, userID, recipeID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}

// ListFavorites returns the user's favorites joined with recipe data,
// ordered by the time they were favorited, newest first.
func ListFavorites(ctx context.Context, db *gorm.DB, userID string) ([]FavoriteWithRecipe, error) {
	var out []FavoriteWithRecipe
	err := db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Select(`favorites.id AS favorite_id,
			favorites.created_at AS favorited_at,
			recipes.id AS recipe_id,
			recipes.title AS title,
			recipes.ingredients AS ingredients,
			recipes.steps AS steps,
			users.username AS owner_username`).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Joins("JOIN users ON users.id = recipes.user_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&out).Error
	return out, err
}

// DeleteFavorite removes the (userID, recipeID) favorite. Zero affected rows
// (never favorited, or removed concurrently) map to ErrNotFound.
func DeleteFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
