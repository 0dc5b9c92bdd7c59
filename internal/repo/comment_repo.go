// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
)

// CommentWithAuthor is the read model for comment listings: the comment row
// joined with the author's username.
type CommentWithAuthor struct {
	domain.Comment
	Username string `json:"username"`
}

// CreateComment inserts a comment by userID under recipeID. Existence of the
// parent recipe is checked by the service layer before this call; the FK
// constraint backstops it.
func CreateComment(ctx context.Context, db *gorm.DB, recipeID, userID, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns all comments for a recipe with author usernames,
// ordered newest first. An empty slice means the recipe has no comments.
func ListComments(ctx context.Context, db *gorm.DB, recipeID string) ([]CommentWithAuthor, error) {
	var out []CommentWithAuthor
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.recipe_id = ?", recipeID).
		Order("comments.created_at DESC").
		Find(&out).Error
	return out, err
}

// GetComment fetches a comment by ID, or ErrNotFound if missing.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCommentWithAuthor fetches a single comment joined with the author's
// username, for echoing back after a write.
func GetCommentWithAuthor(ctx context.Context, db *gorm.DB, id string) (*CommentWithAuthor, error) {
	var c CommentWithAuthor
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComment replaces the content of a comment. Zero affected rows
// (comment deleted concurrently) map to ErrNotFound.
func UpdateComment(ctx context.Context, db *gorm.DB, id, content string) error {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment row. Zero affected rows map to ErrNotFound.
func DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
