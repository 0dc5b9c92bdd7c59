// Package services – CommentService
//
// This file implements the CommentService. Comments hang off a recipe:
// listing and creation first require the parent recipe to exist, while
// editing and deletion apply the ownership rule to the comment's author.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
)

// CommentService provides comment CRUD with ownership enforcement.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewCommentService constructs a CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// ListForRecipe returns all comments under a recipe, newest first.
// A nonexistent recipe yields ErrRecipeNotFound.
func (s *CommentService) ListForRecipe(ctx context.Context, recipeID string) ([]repo.CommentWithAuthor, error) {
	exists, err := repo.RecipeExists(ctx, s.DB, recipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecipeNotFound
	}
	return repo.ListComments(ctx, s.DB, recipeID)
}

// Create adds a comment authored by the principal under recipeID.
// The parent must exist before any row is written; a missing recipe yields
// ErrRecipeNotFound and blank content yields ErrMissingFields.
func (s *CommentService) Create(ctx context.Context, p Principal, recipeID, content string) (*repo.CommentWithAuthor, error) {
	exists, err := repo.RecipeExists(ctx, s.DB, recipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRecipeNotFound
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingFields
	}

	c, err := repo.CreateComment(ctx, s.DB, recipeID, p.ID, content)
	if err != nil {
		return nil, err
	}
	return s.echoRead(ctx, c.ID)
}

// Update edits a comment authored by the principal.
// Same read-then-write shape as RecipeService.Update: a comment deleted
// between the ownership check and the write maps to ErrCommentNotFound.
func (s *CommentService) Update(ctx context.Context, p Principal, id, content string) (*repo.CommentWithAuthor, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingFields
	}
	if err := s.authorize(ctx, p, id); err != nil {
		return nil, err
	}
	if err := repo.UpdateComment(ctx, s.DB, id, content); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.echoRead(ctx, id)
}

// echoRead re-reads a comment for the response body after a successful write.
// A row deleted in between maps to ErrCommentNotFound, keeping the race on
// the not-found path instead of surfacing a raw record-not-found error.
func (s *CommentService) echoRead(ctx context.Context, id string) (*repo.CommentWithAuthor, error) {
	c, err := repo.GetCommentWithAuthor(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a comment authored by the principal.
func (s *CommentService) Delete(ctx context.Context, p Principal, id string) error {
	if err := s.authorize(ctx, p, id); err != nil {
		return err
	}
	if err := repo.DeleteComment(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// authorize loads the comment and applies the ownership rule.
func (s *CommentService) authorize(ctx context.Context, p Principal, id string) error {
	c, err := repo.GetComment(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if c.UserID != p.ID {
		return ErrNotOwner
	}
	return nil
}
