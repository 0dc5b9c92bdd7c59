// Comment HTTP handlers.
//
// This file exposes REST endpoints for comments:
//   - GET    /recipes/{id}/comments  (public list, newest first)
//   - POST   /recipes/{id}/comments  (create, auth)
//   - PUT    /comments/{id}          (edit, auth + author)
//   - DELETE /comments/{id}          (delete, auth + author)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
	"github.com/recipeshare/go-recipe-backend/internal/services"
)

// CommentService defines comment operations consumed by HTTP handlers.
type CommentService interface {
	// ListForRecipe returns all comments under a recipe, newest first.
	ListForRecipe(ctx context.Context, recipeID string) ([]repo.CommentWithAuthor, error)
	// Create adds a comment authored by the principal under a recipe.
	Create(ctx context.Context, p services.Principal, recipeID, content string) (*repo.CommentWithAuthor, error)
	// Update edits a comment authored by the principal.
	Update(ctx context.Context, p services.Principal, id, content string) (*repo.CommentWithAuthor, error)
	// Delete removes a comment authored by the principal.
	Delete(ctx context.Context, p services.Principal, id string) error
}

// CommentRequest is the JSON payload for creating or editing a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required" example:"Great with a pinch of salt."`
}

// CommentResponse wraps a single comment with its author's username.
type CommentResponse struct {
	Comment *repo.CommentWithAuthor `json:"comment"`
}

// ListCommentsResponse wraps all comments of a recipe.
type ListCommentsResponse struct {
	Comments []repo.CommentWithAuthor `json:"comments"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments for a recipe
// @Description Returns all comments under a recipe, newest first. No authentication required.
// @Tags        Comments
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.ListCommentsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListForRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListCommentsResponse{Comments: comments})
}

// CreateComment godoc
// @ID          createComment
// @Summary     Comment on a recipe
// @Description Adds a comment authored by the authenticated user. Fails before any write when the recipe does not exist.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                   true  "Recipe ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CommentRequest  true  "Comment payload"
//
// @Success     201  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing content"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment content is required")
		return
	}

	cm, err := h.commentSvc.Create(c.Request.Context(), p, c.Param("id"), req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, CommentResponse{Comment: cm})
}

// UpdateComment godoc
// @ID          updateComment
// @Summary     Edit a comment
// @Description Replaces the content of a comment authored by the authenticated user.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                   true  "Comment ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CommentRequest  true  "New content"
//
// @Success     200  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing content"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Comment not found"
// @Router      /comments/{id} [put]
func (h *Handlers) UpdateComment(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment content is required")
		return
	}

	cm, err := h.commentSvc.Update(c.Request.Context(), p, c.Param("id"), req.Content)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, CommentResponse{Comment: cm})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Description Deletes a comment authored by the authenticated user.
// @Tags        Comments
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Comment ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Comment not found"
// @Router      /comments/{id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	if err := h.commentSvc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
