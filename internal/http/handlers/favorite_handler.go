// Favorite HTTP handlers.
//
// This file exposes REST endpoints for favorites:
//   - GET    /favorites               (own favorites, auth)
//   - POST   /recipes/{id}/favorite   (add, auth, idempotent)
//   - DELETE /recipes/{id}/favorite   (remove, auth)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
	"github.com/recipeshare/go-recipe-backend/internal/services"
)

// FavoriteService defines favorite operations consumed by HTTP handlers.
type FavoriteService interface {
	// List returns the principal's favorites joined with recipe data.
	List(ctx context.Context, p services.Principal) ([]repo.FavoriteWithRecipe, error)
	// Add marks a recipe as favorite; created is false on repeat calls.
	Add(ctx context.Context, p services.Principal, recipeID string) (created bool, err error)
	// Remove deletes the principal's favorite for a recipe.
	Remove(ctx context.Context, p services.Principal, recipeID string) error
}

// ListFavoritesResponse wraps the authenticated user's favorites.
type ListFavoritesResponse struct {
	Favorites []repo.FavoriteWithRecipe `json:"favorites"`
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List own favorites
// @Description Returns the authenticated user's favorites with recipe data, newest first.
// @Tags        Favorites
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.ListFavoritesResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Router      /favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	favs, err := h.favSvc.List(c.Request.Context(), p)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListFavoritesResponse{Favorites: favs})
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Favorite a recipe
// @Description Marks a recipe as a favorite of the authenticated user. Idempotent: repeating the call succeeds without creating a second row.
// @Tags        Favorites
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     201  {object}  map[string]string  "Newly favorited"
// @Success     200  {object}  map[string]string  "Was already a favorite"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/favorite [post]
func (h *Handlers) AddFavorite(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	created, err := h.favSvc.Add(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	if created {
		ok(c, http.StatusCreated, gin.H{"message": "recipe added to favorites"})
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "recipe is already a favorite"})
}

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Unfavorite a recipe
// @Description Removes the authenticated user's favorite for a recipe. Fails with 404 when the recipe was never favorited.
// @Tags        Favorites
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     404  {object}  handlers.ErrorResponse  "Favorite not found"
// @Router      /recipes/{id}/favorite [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	if err := h.favSvc.Remove(c.Request.Context(), p, c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
