// Recipe HTTP handlers.
//
// This file exposes REST endpoints for recipe resources:
//   - GET    /recipes        (public list, paginated, counts annotated)
//   - GET    /recipes/{id}   (public detail)
//   - POST   /recipes        (create, auth)
//   - PUT    /recipes/{id}   (update, auth + owner)
//   - DELETE /recipes/{id}   (delete, auth + owner, cascades)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/go-recipe-backend/internal/repo"
	"github.com/recipeshare/go-recipe-backend/internal/services"
	"github.com/recipeshare/go-recipe-backend/internal/utils"
)

// RecipeService defines recipe lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RecipeService interface {
	// Create inserts a recipe owned by the principal.
	Create(ctx context.Context, p services.Principal, title, ingredients, steps string) (*repo.RecipeWithStats, error)
	// ListPage returns a page of recipes (newest first) and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]repo.RecipeWithStats, int64, error)
	// Get returns a single recipe with counts.
	Get(ctx context.Context, id string) (*repo.RecipeWithStats, error)
	// Update replaces the content of a recipe owned by the principal.
	Update(ctx context.Context, p services.Principal, id, title, ingredients, steps string) (*repo.RecipeWithStats, error)
	// Delete removes a recipe owned by the principal.
	Delete(ctx context.Context, p services.Principal, id string) error
}

//
// DTOs
//

// RecipeRequest is the JSON payload for creating or updating a recipe.
type RecipeRequest struct {
	Title       string `json:"title"       binding:"required" example:"Soup"`
	Ingredients string `json:"ingredients" binding:"required" example:"Water"`
	Steps       string `json:"steps"       binding:"required" example:"Boil"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListRecipesResponse wraps a page of recipes and pagination information.
type ListRecipesResponse struct {
	Recipes    []repo.RecipeWithStats `json:"recipes"`
	Pagination Pagination             `json:"pagination"`
}

// RecipeResponse wraps a single recipe with its read-time statistics.
type RecipeResponse struct {
	Recipe *repo.RecipeWithStats `json:"recipe"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes (paginated)
// @Description Returns a page of recipes, newest first, each annotated with comment and favorite counts. No authentication required.
// @Tags        Recipes
// @Produce     json
//
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListRecipesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.recipeSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListRecipesResponse{
		Recipes: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get a recipe
// @Description Returns a single recipe with owner username and read-time counts. No authentication required.
// @Tags        Recipes
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.RecipeResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	r, err := h.recipeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, RecipeResponse{Recipe: r})
}

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Create a recipe
// @Description Creates a recipe owned by the authenticated user.
// @Tags        Recipes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.RecipeRequest  true  "Recipe payload"
//
// @Success     201  {object}  handlers.RecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title, ingredients, and steps are required")
		return
	}

	r, err := h.recipeSvc.Create(c.Request.Context(), p, req.Title, req.Ingredients, req.Steps)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, RecipeResponse{Recipe: r})
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update a recipe
// @Description Replaces title, ingredients, and steps of a recipe owned by the authenticated user.
// @Tags        Recipes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                  true  "Recipe ID (UUID)"  format(uuid)
// @Param       body  body  handlers.RecipeRequest  true  "New content"
//
// @Success     200  {object}  handlers.RecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [put]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title, ingredients, and steps are required")
		return
	}

	r, err := h.recipeSvc.Update(c.Request.Context(), p, c.Param("id"), req.Title, req.Ingredients, req.Steps)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, RecipeResponse{Recipe: r})
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete a recipe
// @Description Deletes a recipe owned by the authenticated user. Its comments and favorites are removed with it.
// @Tags        Recipes
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	p, found := principal(c)
	if !found {
		return
	}
	if err := h.recipeSvc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
