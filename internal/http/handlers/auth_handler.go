// Auth HTTP handlers.
//
// This file exposes REST endpoints for accounts and sessions:
//   - POST /auth/register  (create account)
//   - POST /auth/login     (verify credentials, issue token)
//   - GET  /auth/me        (echo the authenticated principal)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/go-recipe-backend/internal/domain"
	"github.com/recipeshare/go-recipe-backend/internal/http/middleware"
	"github.com/recipeshare/go-recipe-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Email    string `json:"email"    binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// LoginRequest is the JSON payload for obtaining a session token.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// UserResponse wraps the public representation of an account.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// LoginResponse carries the issued token together with the public user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new user
// @Description Creates an account with a unique username and email. The response never contains the password hash.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.UserResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or invalid fields"
// @Failure     409  {object}  handlers.ErrorResponse  "Username or email taken"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email, and password are required")
		return
	}

	u, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, UserResponse{User: u})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies email and password and returns a signed session token valid for 24 hours.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	token, u, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, User: u})
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Description Returns the principal resolved from the bearer token.
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  map[string]services.Principal
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	p, found := middleware.PrincipalFrom(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}
	ok(c, http.StatusOK, gin.H{"user": p})
}

// principal fetches the guard-injected identity, failing the request with
// 401 when absent. Handlers mounted behind RequireAuth normally cannot hit
// the failure branch; it guards against wiring mistakes.
func principal(c *gin.Context) (services.Principal, bool) {
	p, found := middleware.PrincipalFrom(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return services.Principal{}, false
	}
	return p, true
}
