// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the authorization guard: the middleware that turns an
// `Authorization: Bearer <token>` header into a resolved principal for the
// rest of the request, or short-circuits with 401. It is the single entry
// point through which every mutating endpoint acquires its identity. The
// principal is carried explicitly in the Gin context for the request only,
// never in process-wide state.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/go-recipe-backend/internal/services"
)

const (
	// ContextPrincipalKey is the Gin context key holding the resolved
	// services.Principal for the current request.
	ContextPrincipalKey = "principal"
	// ContextUserIDKey duplicates the principal's id as a plain string for
	// logging and rate-limit keying.
	ContextUserIDKey = "userID"

	bearerPrefix = "Bearer "
)

// PrincipalResolver verifies a bearer token and loads the identity it
// asserts. services.AuthService satisfies this contract.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (*services.Principal, error)
}

// RequireAuth returns the authorization guard.
//
// Rejection cases, all answered with 401 and a stable error envelope:
//   - Authorization header absent
//   - scheme other than Bearer, or empty token
//   - signature or expiry invalid
//   - embedded user no longer exists (e.g. deleted account)
//
// On success the principal {id, username, email} is stored in the context
// for the wrapped handlers; PrincipalFrom retrieves it.
func RequireAuth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c, "authorization token is required")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthorized(c, "authorization header format must be Bearer {token}")
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			unauthorized(c, "authorization token is required")
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextPrincipalKey, p)
		c.Set(ContextUserIDKey, p.ID)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by RequireAuth and whether one
// is present. Handlers behind the guard can rely on ok being true.
func PrincipalFrom(c *gin.Context) (services.Principal, bool) {
	v, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return services.Principal{}, false
	}
	p, ok := v.(*services.Principal)
	if !ok || p == nil {
		return services.Principal{}, false
	}
	return *p, true
}

// unauthorized aborts with the standard 401 envelope used across the API.
func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
