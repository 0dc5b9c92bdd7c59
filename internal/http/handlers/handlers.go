// Handler wiring.
//
// Handlers groups the HTTP endpoints for auth, recipes, comments, and
// favorites. It depends on abstract service interfaces (declared next to the
// handlers that consume them) to keep transport concerns separate from
// business logic.
package handlers

// Handlers groups HTTP endpoints and their service dependencies.
type Handlers struct {
	authSvc    AuthService
	recipeSvc  RecipeService
	commentSvc CommentService
	favSvc     FavoriteService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(authSvc AuthService, recipeSvc RecipeService, commentSvc CommentService, favSvc FavoriteService) *Handlers {
	return &Handlers{
		authSvc:    authSvc,
		recipeSvc:  recipeSvc,
		commentSvc: commentSvc,
		favSvc:     favSvc,
	}
}
