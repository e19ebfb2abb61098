package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/post"
	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// RegisterPostRoutes registers the post CRUD and search endpoints on the
// router. All mutating operations (create, update, delete) sit behind the
// login gate; reads are public. Identifier-addressed routes validate the id
// before any handler runs.
func RegisterPostRoutes(r chi.Router, service posts.Service, gate *middleware.LoginGate) {
	createHandler := post.NewCreateHandler(service)
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	searchHandler := post.NewSearchHandler(service)

	r.With(gate.RequireLogin).Post("/posts", createHandler.HandleCreate)
	r.Get("/posts", listHandler.HandleList)
	r.Get("/posts/search", searchHandler.HandleSearch)

	// The login gate runs before identifier validation on mutating routes:
	// an anonymous caller learns nothing about identifier syntax.
	r.Route("/posts/{id}", func(r chi.Router) {
		r.With(middleware.RequirePostID).Get("/", getHandler.HandleGet)
		r.With(gate.RequireLogin, middleware.RequirePostID).Patch("/", updateHandler.HandleUpdate)
		r.With(gate.RequireLogin, middleware.RequirePostID).Delete("/", deleteHandler.HandleDelete)
	})
}
