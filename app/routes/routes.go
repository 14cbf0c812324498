package routes

import (
	"encoding/json"
	"net/http"

	"inkpost/app/controllers"
	"inkpost/app/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(postController *controllers.PostController, commentController *controllers.CommentController) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	router.NotFoundHandler = jsonError("Not found", http.StatusNotFound)
	router.MethodNotAllowedHandler = jsonError("Method not allowed", http.StatusMethodNotAllowed)

	router.HandleFunc("/health", Health).Methods("GET")

	blog := router.PathPrefix("/blog").Subrouter()
	blog.Use(middleware.BearerToken)

	// Posts
	blog.HandleFunc("/posts", postController.Index).Methods("GET")
	blog.HandleFunc("/posts", postController.Create).Methods("POST")
	blog.HandleFunc("/posts/unpublished", postController.Unpublished).Methods("GET")
	blog.HandleFunc("/post/{id}", postController.Show).Methods("GET")
	blog.HandleFunc("/post/{id}", postController.Update).Methods("PUT", "POST")
	blog.HandleFunc("/post/{id}", postController.Delete).Methods("DELETE")

	// Comments
	blog.HandleFunc("/post/{id}/comment", commentController.Create).Methods("POST")
	blog.HandleFunc("/comment/{id}", commentController.Delete).Methods("DELETE")

	return router
}

// Health reports that the process is serving requests.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode("OK")
}

// Router-level handlers run outside the middleware chain.
func jsonError(message string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}
