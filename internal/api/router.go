package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studylist/studylist-sync/internal/auth"
	"github.com/studylist/studylist-sync/internal/services"
	"github.com/studylist/studylist-sync/internal/store"
)

// NewRouter wires all API routes. Everything under /api/users requires a
// bearer token; health stays open.
func NewRouter(st store.Store, verifier auth.Verifier) http.Handler {
	router := mux.NewRouter()
	router.Use(Recover)

	userService := services.NewUserService(st)
	topicService := services.NewTopicService(st)

	healthHandler := NewHealthHandler(st)
	userHandler := NewUserHandler(userService)
	topicHandler := NewTopicHandler(topicService)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// User endpoints
	authed := router.PathPrefix("/api/users").Subrouter()
	authed.Use(RequireAuth(verifier))
	authed.HandleFunc("", userHandler.CreateUser).Methods("POST")
	authed.HandleFunc("/{externalId}", userHandler.GetUser).Methods("GET")
	authed.HandleFunc("/{externalId}/profile", userHandler.UpdateProfile).Methods("PUT")

	// Topic and material endpoints
	authed.HandleFunc("/{externalId}/topics", topicHandler.AddTopic).Methods("POST")
	authed.HandleFunc("/{externalId}/topics/{topicId}", topicHandler.RenameTopic).Methods("PUT")
	authed.HandleFunc("/{externalId}/topics/{topicLocator}/materials", topicHandler.AddMaterial).Methods("POST")

	// CORS wraps the router so OPTIONS preflights are answered even for
	// paths the router would otherwise 405.
	return CORS(router)
}
