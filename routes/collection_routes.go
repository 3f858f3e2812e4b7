package routes

import (
	"gamevault_server/controllers"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// RegisterCollectionRoutes sets up routes for collection operations
// under /api/users/{userId}/collections
func RegisterCollectionRoutes(r *mux.Router, collectionService *services.CollectionService) {
	controller := controllers.NewCollectionController(collectionService)

	collectionRouter := r.PathPrefix("/api/users/{userId}/collections").Subrouter()

	collectionRouter.HandleFunc("", controller.CreateCollection).Methods("POST")
	collectionRouter.HandleFunc("", controller.ListCollections).Methods("GET")
	collectionRouter.HandleFunc("/{collectionId}", controller.GetCollection).Methods("GET")
	collectionRouter.HandleFunc("/{collectionId}", controller.ModifyCollection).Methods("PATCH")
	collectionRouter.HandleFunc("/{collectionId}", controller.DeleteCollection).Methods("DELETE")
}
