package routes

import (
	"gamevault_server/controllers"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// RegisterGameRoutes sets up routes for game operations under
// /api/users/{userId}/collections/{collectionId}/games
func RegisterGameRoutes(r *mux.Router, gameService *services.GameService) {
	controller := controllers.NewGameController(gameService)

	gameRouter := r.PathPrefix("/api/users/{userId}/collections/{collectionId}/games").Subrouter()

	gameRouter.HandleFunc("", controller.CreateGame).Methods("POST")
	gameRouter.HandleFunc("", controller.ListGames).Methods("GET")
	gameRouter.HandleFunc("/{gameId}", controller.GetGame).Methods("GET")
	gameRouter.HandleFunc("/{gameId}", controller.ModifyGame).Methods("PATCH")
	gameRouter.HandleFunc("/{gameId}", controller.DeleteGame).Methods("DELETE")

	// Snapshots are keyed by game alone, so the latest-price lookup is
	// not collection scoped
	r.HandleFunc("/api/games/{gameId}/prices/{condition}/latest", controller.GetLatestPrice).Methods("GET")
}
