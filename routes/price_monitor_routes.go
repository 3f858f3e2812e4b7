package routes

import (
	"gamevault_server/controllers"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// RegisterPriceMonitorRoutes sets up routes for price monitor
// operations, nested under a game plus a cross-user listing endpoint
func RegisterPriceMonitorRoutes(r *mux.Router, priceMonitorService *services.PriceMonitorService) {
	controller := controllers.NewPriceMonitorController(priceMonitorService)

	monitorRouter := r.PathPrefix("/api/users/{userId}/collections/{collectionId}/games/{gameId}/monitors").Subrouter()

	monitorRouter.HandleFunc("", controller.CreateMonitor).Methods("POST")
	monitorRouter.HandleFunc("/{priceMonitorId}", controller.GetMonitor).Methods("GET")
	monitorRouter.HandleFunc("/{priceMonitorId}", controller.ModifyMonitor).Methods("PATCH")
	monitorRouter.HandleFunc("/{priceMonitorId}", controller.DeleteMonitor).Methods("DELETE")

	// Fan-out listing used by operators and the sweep's debugging
	r.HandleFunc("/api/games/{gameId}/monitors", controller.ListMonitorsForGame).Methods("GET")
}
