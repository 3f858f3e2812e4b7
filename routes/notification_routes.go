package routes

import (
	"gamevault_server/controllers"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up the sweep trigger endpoint the
// external scheduler hits
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	r.HandleFunc("/api/notifications/sweep", controller.RunSweep).Methods("POST")
}
