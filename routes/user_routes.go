package routes

import (
	"gamevault_server/controllers"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for user operations under /api/users
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("", controller.CreateUser).Methods("POST")
	userRouter.HandleFunc("/{userId}", controller.GetUser).Methods("GET")
	userRouter.HandleFunc("/{userId}", controller.DeleteUser).Methods("DELETE")
}
