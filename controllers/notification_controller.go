package controllers

import (
	"net/http"

	"gamevault_server/services"
)

// NotificationController exposes the sweep to the external scheduler
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// RunSweep triggers one full notification sweep and returns its summary
func (c *NotificationController) RunSweep(w http.ResponseWriter, r *http.Request) {
	summary, err := c.NotificationService.RunNotificationSweep(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
