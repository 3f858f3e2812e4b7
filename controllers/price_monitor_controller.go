package controllers

import (
	"encoding/json"
	"net/http"

	"gamevault_server/models"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// PriceMonitorController handles requests related to price monitors
type PriceMonitorController struct {
	PriceMonitorService *services.PriceMonitorService
}

// NewPriceMonitorController creates a new instance of PriceMonitorController
func NewPriceMonitorController(priceMonitorService *services.PriceMonitorService) *PriceMonitorController {
	return &PriceMonitorController{PriceMonitorService: priceMonitorService}
}

func (c *PriceMonitorController) CreateMonitor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var monitor models.PriceMonitor
	if err := json.NewDecoder(r.Body).Decode(&monitor); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	monitor.UserID = vars["userId"]
	monitor.CollectionID = vars["collectionId"]
	monitor.GameID = vars["gameId"]

	created, err := c.PriceMonitorService.CreateMonitor(r.Context(), monitor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (c *PriceMonitorController) GetMonitor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	monitor, err := c.PriceMonitorService.GetMonitor(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"], vars["priceMonitorId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, monitor)
}

func (c *PriceMonitorController) ModifyMonitor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var upd models.PriceMonitorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := c.PriceMonitorService.ModifyMonitor(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"], vars["priceMonitorId"], upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (c *PriceMonitorController) DeleteMonitor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	prior, err := c.PriceMonitorService.DeleteMonitor(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"], vars["priceMonitorId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prior)
}

// ListMonitorsForGame returns every monitor watching a game across all
// users and collections
func (c *PriceMonitorController) ListMonitorsForGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]

	monitors, err := c.PriceMonitorService.ListForGame(r.Context(), gameID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, monitors)
}
