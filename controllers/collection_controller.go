package controllers

import (
	"encoding/json"
	"net/http"

	"gamevault_server/models"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// CollectionController handles requests related to collections
type CollectionController struct {
	CollectionService *services.CollectionService
}

// NewCollectionController creates a new instance of CollectionController
func NewCollectionController(collectionService *services.CollectionService) *CollectionController {
	return &CollectionController{CollectionService: collectionService}
}

func (c *CollectionController) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var collection models.Collection
	if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	collection.UserID = mux.Vars(r)["userId"]

	created, err := c.CollectionService.CreateCollection(r.Context(), collection)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (c *CollectionController) GetCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	collection, err := c.CollectionService.GetCollection(r.Context(), vars["userId"], vars["collectionId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

func (c *CollectionController) ModifyCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var payload struct {
		CollectionType string `json:"collectionType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.CollectionType == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := c.CollectionService.ModifyCollection(r.Context(), vars["userId"], vars["collectionId"], payload.CollectionType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (c *CollectionController) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	prior, err := c.CollectionService.DeleteCollection(r.Context(), vars["userId"], vars["collectionId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prior)
}

func (c *CollectionController) ListCollections(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	collections, err := c.CollectionService.ListCollectionsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, collections)
}
