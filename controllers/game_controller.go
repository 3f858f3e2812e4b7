package controllers

import (
	"encoding/json"
	"net/http"

	"gamevault_server/models"
	"gamevault_server/services"

	"github.com/gorilla/mux"
)

// GameController handles requests related to games in collections
type GameController struct {
	GameService *services.GameService
}

// NewGameController creates a new instance of GameController
func NewGameController(gameService *services.GameService) *GameController {
	return &GameController{GameService: gameService}
}

func (c *GameController) CreateGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var game models.Game
	if err := json.NewDecoder(r.Body).Decode(&game); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	game.UserID = vars["userId"]
	game.CollectionID = vars["collectionId"]

	created, err := c.GameService.CreateGame(r.Context(), game)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (c *GameController) GetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	game, err := c.GameService.GetGame(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

func (c *GameController) ModifyGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var upd models.GameUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := c.GameService.ModifyGame(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"], upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (c *GameController) DeleteGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	prior, err := c.GameService.DeleteGame(r.Context(), vars["userId"], vars["collectionId"], vars["gameId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prior)
}

func (c *GameController) GetLatestPrice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	snapshot, err := c.GameService.GetLatestPrice(r.Context(), vars["gameId"], vars["condition"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

func (c *GameController) ListGames(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	games, err := c.GameService.ListGamesInCollection(r.Context(), vars["userId"], vars["collectionId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}
